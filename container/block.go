// Package container implements the CRUSH block framing used by the
// command-line tool: a sequence of independently packed blocks, each
// prefixed with a 4-byte little-endian uncompressed-length header.
// There is no stream trailer and no checksum, matching bcrush's
// compress_file/decompress_file loop.
package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jibsen/crush"
)

// DefaultBlockSize is the block size bcrush uses: 64 MiB, chosen so an
// uncompressed length always fits the 4-byte header.
const DefaultBlockSize = 64 << 20

// Writer buffers data into BlockSize chunks and packs each one to Dest
// as it fills, framed with its 4-byte little-endian uncompressed
// length. The zero value is not usable; construct with NewWriter.
type Writer struct {
	Dest      io.Writer
	Level     int
	BlockSize int

	buf []byte
}

// NewWriter returns a Writer that packs at level, writing framed blocks
// of at most DefaultBlockSize bytes to dest.
func NewWriter(dest io.Writer, level int) *Writer {
	return &Writer{Dest: dest, Level: level, BlockSize: DefaultBlockSize}
}

// Write buffers p, flushing full blocks to Dest as they accumulate. On
// success it consumes all of p; if flushing a block fails it returns
// the number of bytes of p buffered so far together with the error.
func (w *Writer) Write(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		room := w.BlockSize - len(w.buf)
		chunk := p
		if len(chunk) > room {
			chunk = chunk[:room]
		}
		w.buf = append(w.buf, chunk...)
		p = p[len(chunk):]

		if len(w.buf) == w.BlockSize {
			if err := w.flush(); err != nil {
				return n - len(p), err
			}
		}
	}

	return n, nil
}

// Close flushes any buffered partial block. It does not close Dest.
func (w *Writer) Close() error {
	if len(w.buf) == 0 {
		return nil
	}
	return w.flush()
}

func (w *Writer) flush() error {
	packed, err := crush.Pack(w.buf, w.Level)
	if err != nil {
		return fmt.Errorf("container: pack block of %d bytes: %w", len(w.buf), err)
	}

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(w.buf)))

	if _, err := w.Dest.Write(header[:]); err != nil {
		return err
	}
	if _, err := w.Dest.Write(packed); err != nil {
		return err
	}

	w.buf = w.buf[:0]
	return nil
}

// Reader decodes a block-framed stream produced by Writer, presenting
// the decompressed bytes of every block in sequence as a single
// io.Reader.
type Reader struct {
	Src io.Reader

	br      io.ByteReader
	current []byte
	eof     bool
}

// NewReader returns a Reader decoding the block-framed stream src.
func NewReader(src io.Reader) *Reader {
	return &Reader{Src: src}
}

// Read implements io.Reader, decoding one block at a time via
// crush.DepackFromStream as earlier blocks are exhausted.
func (r *Reader) Read(p []byte) (int, error) {
	for len(r.current) == 0 {
		if r.eof {
			return 0, io.EOF
		}
		if err := r.nextBlock(); err != nil {
			return 0, err
		}
	}

	n := copy(p, r.current)
	r.current = r.current[n:]
	return n, nil
}

func (r *Reader) nextBlock() error {
	var header [4]byte
	if _, err := io.ReadFull(r.Src, header[:]); err != nil {
		if err == io.EOF {
			r.eof = true
			return nil
		}
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("container: truncated block header: %w", err)
		}
		return fmt.Errorf("container: read block header: %w", err)
	}

	n := int(binary.LittleEndian.Uint32(header[:]))

	if r.br == nil {
		if br, ok := r.Src.(io.ByteReader); ok {
			r.br = br
		} else {
			r.br = newByteReader(r.Src)
		}
	}

	block, err := crush.DepackFromStream(r.br, n)
	if err != nil {
		return fmt.Errorf("container: depack block of %d bytes: %w", n, err)
	}

	r.current = block
	return nil
}

// byteReader adapts a plain io.Reader to io.ByteReader one byte at a
// time, for sources (such as bytes.Buffer's complement, a raw socket)
// that don't already implement it. Mirrors the reference's crush_depack_file,
// which reads its FILE* stream a byte at a time through getc.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func newByteReader(r io.Reader) *byteReader {
	return &byteReader{r: r}
}

func (b *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(b.r, b.buf[:])
	if err != nil {
		return 0, err
	}
	return b.buf[0], nil
}
