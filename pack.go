// Package crush implements the CRUSH compressed data format: a
// dictionary-based, byte-oriented compressor and decompressor using
// fixed structural prefix codes for literals and (length, offset) match
// tokens, with two optimal-parsing match finders trading speed for
// ratio across levels 5 through 10.
//
// Compression proceeds in one pass per block: a level in [5, 10] selects
// either the hash-chain match finder with a backwards dynamic-programming
// parse (levels 5-7) or the binary-tree match finder with a forwards
// dynamic-programming parse (levels 8-10). Both parsers choose a
// minimum-bit-cost sequence of tokens under the exact cost model in
// cost.go, then replay it through the bit-exact codec in codec.go.
//
// Decompression needs no level: the token stream is self-describing
// given the decompressed length, which the caller must already know
// (the format carries no length field of its own).
package crush

import "io"

// MaxPackedSize returns the largest number of bytes Pack could produce
// for an input of length n, matching crush.c:crush_max_packed_size.
func MaxPackedSize(n int) int {
	return n + n/8 + 64
}

// WorkmemSize reports the number of bytes the reference implementation
// would need to pack n bytes at level. It exists for parity with the C
// API surface; Pack below allocates its own scratch space and does not
// take a workmem argument.
func WorkmemSize(n, level int) (int, error) {
	const wordSize = 4

	switch {
	case level >= 5 && level <= 7:
		return leWorkmemWords(n) * wordSize, nil
	case level >= 8 && level <= 10:
		return (5*n + 3 + lookupSize) * wordSize, nil
	default:
		return 0, ErrInvalidLevel
	}
}

// Pack compresses src at the given level (5 through 10, inclusive;
// larger levels trade speed for ratio) and returns the packed bytes.
// An empty src returns an empty, non-nil slice.
func Pack(src []byte, level int) ([]byte, error) {
	if level < 5 || level > 10 {
		return nil, ErrInvalidLevel
	}
	if len(src) == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, 0, MaxPackedSize(len(src)))

	if lvl, ok := leLevels[level]; ok {
		return packLE(src, dst, lvl), nil
	}
	if lvl, ok := btLevels[level]; ok {
		return packBT(src, dst, lvl), nil
	}
	return nil, ErrInvalidLevel
}

// Depack decompresses src, which must hold exactly the packed bytes
// produced for an original length of m, and returns those m bytes.
// It returns ErrCorruptStream if src ends before m bytes have been
// produced, or if a match references an offset beyond what has been
// written so far.
func Depack(src []byte, m int) ([]byte, error) {
	dst := make([]byte, 0, m)

	var r bitReader
	r.init(src)

	for len(dst) < m {
		if r.exhausted() {
			return nil, ErrCorruptStream
		}

		if r.get(1) == 0 {
			dst = append(dst, byte(r.get(8)))
			continue
		}

		length := decodeLength(&r) + MinMatch
		offs := decodeOffset(&r) + 1

		if offs > len(dst) {
			return nil, ErrCorruptStream
		}

		start := len(dst) - offs
		for i := 0; i < length && len(dst) < m; i++ {
			dst = append(dst, dst[start+i])
		}
	}

	return dst, nil
}

// DepackFromStream is identical to Depack except that it reads the
// packed bytes lazily, one at a time, from src instead of requiring
// the whole packed block to be buffered up front. It exists because
// the CRUSH format carries no packed-size field, so a caller streaming
// a multi-block container cannot know in advance how many bytes a
// block's packed data spans.
func DepackFromStream(src io.ByteReader, m int) ([]byte, error) {
	dst := make([]byte, 0, m)

	var r streamBitReader
	r.init(src)

	for len(dst) < m {
		if r.get(1) == 0 {
			dst = append(dst, byte(r.get(8)))
		} else {
			length := decodeLength(&r) + MinMatch
			offs := decodeOffset(&r) + 1

			if offs > len(dst) {
				return nil, ErrCorruptStream
			}

			start := len(dst) - offs
			for i := 0; i < length && len(dst) < m; i++ {
				dst = append(dst, dst[start+i])
			}
		}

		if r.err != nil {
			return nil, ErrCorruptStream
		}
	}

	return dst, nil
}
