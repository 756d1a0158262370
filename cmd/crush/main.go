// Command crush compresses or decompresses a file using the CRUSH
// format, in the block-framed container from the container package.
// It mirrors bcrush's option surface: level flags -5 through -9,
// --optimal for level 10, -d/--decompress, -v/--verbose, -V/--version.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jibsen/crush/container"
)

const version = "0.2.1"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("crush", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	var (
		level5     = fs.Bool("5", false, "compression level 5 (default)")
		level6     = fs.Bool("6", false, "compression level 6")
		level7     = fs.Bool("7", false, "compression level 7")
		level8     = fs.Bool("8", false, "compression level 8")
		level9     = fs.Bool("9", false, "compression level 9")
		optimal    = fs.Bool("optimal", false, "compression level 10 (slowest, best ratio)")
		decompress = fs.Bool("d", false, "decompress")
		verbose    = fs.Bool("v", false, "print compression ratio")
		showVer    = fs.Bool("V", false, "print version and exit")
	)
	fs.BoolVar(decompress, "decompress", false, "decompress")
	fs.BoolVar(verbose, "verbose", false, "print compression ratio")
	fs.BoolVar(showVer, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *showVer {
		fmt.Fprintf(stdout, "crush %s\n", version)
		return 0
	}

	rest := fs.Args()
	if len(rest) != 2 {
		printUsage(stderr)
		return 1
	}
	inPath, outPath := rest[0], rest[1]

	level := 5
	switch {
	case *optimal:
		level = 10
	case *level9:
		level = 9
	case *level8:
		level = 8
	case *level7:
		level = 7
	case *level6:
		level = 6
	case *level5:
		level = 5
	}

	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(stderr, "crush: %v\n", err)
		return 1
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(stderr, "crush: %v\n", err)
		return 1
	}
	defer out.Close()

	var inSize, outSize int64

	if *decompress {
		inSize, outSize, err = decompressFile(in, out)
	} else {
		inSize, outSize, err = compressFile(in, out, level)
	}
	if err != nil {
		fmt.Fprintf(stderr, "crush: %v\n", err)
		return 1
	}

	if *verbose {
		printRatio(stdout, inSize, outSize, *decompress)
	}

	return 0
}

func compressFile(in io.Reader, out io.Writer, level int) (inSize, outSize int64, err error) {
	w := container.NewWriter(&countingWriter{w: out, n: &outSize}, level)

	n, err := io.Copy(w, in)
	if err != nil {
		return n, outSize, err
	}
	if err := w.Close(); err != nil {
		return n, outSize, err
	}
	return n, outSize, nil
}

func decompressFile(in io.Reader, out io.Writer) (inSize, outSize int64, err error) {
	cr := &countingReader{r: in, n: &inSize}
	r := container.NewReader(cr)

	outSize, err = io.Copy(out, r)
	return inSize, outSize, err
}

// countingWriter tracks how many packed bytes container.Writer actually
// flushed to out, since Writer buffers internally and io.Copy's own
// count reflects bytes read from in instead.
type countingWriter struct {
	w io.Writer
	n *int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	*c.n += int64(n)
	return n, err
}

// countingReader tracks how many packed bytes have been read from r, so
// decompressFile can report the compressed input size rather than the
// decompressed output size io.Copy's own count reflects.
type countingReader struct {
	r io.Reader
	n *int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	*c.n += int64(n)
	return n, err
}

func printRatio(w io.Writer, inSize, outSize int64, decompress bool) {
	if decompress {
		fmt.Fprintf(w, "decompressed %d bytes into %d bytes\n", inSize, outSize)
		return
	}
	if inSize == 0 {
		fmt.Fprintf(w, "compressed %d bytes into %d bytes\n", inSize, outSize)
		return
	}
	ratio := float64(outSize) * 100 / float64(inSize)
	fmt.Fprintf(w, "compressed %d bytes into %d bytes (%.1f%%)\n", inSize, outSize, ratio)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: crush [options] INFILE OUTFILE\n\n")
	fmt.Fprintf(w, "  -5 .. -9        compression level (default 5)\n")
	fmt.Fprintf(w, "  --optimal       compression level 10\n")
	fmt.Fprintf(w, "  -d, --decompress\n")
	fmt.Fprintf(w, "  -v, --verbose   print compression ratio\n")
	fmt.Fprintf(w, "  -V, --version   print version and exit\n")
	fmt.Fprintf(w, "  -h              show this help\n")
}
