// Command crushbench compresses a file with CRUSH at a chosen level
// and with each of a handful of reference codecs at their default
// settings, and prints a size/ratio comparison table. It is the
// reproduction vehicle for the CRUSH project's corpus-average ratio
// claims, the way bcrush -v reports a single file's ratio.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/pierrec/lz4/v4"

	"github.com/jibsen/crush"
)

func main() {
	level := flag.Int("level", 9, "CRUSH level (5-10)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: crushbench [-level N] FILE")
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "crushbench: %v\n", err)
		os.Exit(1)
	}

	results, err := compareAll(data, *level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crushbench: %v\n", err)
		os.Exit(1)
	}

	printTable(os.Stdout, len(data), results)
}

type result struct {
	name string
	size int
}

func compareAll(data []byte, level int) ([]result, error) {
	packed, err := crush.Pack(data, level)
	if err != nil {
		return nil, fmt.Errorf("crush level %d: %w", level, err)
	}

	flateSize, err := flateCompress(data)
	if err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}

	return []result{
		{name: fmt.Sprintf("crush -%d", level), size: len(packed)},
		{name: "flate", size: flateSize},
		{name: "snappy", size: len(snappy.Encode(nil, data))},
		{name: "lz4", size: lz4Compress(data)},
		{name: "brotli", size: brotliCompress(data)},
	}, nil
}

func flateCompress(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func lz4Compress(data []byte) int {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Len()
}

func brotliCompress(data []byte) int {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Len()
}

func printTable(w io.Writer, inSize int, results []result) {
	fmt.Fprintf(w, "input: %d bytes\n\n", inSize)
	fmt.Fprintf(w, "%-12s %10s %8s\n", "codec", "size", "ratio")
	for _, r := range results {
		ratio := float64(r.size) * 100 / float64(inSize)
		fmt.Fprintf(w, "%-12s %10d %7.1f%%\n", r.name, r.size, ratio)
	}
}
