package crush

import (
	"bytes"
	"testing"
)

func depackViaBuffered(t *testing.T, packed []byte, m int) []byte {
	t.Helper()
	out, err := Depack(packed, m)
	if err != nil {
		t.Fatalf("Depack: %v", err)
	}
	return out
}

func TestPackLERoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":        {},
		"one":          {0x41},
		"two":          {0xAB, 0xAB},
		"three":        {1, 2, 3},
		"four-run":     {0x55, 0x55, 0x55, 0x55},
		"repetitive":   genRepetitive(4096),
		"pseudorandom": genPseudoRandom(4096),
		"mixed":        genMixed(8192),
		"zero-run-1k":  bytes.Repeat([]byte{0x00}, 1024),
	}

	for level, lvl := range leLevels {
		for name, in := range inputs {
			dst := make([]byte, 0, MaxPackedSize(len(in)))
			out := packLE(in, dst, lvl)

			if len(out) > MaxPackedSize(len(in)) {
				t.Fatalf("level %d, %s: packed %d bytes exceeds MaxPackedSize(%d)=%d",
					level, name, len(out), len(in), MaxPackedSize(len(in)))
			}

			got := depackViaBuffered(t, out, len(in))
			if !bytes.Equal(got, in) {
				t.Fatalf("level %d, %s: round trip mismatch", level, name)
			}
		}
	}
}

func TestPackLEShortInputsAllLiteral(t *testing.T) {
	for n := 0; n < 4; n++ {
		in := genPseudoRandom(n)
		dst := make([]byte, 0, MaxPackedSize(n))
		out := packLE(in, dst, leLevels[5])

		wantBytes := (n*9 + 7) / 8
		if len(out) != wantBytes {
			t.Fatalf("n=%d: packed %d bytes, want %d (all-literal)", n, len(out), wantBytes)
		}

		got := depackViaBuffered(t, out, n)
		if !bytes.Equal(got, in) {
			t.Fatalf("n=%d: round trip mismatch", n)
		}
	}
}

func TestLevelMonotonicity567(t *testing.T) {
	in := genMixed(16384)

	sizes := make(map[int]int)
	for _, level := range []int{5, 6, 7} {
		dst := make([]byte, 0, MaxPackedSize(len(in)))
		out := packLE(in, dst, leLevels[level])
		sizes[level] = len(out)
	}

	if sizes[6] > sizes[5] || sizes[7] > sizes[5] {
		t.Fatalf("levels 6/7 should never exceed level 5: sizes=%v", sizes)
	}
}
