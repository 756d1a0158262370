package crush

import "testing"

// bitsWritten returns the exact number of bits a writer has buffered
// so far, before any end-of-stream padding. Used to check matchCost
// against the codec bit-for-bit, not just rounded up to a byte.
func bitsWritten(w *bitWriter) int {
	return len(w.dst)*8 + w.msb
}

func TestMatchCostExact(t *testing.T) {
	offsets := []int{
		0, 1, 2, (2 << slotBase) - 1, 2 << slotBase, 1 << 10, 1 << 16, 1 << 20, WSize - 1,
	}
	lengths := []int{
		MinMatch, MinMatch + 1, MinMatch + lenA - 1, MinMatch + lenA,
		MinMatch + lenB - 1, MinMatch + lenB, MinMatch + lenC,
		MinMatch + lenD, MinMatch + lenE, MaxMatch,
	}

	for _, offs := range offsets {
		for _, length := range lengths {
			var w bitWriter
			w.init(make([]byte, 0, 16))
			putMatch(&w, offs, length)

			got := bitsWritten(&w)
			want := matchCost(offs, length)
			if got != want {
				t.Fatalf("offs=%d len=%d: matchCost=%d, actual encoded bits=%d", offs, length, want, got)
			}
		}
	}
}

func TestLiteralCostExact(t *testing.T) {
	var w bitWriter
	w.init(make([]byte, 0, 4))
	putLiteral(&w, 0x7F)
	if got := bitsWritten(&w); got != literalCost {
		t.Fatalf("literal encoded bits = %d, want %d", got, literalCost)
	}
}
