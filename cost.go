package crush

import "math/bits"

// matchCost returns the exact number of bits putMatch will spend
// encoding a match with zero-based offset pos (= distance - 1) and
// length length. It must stay consistent with putMatch/putOffset (see
// spec §4.C); it is the direct translation of crush.c:crush_match_cost.
func matchCost(pos, length int) int {
	cost := 1

	l := length - MinMatch

	switch {
	case l < lenA:
		cost += 1 + aBits
	case l < lenB:
		cost += 2 + bBits
	case l < lenC:
		cost += 3 + cBits
	case l < lenD:
		cost += 4 + dBits
	case l < lenE:
		cost += 5 + eBits
	default:
		cost += 5 + fBits
	}

	cost += SlotBits

	if pos >= 2<<slotBase {
		cost += bits.Len(uint(pos)) - 1
	} else {
		cost += slotShift
	}

	return cost
}
