package crush

// This file implements the CRUSH token codec (spec §4.B): the bit-exact
// encoding of one literal or one (len, offs) match token, shared by both
// the LE and BT parsers' output passes and by the depacker.
//
// A literal is a 0 tag bit followed by the 8-bit value, LSB first — a
// single 9-bit put of (value << 1), matching crush_leparse.h /
// crush_btparse.h's `lbw_putbits(&lbw, (uint32_t) in[i] << 1, 9)`.
//
// A match is a 1 tag bit, then a unary-prefixed length bucket selector
// plus that bucket's extra bits, then a 4-bit offset slot plus that
// slot's extra bits.

func putLiteral(w *bitWriter, b byte) {
	w.put(uint32(b)<<1, 9)
}

// putMatch writes a match token for a length in [MinMatch, MaxMatch]
// and a zero-based offset (offs = distance - 1).
func putMatch(w *bitWriter, offs, length int) {
	w.put(1, 1)

	l := uint32(length - MinMatch)

	switch {
	case l < lenA:
		w.put(1, 1)
		w.put(l, aBits)
	case l < lenB:
		w.put(1<<1, 2)
		w.put(l-lenA, bBits)
	case l < lenC:
		w.put(1<<2, 3)
		w.put(l-lenB, cBits)
	case l < lenD:
		w.put(1<<3, 4)
		w.put(l-lenC, dBits)
	case l < lenE:
		w.put(1<<4, 5)
		w.put(l-lenD, eBits)
	default:
		w.put(0, 5)
		w.put(l-lenE, fBits)
	}

	putOffset(w, offs)
}

// putOffset writes the 4-bit slot and slot-specific extra bits for a
// zero-based offset (offs = distance - 1).
func putOffset(w *bitWriter, offs int) {
	mlog := slotBase

	for offs >= 2<<mlog {
		mlog++
	}

	w.put(uint32(mlog-slotBase), SlotBits)

	if mlog > slotBase {
		w.put(uint32(offs-(1<<mlog)), mlog)
	} else {
		w.put(uint32(offs), slotShift)
	}
}

// bitGetter is implemented by both bitReader (buffered) and
// streamBitReader (lazy, one byte at a time), so the decode helpers
// below serve both Depack and DepackFromStream.
type bitGetter interface {
	get(num int) uint32
}

// decodeLength reads a length-bucket selector and its extra bits,
// returning l = len - MinMatch.
func decodeLength(r bitGetter) int {
	if r.get(1) != 0 {
		return int(r.get(aBits))
	}
	if r.get(1) != 0 {
		return int(r.get(bBits)) + lenA
	}
	if r.get(1) != 0 {
		return int(r.get(cBits)) + lenB
	}
	if r.get(1) != 0 {
		return int(r.get(dBits)) + lenC
	}
	if r.get(1) != 0 {
		return int(r.get(eBits)) + lenD
	}
	return int(r.get(fBits)) + lenE
}

// decodeOffset reads a 4-bit slot and its extra bits, returning the
// zero-based offset (offs = distance - 1).
func decodeOffset(r bitGetter) int {
	slot := int(r.get(SlotBits))
	mlog := slot + slotBase

	if mlog > slotBase {
		return int(r.get(mlog)) + (1 << mlog)
	}
	return int(r.get(slotShift))
}
