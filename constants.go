package crush

// Structural parameters of the CRUSH token format. These are shared by
// the codec, the cost model, and both match finders so that a change in
// one place stays consistent everywhere.
const (
	// WBits is the base-2 logarithm of the window size.
	WBits = 21
	// WSize is the maximum back-reference distance.
	WSize = 1 << WBits

	// SlotBits is the width of the offset slot selector.
	SlotBits = 4
	// NumSlots is the number of offset magnitude ranges.
	NumSlots = 1 << SlotBits

	// Extra-bit widths for the six match-length buckets.
	aBits = 2
	bBits = 2
	cBits = 2
	dBits = 3
	eBits = 5
	fBits = 9
)

// Match-length bucket boundaries, in terms of l = len - MinMatch.
const (
	lenA = 1 << aBits
	lenB = (1 << bBits) + lenA
	lenC = (1 << cBits) + lenB
	lenD = (1 << dBits) + lenC
	lenE = (1 << eBits) + lenD
	lenF = (1 << fBits) + lenE
)

const (
	// MinMatch is the shortest back-reference length the codec can encode.
	MinMatch = 3
	// MaxMatch is the longest back-reference length the codec can encode.
	MaxMatch = (lenF - 1) + MinMatch
)

// tooFar is a distance heuristic the reference decoder never enforces;
// see the note by crush_pack_leparse in the design notes. It is kept
// here only as documentation, unused on purpose.
const tooFar = 1 << 16

// hashBits is the default number of bits of hash used for match-finder
// lookup tables. Values between 10 and 18 work well; 17 (128 Ki
// entries) is the reference's compromise between table-init cost and
// match quality.
const hashBits = 17

// lookupSize is the number of entries in a match-finder lookup table at
// the default hashBits.
const lookupSize = 1 << hashBits

// noMatchPos is the sentinel meaning "no earlier position with this hash".
const noMatchPos = -1

// slotShift is W_BITS - (NUM_SLOTS - 1): the number of bits used to
// store an offset directly in slot 0.
const slotShift = WBits - (NumSlots - 1)

// slotBase is W_BITS - NUM_SLOTS: the mlog value implied by slot 0, and
// the base that higher slots count up from.
const slotBase = WBits - NumSlots

// literalCost is the fixed bit cost of a literal token: a 0 tag bit
// plus the 8-bit value.
const literalCost = 9
