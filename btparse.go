package crush

// btLevel holds the (max_depth, accept_len) parameters for one of the
// binary-tree parser's levels, per spec §4.E's level parameter table.
type btLevel struct {
	maxDepth  int
	acceptLen int
}

// unlimited stands in for the reference's ULONG_MAX at level 10: large
// enough that neither the chain-length cap nor the accept-length early
// exit ever triggers before the natural length/window limits do.
const unlimited = 1 << 30

var btLevels = map[int]btLevel{
	8:  {maxDepth: 16, acceptLen: 96},
	9:  {maxDepth: 32, acceptLen: 224},
	10: {maxDepth: unlimited, acceptLen: unlimited},
}

// costInf marks a path as not yet reached in the forwards cost table.
const costInf = 1 << 30

// packBT implements the forwards dynamic-programming parse over a
// binary-tree match finder (spec §4.E, §4.F; levels 8-10), grounded on
// crush_btparse.h:crush_pack_btparse. The tree-rerooting search mirrors
// the teacher's chain.go in spirit (a per-hash structure walked
// closest-first, updated as positions are visited) but the teacher only
// ever keeps singly-linked chains; the binary tree and its dynamic
// re-rooting onto the current search string, and the forwards bit-cost
// DP over it, have no analogue in the teacher or the rest of the pack,
// so the tree-walk and DP below follow the reference directly, with C's
// pointer-to-pointer rewiring (`uint32_t *lt_node`) expressed as a
// slot index into the nodes slice.
func packBT(in []byte, dst []byte, lvl btLevel) []byte {
	n := len(in)

	var w bitWriter
	w.init(dst)

	if n < 4 {
		for i := 0; i < n; i++ {
			putLiteral(&w, in[i])
		}
		return w.finalize()
	}

	lastMatchPos := n - 3

	cost := make([]int, n+1)
	mpos := make([]int, n+1)
	mlen := make([]int, n+1)
	nodes := make([]int, 2*n)

	lookup := make([]int, lookupSize)
	for i := range lookup {
		lookup[i] = noMatchPos
	}

	for i := range cost {
		cost[i] = costInf
		mlen[i] = 1
	}
	cost[0] = 0

	// nextMatchCur tracks how far ahead a long-enough match has already
	// committed us: positions before it still re-root their tree but
	// skip the cost search, which bounds the work spent inside a long
	// match.
	nextMatchCur := 0

	// Phase 1: forwards DP over the binary tree, re-rooted at cur each
	// iteration.
	for cur := 0; cur <= lastMatchPos; cur++ {
		if cost[cur+1] > cost[cur]+literalCost {
			cost[cur+1] = cost[cur] + literalCost
			mlen[cur+1] = 1
		}

		if cur > nextMatchCur {
			nextMatchCur = cur
		}

		maxLen := MinMatch - 1

		h := hash3(in[cur:], hashBits)
		pos := lookup[h]
		lookup[h] = cur

		ltSlot := 2 * cur
		gtSlot := 2*cur + 1
		ltLen := 0
		gtLen := 0

		lenLeft := MaxMatch
		if n-cur < lenLeft {
			lenLeft = n - cur
		}
		lenLimit := lenLeft
		if cur != nextMatchCur && lvl.acceptLen < lenLeft {
			lenLimit = lvl.acceptLen
		}
		numChain := lvl.maxDepth

		for {
			if pos == noMatchPos || cur-pos > WSize || numChain == 0 {
				nodes[ltSlot] = noMatchPos
				nodes[gtSlot] = noMatchPos
				break
			}
			numChain--

			length := ltLen
			if gtLen < length {
				length = gtLen
			}

			for length < lenLimit && in[pos+length] == in[cur+length] {
				length++
			}

			if cur == nextMatchCur && length > maxLen {
				for i := maxLen + 1; i <= length; i++ {
					costThere := cost[cur] + matchCost(cur-pos-1, i)
					if costThere < cost[cur+i] {
						cost[cur+i] = costThere
						mpos[cur+i] = cur - pos - 1
						mlen[cur+i] = i
					}
				}

				maxLen = length

				if length >= lvl.acceptLen {
					nextMatchCur = cur + length
				}
			}

			if length >= lvl.acceptLen || length == lenLimit {
				nodes[ltSlot] = nodes[2*pos]
				nodes[gtSlot] = nodes[2*pos+1]
				break
			}

			if in[pos+length] < in[cur+length] {
				nodes[ltSlot] = pos
				ltSlot = 2*pos + 1
				pos = nodes[ltSlot]
				ltLen = length
			} else {
				nodes[gtSlot] = pos
				gtSlot = 2 * pos
				pos = nodes[gtSlot]
				gtLen = length
			}
		}
	}

	for cur := lastMatchPos + 1; cur < n; cur++ {
		if cost[cur+1] > cost[cur]+literalCost {
			cost[cur+1] = cost[cur] + literalCost
			mlen[cur+1] = 1
		}
	}

	// Phase 2: gather the chosen path backwards into the tail of
	// mlen/mpos.
	cur := n
	nextToken := n

	for cur > 0 {
		mlen[nextToken] = mlen[cur]
		mpos[nextToken] = mpos[cur]
		step := mlen[cur]
		cur -= step
		nextToken--
	}

	// Phase 3: emit tokens in source order.
	cur = 0
	for i := nextToken + 1; i <= n; i++ {
		if mlen[i] == 1 {
			putLiteral(&w, in[cur])
		} else {
			putMatch(&w, mpos[i], mlen[i])
		}
		cur += mlen[i]
	}

	return w.finalize()
}
