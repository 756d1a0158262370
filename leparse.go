package crush

import "math/bits"

// leLevel holds the (max_depth, accept_len) parameters for one of the
// hash-chain parser's levels, per spec §4.D's level parameter table.
type leLevel struct {
	maxDepth  int
	acceptLen int
}

var leLevels = map[int]leLevel{
	5: {maxDepth: 1, acceptLen: 16},
	6: {maxDepth: 8, acceptLen: 32},
	7: {maxDepth: 64, acceptLen: 64},
}

// leHashBits returns the hash width used to build the chains: the
// default hashBits, shrunk to floor(log2(n)) when 2*n < lookupSize so
// that a small input does not pay to initialise a full-size table.
func leHashBits(n int) int {
	if 2*n < lookupSize {
		return bits.Len(uint(n)) - 1
	}
	return hashBits
}

// leWorkmemWords reports the word count the reference implementation
// would need for this parse, aliasing prev<->cost and lookup<->mpos to
// fit in max(3N, N+2^bits) words. Advisory only: packLE below allocates
// its own, unaliased scratch slices (see SPEC_FULL.md §3).
func leWorkmemWords(n int) int {
	if lookupSize < 2*n {
		return 3 * n
	}
	return n + lookupSize
}

// packLE implements the backwards dynamic-programming parse with
// left-extension over hash chains (spec §4.D, §4.F; levels 5-7),
// grounded on crush_leparse.h:crush_pack_leparse. Structurally indebted
// to the teacher's chain.go (HashChain: per-hash linked list via prev,
// closest-first walk) adapted from the teacher's greedy single-match
// scoring to the reference's bit-cost DP with left-extension, which
// neither the teacher nor the rest of the pack implements.
func packLE(in []byte, dst []byte, lvl leLevel) []byte {
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

	prev := make([]int, n)
	cost := make([]int, n+1)
	mlen := make([]int, n)
	mpos := make([]int, n)

	hbits := leHashBits(n)
	lookup := make([]int, 1<<hbits)
	for i := range lookup {
		lookup[i] = noMatchPos
	}

	// Phase 1: build hash chains.
	for i := 0; i <= lastMatchPos; i++ {
		h := hash3(in[i:], hbits)
		prev[i] = lookup[h]
		lookup[h] = i
	}

	// Forced trailing literals and sentinels.
	mlen[n-2] = 1
	mlen[n-1] = 1
	cost[n-2] = 18
	cost[n-1] = 9
	cost[n] = 0

	// Phase 2: backwards DP with left-extension.
	for cur := lastMatchPos; cur > 0; cur-- {
		pos := prev[cur]

		cost[cur] = cost[cur+1] + literalCost
		mlen[cur] = 1

		maxLen := MinMatch - 1

		lenLimit := MaxMatch
		if n-cur < lenLimit {
			lenLimit = n - cur
		}
		numChain := lvl.maxDepth

		for pos != noMatchPos && numChain > 0 {
			numChain--

			if cur-pos > WSize {
				break
			}

			length := 0

			if maxLen < lenLimit && in[pos+maxLen] == in[cur+maxLen] {
				for length < lenLimit && in[pos+length] == in[cur+length] {
					length++
				}
			}

			if length > maxLen {
				minCost := -1
				minCostLen := MinMatch - 1

				for i := maxLen + 1; i <= length; i++ {
					costHere := matchCost(cur-pos-1, i) + cost[cur+i]
					if minCost == -1 || costHere < minCost {
						minCost = costHere
						minCostLen = i
					}
				}

				maxLen = length

				if minCost < cost[cur] {
					cost[cur] = minCost
					mpos[cur] = pos
					mlen[cur] = minCostLen

					if pos > 0 && in[pos-1] == in[cur-1] && minCostLen < MaxMatch {
						for pos > 0 && in[pos-1] == in[cur-1] && minCostLen < MaxMatch {
							cur--
							pos--
							minCostLen++
							costHere := matchCost(cur-pos-1, minCostLen) + cost[cur+minCostLen]
							cost[cur] = costHere
							mpos[cur] = pos
							mlen[cur] = minCostLen
						}
						break
					}
				}
			}

			if length >= lvl.acceptLen || length == lenLimit {
				break
			}

			pos = prev[pos]
		}
	}

	mpos[0] = 0
	mlen[0] = 1

	// Phase 3: emit tokens along the chosen path, in source order.
	for i := 0; i < n; i += mlen[i] {
		if mlen[i] == 1 {
			putLiteral(&w, in[i])
		} else {
			offs := i - mpos[i] - 1
			putMatch(&w, offs, mlen[i])
		}
	}

	return w.finalize()
}
