package internal

import "landlord/internal/domain"

// chainMove identifies a chain by shape and position so it can be replayed
// against any pool with the same rank counts.
type chainMove struct {
	Width int
	Run   rankRun
}

type advancedNode struct {
	move   chainMove // zero Width means stop and decompose the rest greedily
	weight int
}

// advancedSearch memoizes the best plan per rank histogram for one call.
type advancedSearch struct {
	memo map[domain.RankCount]advancedNode
}

// AdvancedAnalyze decomposes cards trying to minimize the hand count. It
// searches over which chains to pull out before falling back to the standard
// decomposition for whatever is left. The search is a heuristic: each leaf is
// scored by its depth plus the standard hand count of the remainder.
func AdvancedAnalyze(cards domain.Cards) domain.HandList {
	fixed := ExtractFixed(cards)
	pool := fixed.Remain
	if len(chainMoves(pool.CountRanks())) == 0 {
		return StandardAnalyze(cards)
	}

	s := &advancedSearch{memo: make(map[domain.RankCount]advancedNode)}
	s.solve(pool.CountRanks())

	out := fixed.Hands()
	for {
		node := s.memo[pool.CountRanks()]
		if node.move.Width == 0 {
			break
		}
		_, chainType, _ := primalShape(node.move.Width)
		chain := takeRun(pool, node.move.Run.Lo, node.move.Run.Length, node.move.Width)
		out = append(out, domain.Hand{Type: chainType, Cards: chain})
		pool = domain.RemoveCards(pool, chain)
	}
	return append(out, StandardAnalyze(pool)...)
}

// AdvancedEvaluate is the number of hands in the advanced decomposition.
func AdvancedEvaluate(cards domain.Cards) int {
	return len(AdvancedAnalyze(cards))
}

// solve returns the minimum weight reachable from count and records the
// chosen move. Stopping is always an option, so the result never exceeds the
// standard hand count.
func (s *advancedSearch) solve(count domain.RankCount) int {
	if node, ok := s.memo[count]; ok {
		return node.weight
	}

	best := advancedNode{weight: standardCount(count)}
	for _, move := range chainMoves(count) {
		next := count
		for r := move.Run.Lo; r <= move.Run.Hi(); r++ {
			next[r] -= move.Width
		}
		if w := 1 + s.solve(next); w < best.weight {
			best = advancedNode{move: move, weight: w}
		}
	}
	s.memo[count] = best
	return best.weight
}

// chainMoves enumerates candidate chains for a node. For each width it takes
// the longest run, every higher run of the same length, then shortens the run
// from the top and repeats down to the minimum length.
func chainMoves(count domain.RankCount) []chainMove {
	var moves []chainMove
	for _, width := range []int{1, 2, 3} {
		_, _, minRanks := primalShape(width)
		run := longestRun(count, width)
		for length := run.Length; length >= minRanks; length-- {
			moves = append(moves, chainMove{Width: width, Run: rankRun{Lo: run.Lo, Length: length}})
			for lo := run.Lo + 1; lo+domain.Rank(length-1) <= domain.RankA; lo++ {
				if runAvailable(count, lo, length, width) {
					moves = append(moves, chainMove{Width: width, Run: rankRun{Lo: lo, Length: length}})
				}
			}
		}
	}
	return moves
}

// standardCount is the standard hand count for a pool holding only 3..A with
// at most three cards per rank.
func standardCount(count domain.RankCount) int {
	n := 0
	for _, width := range []int{3, 2, 1} {
		_, _, minRanks := primalShape(width)
		for _, run := range splitRuns(ranksWithExactly(count, width)) {
			if run.Length >= minRanks {
				n++
			} else {
				n += run.Length
			}
		}
	}
	return n
}
