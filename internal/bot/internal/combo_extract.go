package internal

import "landlord/internal/domain"

// rankRun is a contiguous span of ranks [Lo, Lo+Length).
type rankRun struct {
	Lo     domain.Rank
	Length int
}

func (r rankRun) Hi() domain.Rank {
	return r.Lo + domain.Rank(r.Length-1)
}

// splitRuns groups ascending ranks into maximal contiguous runs.
func splitRuns(ranks []domain.Rank) []rankRun {
	var runs []rankRun
	for _, r := range ranks {
		if n := len(runs); n > 0 && runs[n-1].Hi()+1 == r {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, rankRun{Lo: r, Length: 1})
	}
	return runs
}

// ranksWithExactly lists, ascending, the chainable ranks holding exactly n cards.
func ranksWithExactly(count domain.RankCount, n int) []domain.Rank {
	var out []domain.Rank
	for r := domain.Rank3; r <= domain.RankA; r++ {
		if count[r] == n {
			out = append(out, r)
		}
	}
	return out
}

// longestRun returns the longest run of chainable ranks each holding at least
// width cards. Ties go to the lowest run.
func longestRun(count domain.RankCount, width int) rankRun {
	var best, cur rankRun
	for r := domain.Rank3; r <= domain.RankA; r++ {
		if count[r] < width {
			cur = rankRun{}
			continue
		}
		if cur.Length == 0 {
			cur.Lo = r
		}
		cur.Length++
		if cur.Length > best.Length {
			best = cur
		}
	}
	return best
}

// primalShape maps a per-rank width to its bare and chained hand types.
func primalShape(width int) (bare, chain domain.HandType, minRanks int) {
	switch width {
	case 1:
		return domain.TypeSolo, domain.TypeSoloChain, domain.SoloChainMinLength
	case 2:
		return domain.TypePair, domain.TypePairChain, domain.PairChainMinLength / 2
	case 3:
		return domain.TypeTrio, domain.TypeTrioChain, domain.TrioChainMinLength / 3
	}
	return domain.TypeNone, domain.TypeNone, 0
}
