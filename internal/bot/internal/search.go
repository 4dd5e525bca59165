package internal

import (
	"sort"

	"landlord/internal/domain"
)

// SearchBeat returns the lowest hand formed from pool that beats toBeat.
// When inProgress is not none the search resumes above it, so repeated calls
// walk a ladder of increasingly strong beats. A none hand ends the ladder.
func SearchBeat(pool domain.Cards, toBeat, inProgress domain.Hand) domain.Hand {
	if toBeat.IsNone() {
		return domain.Hand{}
	}
	target := toBeat
	if !inProgress.IsNone() {
		target = inProgress
	}

	sorted := pool.Sorted()
	count := sorted.CountRanks()

	switch target.Type {
	case domain.TypeNuke:
		return domain.Hand{}
	case domain.TypeBomb:
		if h := searchPrimal(sorted, count, domain.TypeBomb, 4, target.Rank()+1); !h.IsNone() {
			return h
		}
		return searchNuke(sorted, count)
	}

	if h := searchSameType(sorted, count, target); !h.IsNone() {
		return h
	}
	if h := searchPrimal(sorted, count, domain.TypeBomb, 4, domain.Rank3); !h.IsNone() {
		return h
	}
	return searchNuke(sorted, count)
}

// SearchBeatList collects the full ladder of beats for toBeat, weakest first.
func SearchBeatList(pool domain.Cards, toBeat domain.Hand) domain.HandList {
	var out domain.HandList
	for h := SearchBeat(pool, toBeat, domain.Hand{}); !h.IsNone(); h = SearchBeat(pool, toBeat, h) {
		out = append(out, h)
	}
	return out
}

func searchSameType(pool domain.Cards, count domain.RankCount, target domain.Hand) domain.Hand {
	t := target.Type
	width := t.PrimalWidth()
	if t.Kicker() != domain.KickerNone {
		return searchKicker(pool, count, target)
	}
	if t.IsChain() {
		return searchChain(pool, count, t, width, target.ChainLength(), lowestPrimalRank(target)+1)
	}
	return searchPrimal(pool, count, t, width, target.Rank()+1)
}

// searchPrimal finds the lowest rank at or above from holding width cards.
func searchPrimal(pool domain.Cards, count domain.RankCount, t domain.HandType, width int, from domain.Rank) domain.Hand {
	for r := from; r <= domain.RankBigJoker; r++ {
		if count[r] >= width {
			return domain.Hand{Type: t, Cards: pool.TakeRank(r, width)}
		}
	}
	return domain.Hand{}
}

// searchChain finds the lowest run of length ranks, each holding width cards,
// whose lowest rank is at or above from.
func searchChain(pool domain.Cards, count domain.RankCount, t domain.HandType, width, length int, from domain.Rank) domain.Hand {
	if length <= 0 {
		return domain.Hand{}
	}
	for lo := from; lo+domain.Rank(length-1) <= domain.RankA; lo++ {
		if !runAvailable(count, lo, length, width) {
			continue
		}
		return domain.Hand{Type: t, Cards: takeRun(pool, lo, length, width)}
	}
	return domain.Hand{}
}

// searchKicker handles trios and fours carrying kickers, chained or not.
// A target whose primal cards all sit in pool is stepped through its kicker
// combinations first; afterwards the primal moves up and takes the lowest
// kickers available.
func searchKicker(pool domain.Cards, count domain.RankCount, target domain.Hand) domain.Hand {
	t := target.Type
	width := t.PrimalWidth()
	per, ranksPer := t.KickerWidth()
	length := target.ChainLength()
	need := length * ranksPer
	lo := lowestPrimalRank(target)

	if primal := target.PrimalCards(); pool.Contains(primal) {
		eligible := kickerRanks(count, per, lo, length)
		comb, ok := combIndexes(eligible, target.KickerCards())
		if ok && nextComb(comb, need, len(eligible)) {
			if h := buildKickerHand(pool, t, lo, length, width, per, eligible, comb); !h.IsNone() {
				return h
			}
		}
	}

	for start := lo + 1; start+domain.Rank(length-1) <= domain.RankBigJoker; start++ {
		if length > 1 && !(start + domain.Rank(length-1)).Chainable() {
			break
		}
		if !runAvailable(count, start, length, width) {
			continue
		}
		eligible := kickerRanks(count, per, start, length)
		if len(eligible) < need {
			continue
		}
		comb := make([]int, need)
		for i := range comb {
			comb[i] = i
		}
		if h := buildKickerHand(pool, t, start, length, width, per, eligible, comb); !h.IsNone() {
			return h
		}
	}
	return domain.Hand{}
}

func searchNuke(pool domain.Cards, count domain.RankCount) domain.Hand {
	if count[domain.RankSmallJoker] == 0 || count[domain.RankBigJoker] == 0 {
		return domain.Hand{}
	}
	cards := pool.TakeRank(domain.RankBigJoker, 1).Concat(pool.TakeRank(domain.RankSmallJoker, 1))
	return domain.Hand{Type: domain.TypeNuke, Cards: cards}
}

func buildKickerHand(pool domain.Cards, t domain.HandType, lo domain.Rank, length, width, per int, eligible []domain.Rank, comb []int) domain.Hand {
	cards := takeRun(pool, lo, length, width)
	for i := len(comb) - 1; i >= 0; i-- {
		cards = append(cards, pool.TakeRank(eligible[comb[i]], per)...)
	}
	h := domain.Classify(cards)
	if h.Type != t {
		return domain.Hand{}
	}
	return h
}

// kickerRanks lists, ascending, the ranks holding at least per cards outside
// the primal run [lo, lo+length).
func kickerRanks(count domain.RankCount, per int, lo domain.Rank, length int) []domain.Rank {
	hi := lo + domain.Rank(length-1)
	var out []domain.Rank
	for r := domain.Rank3; r <= domain.RankBigJoker; r++ {
		if r >= lo && r <= hi {
			continue
		}
		if count[r] >= per {
			out = append(out, r)
		}
	}
	return out
}

// combIndexes maps the kicker ranks of an existing hand to ascending indexes
// into eligible.
func combIndexes(eligible []domain.Rank, kickers domain.Cards) ([]int, bool) {
	pos := make(map[domain.Rank]int, len(eligible))
	for i, r := range eligible {
		pos[r] = i
	}
	seen := make(map[domain.Rank]bool)
	var comb []int
	for i := len(kickers) - 1; i >= 0; i-- {
		r := kickers[i].Rank
		if seen[r] {
			continue
		}
		seen[r] = true
		idx, ok := pos[r]
		if !ok {
			return nil, false
		}
		comb = append(comb, idx)
	}
	sort.Ints(comb)
	return comb, true
}

// nextComb advances comb to the next k-combination of n indexes in
// lexicographic order. It reports false once the combinations are exhausted.
func nextComb(comb []int, k, n int) bool {
	if k == 0 || k > n || len(comb) != k {
		return false
	}
	i := k - 1
	comb[i]++
	for i > 0 && comb[i] >= n-k+1+i {
		i--
		comb[i]++
	}
	if comb[0] > n-k {
		return false
	}
	for i++; i < k; i++ {
		comb[i] = comb[i-1] + 1
	}
	return true
}

func runAvailable(count domain.RankCount, lo domain.Rank, length, width int) bool {
	for r := lo; r < lo+domain.Rank(length); r++ {
		if count[r] < width {
			return false
		}
	}
	return true
}

// takeRun returns width cards from each rank of the run, highest rank first.
func takeRun(pool domain.Cards, lo domain.Rank, length, width int) domain.Cards {
	out := make(domain.Cards, 0, length*width)
	for r := lo + domain.Rank(length-1); r >= lo; r-- {
		out = append(out, pool.TakeRank(r, width)...)
	}
	return out
}

func lowestPrimalRank(h domain.Hand) domain.Rank {
	return h.Rank() - domain.Rank(h.ChainLength()-1)
}
