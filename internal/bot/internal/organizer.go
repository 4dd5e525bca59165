package internal

import (
	"landlord/internal/domain"
)

// OrganizedHand is a greedy partitioning of a player's cards.
type OrganizedHand struct {
	Nuke   domain.HandList
	Bombs  domain.HandList
	Loose  domain.HandList // lone joker and the 2s
	Trios  domain.HandList
	Pairs  domain.HandList
	Solos  domain.HandList
	Remain domain.Cards // cards not yet assigned to any hand
}

// Hands flattens the partition in extraction order.
func (o OrganizedHand) Hands() domain.HandList {
	var out domain.HandList
	for _, group := range []domain.HandList{o.Nuke, o.Bombs, o.Loose, o.Trios, o.Pairs, o.Solos} {
		out = append(out, group...)
	}
	return out
}

// StandardAnalyze decomposes cards with a fixed priority: nuke, bombs from the
// top down, the loose joker and 2s, then trio, pair and solo groups. Runs
// long enough to chain become chains; the rest stay bare.
func StandardAnalyze(cards domain.Cards) domain.HandList {
	return PartitionHand(cards).Hands()
}

// StandardEvaluate is the number of hands in the standard decomposition.
func StandardEvaluate(cards domain.Cards) int {
	return len(StandardAnalyze(cards))
}

// PartitionHand runs the standard extraction pipeline.
func PartitionHand(cards domain.Cards) OrganizedHand {
	organized := ExtractFixed(cards)
	if len(organized.Remain) == 0 {
		return organized
	}

	organized.Trios, organized.Pairs, organized.Solos, organized.Remain = ExtractSets(organized.Remain)
	return organized
}

// ExtractFixed pulls out the hands every decomposition agrees on: the nuke,
// every bomb and the unchainable 2s and lone joker.
func ExtractFixed(cards domain.Cards) OrganizedHand {
	var organized OrganizedHand
	pool := cards.Sorted()

	organized.Nuke, pool = ExtractNuke(pool)
	organized.Bombs, pool = ExtractBombs(pool)
	organized.Loose, pool = ExtractLoose(pool)
	organized.Remain = pool
	return organized
}

// ExtractNuke removes both jokers when present.
func ExtractNuke(pool domain.Cards) (domain.HandList, domain.Cards) {
	count := pool.CountRanks()
	if count[domain.RankSmallJoker] == 0 || count[domain.RankBigJoker] == 0 {
		return nil, pool
	}
	nuke := pool.TakeRank(domain.RankBigJoker, 1).Concat(pool.TakeRank(domain.RankSmallJoker, 1))
	return domain.HandList{{Type: domain.TypeNuke, Cards: nuke}}, domain.RemoveCards(pool, nuke)
}

// ExtractBombs removes every four-of-a-kind, highest rank first.
func ExtractBombs(pool domain.Cards) (domain.HandList, domain.Cards) {
	var bombs domain.HandList
	count := pool.CountRanks()
	for r := domain.Rank2; r >= domain.Rank3; r-- {
		if count[r] != 4 {
			continue
		}
		bomb := pool.TakeRank(r, 4)
		bombs = append(bombs, domain.Hand{Type: domain.TypeBomb, Cards: bomb})
		pool = domain.RemoveCards(pool, bomb)
	}
	return bombs, pool
}

// ExtractLoose removes a leftover joker as a solo and the 2s as one solo,
// pair or trio.
func ExtractLoose(pool domain.Cards) (domain.HandList, domain.Cards) {
	var loose domain.HandList
	count := pool.CountRanks()
	for _, r := range []domain.Rank{domain.RankBigJoker, domain.RankSmallJoker} {
		if count[r] == 1 {
			joker := pool.TakeRank(r, 1)
			loose = append(loose, domain.Hand{Type: domain.TypeSolo, Cards: joker})
			pool = domain.RemoveCards(pool, joker)
		}
	}
	if n := count[domain.Rank2]; n > 0 && n < 4 {
		bare, _, _ := primalShape(n)
		twos := pool.TakeRank(domain.Rank2, n)
		loose = append(loose, domain.Hand{Type: bare, Cards: twos})
		pool = domain.RemoveCards(pool, twos)
	}
	return loose, pool
}

// ExtractSets groups the remaining 3..A cards by exact count and turns each
// group's contiguous runs into chains where they are long enough.
func ExtractSets(pool domain.Cards) (trios, pairs, solos domain.HandList, remaining domain.Cards) {
	count := pool.CountRanks()
	remaining = pool.Sorted()

	groups := [3]domain.HandList{}
	for i, width := range []int{3, 2, 1} {
		var hands domain.HandList
		hands, remaining = extractGroup(remaining, ranksWithExactly(count, width), width)
		groups[i] = hands
	}
	return groups[0], groups[1], groups[2], remaining
}

func extractGroup(pool domain.Cards, ranks []domain.Rank, width int) (domain.HandList, domain.Cards) {
	bare, chain, minRanks := primalShape(width)
	var hands domain.HandList
	for _, run := range splitRuns(ranks) {
		if run.Length >= minRanks {
			cards := takeRun(pool, run.Lo, run.Length, width)
			hands = append(hands, domain.Hand{Type: chain, Cards: cards})
			pool = domain.RemoveCards(pool, cards)
			continue
		}
		for r := run.Lo; r <= run.Hi(); r++ {
			cards := pool.TakeRank(r, width)
			hands = append(hands, domain.Hand{Type: bare, Cards: cards})
			pool = domain.RemoveCards(pool, cards)
		}
	}
	return hands, pool
}
