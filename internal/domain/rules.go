package domain

import "sort"

// shapeSpec describes one candidate classification for a given card count.
type shapeSpec struct {
	primal      Primal
	kicker      Kicker
	chainRanks  int // number of primal ranks; 1 means no chain
	primalWidth int
}

// kickerShapes lists the kicker-bearing and bare primal shapes by total length.
// Pure chains and the bomb/nuke are recognised before this table is consulted.
var kickerShapes = map[int][]shapeSpec{
	1:  {{PrimalSolo, KickerNone, 1, 1}},
	2:  {{PrimalPair, KickerNone, 1, 2}},
	3:  {{PrimalTrio, KickerNone, 1, 3}},
	4:  {{PrimalTrio, KickerSolo, 1, 3}},
	5:  {{PrimalTrio, KickerPair, 1, 3}},
	6:  {{PrimalFour, KickerDualSolo, 1, 4}},
	8:  {{PrimalTrio, KickerSolo, 2, 3}, {PrimalFour, KickerDualPair, 1, 4}},
	10: {{PrimalTrio, KickerPair, 2, 3}},
	12: {{PrimalTrio, KickerSolo, 3, 3}, {PrimalFour, KickerDualSolo, 2, 4}},
	15: {{PrimalTrio, KickerPair, 3, 3}},
	16: {{PrimalTrio, KickerSolo, 4, 3}, {PrimalFour, KickerDualPair, 2, 4}},
	18: {{PrimalFour, KickerDualSolo, 3, 4}},
	20: {{PrimalTrio, KickerSolo, 5, 3}, {PrimalTrio, KickerPair, 4, 3}},
}

// chainShapes are the kicker-less chains, tried in this order.
var chainShapes = []struct {
	primal    Primal
	width     int
	minLength int
}{
	{PrimalSolo, 1, SoloChainMinLength},
	{PrimalPair, 2, PairChainMinLength},
	{PrimalTrio, 3, TrioChainMinLength},
	{PrimalFour, 4, FourChainMinLength},
}

// Classify analyzes a set of cards and returns the hand they form.
// The result has TypeNone when the cards form no legal hand.
func Classify(cards Cards) Hand {
	n := len(cards)
	if n == 0 || n > MaxHandLength {
		return Hand{}
	}

	sorted := cards.Sorted()
	count := sorted.CountRanks()

	if n == 2 && count[RankSmallJoker] == 1 && count[RankBigJoker] == 1 {
		return Hand{Type: TypeNuke, Cards: sorted}
	}
	if n == 4 && count[sorted[0].Rank] == 4 {
		return Hand{Type: TypeBomb, Cards: sorted}
	}

	for _, shape := range chainShapes {
		if n < shape.minLength || n%shape.width != 0 {
			continue
		}
		if isChainRun(count, shape.width, n/shape.width) {
			return Hand{Type: NewHandType(shape.primal, KickerNone, true), Cards: sorted}
		}
	}

	pattern := countPattern(count)
	for _, shape := range kickerShapes[n] {
		if !matchPattern(pattern, shape.pattern()) {
			continue
		}
		if shape.chainRanks > 1 && !isChainRun(count, shape.primalWidth, shape.chainRanks) {
			continue
		}
		return Hand{
			Type:  NewHandType(shape.primal, shape.kicker, shape.chainRanks > 1),
			Cards: distribute(sorted, count, shape),
		}
	}

	return Hand{}
}

// IsValidHand reports whether the cards form any legal hand.
func IsValidHand(cards Cards) bool {
	return !Classify(cards).IsNone()
}

// pattern returns the expected descending per-rank count vector.
func (s shapeSpec) pattern() []int {
	per, ranks := NewHandType(s.primal, s.kicker, false).KickerWidth()
	out := make([]int, 0, s.chainRanks*(1+ranks))
	for i := 0; i < s.chainRanks; i++ {
		out = append(out, s.primalWidth)
	}
	for i := 0; i < s.chainRanks*ranks; i++ {
		out = append(out, per)
	}
	return out
}

// countPattern returns the non-zero rank counts in descending order.
func countPattern(count RankCount) []int {
	out := make([]int, 0, len(count))
	for _, c := range count {
		if c > 0 {
			out = append(out, c)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func matchPattern(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// isChainRun reports whether the ranks holding exactly width cards form a
// single contiguous run of n ranks within 3..A.
func isChainRun(count RankCount, width, n int) bool {
	first := RankNone
	seen := 0
	for r := Rank3; r <= RankBigJoker; r++ {
		if count[r] != width {
			continue
		}
		if !r.Chainable() {
			return false
		}
		if seen == 0 {
			first = r
		}
		if r != first+Rank(seen) {
			return false
		}
		seen++
	}
	return seen == n
}

// distribute orders primal cards before kicker cards, both descending.
func distribute(sorted Cards, count RankCount, shape shapeSpec) Cards {
	per, _ := NewHandType(shape.primal, shape.kicker, false).KickerWidth()
	primal := make(Cards, 0, len(sorted))
	kicker := make(Cards, 0, len(sorted))
	for _, c := range sorted {
		switch count[c.Rank] {
		case shape.primalWidth:
			primal = append(primal, c)
		case per:
			kicker = append(kicker, c)
		}
	}
	return append(primal, kicker...)
}
