package domain

import (
	"math/rand"
	"sort"
)

// NewDeck returns the 54-card deck in standard order: 52 suited cards
// followed by the small and big joker.
func NewDeck() Cards {
	deck := make(Cards, 0, MaxCards)
	for s := SuitClub; s <= SuitSpade; s++ {
		for r := Rank3; r <= Rank2; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return append(deck, Card{Rank: RankSmallJoker}, Card{Rank: RankBigJoker})
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck Cards, rng *rand.Rand) Cards {
	out := deck.Clone()
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders cards by descending rank, then descending suit.
// This is the standard order used for hands and analysis results.
func SortHand(cards Cards) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cardPower(cards[i]) > cardPower(cards[j])
	})
}

// SortAscending orders cards by ascending rank, then ascending suit.
func SortAscending(cards Cards) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cardPower(cards[i]) < cardPower(cards[j])
	})
}

// Sorted returns a copy in standard (descending) order.
func (cs Cards) Sorted() Cards {
	out := cs.Clone()
	SortHand(out)
	return out
}

func cardPower(c Card) int {
	return int(c.Rank)<<4 | int(c.Suit)
}
