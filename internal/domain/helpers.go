package domain

import (
	"errors"
	"fmt"
	"strings"
)

// MaxCards is the size of a full deck and the capacity bound of any collection.
const MaxCards = 54

// Cards is an owned, ordered collection of cards. Operations that return a
// collection always return a fresh slice.
type Cards []Card

var (
	ErrDuplicateCard = errors.New("duplicate card")
	ErrTooManyCards  = errors.New("too many cards")
)

// Validate reports collections that cannot come from one deck: more than
// MaxCards cards, or the same card twice.
func (cs Cards) Validate() error {
	if len(cs) > MaxCards {
		return fmt.Errorf("%w: %d", ErrTooManyCards, len(cs))
	}
	seen := make(map[Card]bool, len(cs))
	for _, c := range cs {
		if seen[c] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
	}
	return nil
}

// Clone returns an independent copy.
func (cs Cards) Clone() Cards {
	out := make(Cards, len(cs))
	copy(out, cs)
	return out
}

// Concat returns cs followed by other.
func (cs Cards) Concat(other Cards) Cards {
	out := make(Cards, 0, len(cs)+len(other))
	out = append(out, cs...)
	return append(out, other...)
}

// CountRanks returns the rank histogram of the collection.
func (cs Cards) CountRanks() RankCount {
	var count RankCount
	for _, c := range cs {
		count[c.Rank]++
	}
	return count
}

// Remove subtracts subset from cs using multiset semantics.
func (cs Cards) Remove(subset Cards) Cards {
	return RemoveCards(cs, subset)
}

// Contains reports whether every card of subset (with multiplicity) is in cs.
func (cs Cards) Contains(subset Cards) bool {
	if len(subset) == 0 || len(subset) > len(cs) {
		return false
	}
	counts := make(map[Card]int, len(cs))
	for _, c := range cs {
		counts[c]++
	}
	for _, c := range subset {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

// Equal reports whether both collections hold the same multiset of cards.
func (cs Cards) Equal(other Cards) bool {
	if len(cs) != len(other) {
		return false
	}
	if len(cs) == 0 {
		return true
	}
	return cs.Contains(other)
}

// RemoveRank returns cs without any card of rank r.
func (cs Cards) RemoveRank(r Rank) Cards {
	out := make(Cards, 0, len(cs))
	for _, c := range cs {
		if c.Rank != r {
			out = append(out, c)
		}
	}
	return out
}

// TakeRank returns up to n cards of rank r in collection order.
func (cs Cards) TakeRank(r Rank, n int) Cards {
	out := make(Cards, 0, n)
	for _, c := range cs {
		if len(out) == n {
			break
		}
		if c.Rank == r {
			out = append(out, c)
		}
	}
	return out
}

func (cs Cards) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// RemoveCards removes the specified cards from a hand and returns the updated hand.
func RemoveCards(hand Cards, toRemove Cards) Cards {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand.Clone()
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make(Cards, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}
