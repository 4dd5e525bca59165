package domain

import (
	"fmt"
	"strings"
)

// Primal is the core repeated-rank shape of a hand.
type Primal uint8

const (
	PrimalNone Primal = iota
	PrimalSolo
	PrimalPair
	PrimalTrio
	PrimalFour
	PrimalBomb
	PrimalNuke
)

// Kicker is the shape of the cards riding along a trio or four.
type Kicker uint8

const (
	KickerNone Kicker = iota
	KickerSolo
	KickerPair
	KickerDualSolo
	KickerDualPair
)

// Minimum chain lengths, in cards.
const (
	SoloChainMinLength = 5
	PairChainMinLength = 6
	TrioChainMinLength = 6
	FourChainMinLength = 8

	// MaxHandLength bounds the classifier input.
	MaxHandLength = 20
)

// HandType packs primal, kicker and chain flag into one byte:
// bits 0-3 primal, bits 4-6 kicker, bit 7 chain.
type HandType uint8

// TypeNone marks an unclassifiable hand, a missing beat or the end of a ladder.
const TypeNone HandType = 0

const chainBit HandType = 0x80

// NewHandType builds a hand type from its parts.
func NewHandType(p Primal, k Kicker, chain bool) HandType {
	t := HandType(p) | HandType(k)<<4
	if chain {
		t |= chainBit
	}
	return t
}

// Common hand types.
var (
	TypeSolo      = NewHandType(PrimalSolo, KickerNone, false)
	TypePair      = NewHandType(PrimalPair, KickerNone, false)
	TypeTrio      = NewHandType(PrimalTrio, KickerNone, false)
	TypeTrioSolo  = NewHandType(PrimalTrio, KickerSolo, false)
	TypeTrioPair  = NewHandType(PrimalTrio, KickerPair, false)
	TypeBomb      = NewHandType(PrimalBomb, KickerNone, false)
	TypeNuke      = NewHandType(PrimalNuke, KickerNone, false)
	TypeSoloChain = NewHandType(PrimalSolo, KickerNone, true)
	TypePairChain = NewHandType(PrimalPair, KickerNone, true)
	TypeTrioChain = NewHandType(PrimalTrio, KickerNone, true)
	TypeFourChain = NewHandType(PrimalFour, KickerNone, true)
)

func (t HandType) Primal() Primal { return Primal(t & 0x0F) }
func (t HandType) Kicker() Kicker { return Kicker(t >> 4 & 0x07) }
func (t HandType) IsChain() bool  { return t&chainBit != 0 }

// IsBombLike reports whether t is a bomb or the nuke.
func (t HandType) IsBombLike() bool {
	return t == TypeBomb || t == TypeNuke
}

// WithKicker returns t with its kicker replaced.
func (t HandType) WithKicker(k Kicker) HandType {
	return NewHandType(t.Primal(), k, t.IsChain())
}

var primalNames = [...]string{"none", "solo", "pair", "trio", "four", "bomb", "nuke"}

var kickerNames = [...]string{"", "solo", "pair", "dual-solo", "dual-pair"}

func (t HandType) String() string {
	if t == TypeNone {
		return "none"
	}
	var b strings.Builder
	if int(t.Primal()) < len(primalNames) {
		b.WriteString(primalNames[t.Primal()])
	}
	if t.IsChain() {
		b.WriteString("-chain")
	}
	if k := t.Kicker(); k != KickerNone && int(k) < len(kickerNames) {
		b.WriteString("+")
		b.WriteString(kickerNames[k])
	}
	return b.String()
}

// Hand is a classified shape plus the cards realizing it. Primal cards come
// first in descending rank, kicker cards follow.
type Hand struct {
	Type  HandType
	Cards Cards
}

// IsNone reports whether h carries no shape.
func (h Hand) IsNone() bool {
	return h.Type == TypeNone
}

// Rank is the reference rank used for comparison.
func (h Hand) Rank() Rank {
	if len(h.Cards) == 0 {
		return RankNone
	}
	return h.Cards[0].Rank
}

// Clone returns a copy that shares no storage with h.
func (h Hand) Clone() Hand {
	return Hand{Type: h.Type, Cards: h.Cards.Clone()}
}

// PrimalWidth is the number of cards per rank in the primal part.
func (t HandType) PrimalWidth() int {
	switch t.Primal() {
	case PrimalSolo:
		return 1
	case PrimalPair:
		return 2
	case PrimalTrio:
		return 3
	case PrimalFour, PrimalBomb:
		return 4
	}
	return 0
}

// KickerWidth returns cards per kicker rank and kicker ranks per primal rank.
func (t HandType) KickerWidth() (cardsPerRank, ranksPerPrimal int) {
	switch t.Kicker() {
	case KickerSolo:
		return 1, 1
	case KickerPair:
		return 2, 1
	case KickerDualSolo:
		return 1, 2
	case KickerDualPair:
		return 2, 2
	}
	return 0, 0
}

// ChainLength returns the number of primal ranks in h.
func (h Hand) ChainLength() int {
	w := h.Type.PrimalWidth()
	if w == 0 {
		return 0
	}
	per, ranks := h.Type.KickerWidth()
	return len(h.Cards) / (w + per*ranks)
}

// PrimalCards returns the primal part of h.
func (h Hand) PrimalCards() Cards {
	n := h.ChainLength() * h.Type.PrimalWidth()
	if h.Type == TypeNuke {
		n = len(h.Cards)
	}
	return h.Cards[:n].Clone()
}

// KickerCards returns the kicker part of h.
func (h Hand) KickerCards() Cards {
	n := len(h.PrimalCards())
	return h.Cards[n:].Clone()
}

func (h Hand) String() string {
	return fmt.Sprintf("%s[%s]", h.Type, h.Cards)
}

// HandList is an ordered decomposition of a collection into hands.
type HandList []Hand

// Cards returns the union of all member cards.
func (hl HandList) Cards() Cards {
	var out Cards
	for _, h := range hl {
		out = append(out, h.Cards...)
	}
	return out
}

// Count returns how many hands of type t are in the list.
func (hl HandList) Count(t HandType) int {
	n := 0
	for _, h := range hl {
		if h.Type == t {
			n++
		}
	}
	return n
}

// Find returns the index of the first hand of type t, or -1.
func (hl HandList) Find(t HandType) int {
	for i, h := range hl {
		if h.Type == t {
			return i
		}
	}
	return -1
}

// Without returns a copy of hl with the hand at index i removed.
func (hl HandList) Without(i int) HandList {
	out := make(HandList, 0, len(hl))
	out = append(out, hl[:i]...)
	return append(out, hl[i+1:]...)
}
