package domain

import (
	"math/rand"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected HandType
		rank     Rank
	}{
		{name: "Solo", cards: "7H", expected: TypeSolo, rank: Rank7},
		{name: "Solo joker", cards: "R", expected: TypeSolo, rank: RankBigJoker},
		{name: "Pair", cards: "9S 9D", expected: TypePair, rank: Rank9},
		{name: "Nuke", cards: "r R", expected: TypeNuke, rank: RankBigJoker},
		{name: "Trio", cards: "QS QH QC", expected: TypeTrio, rank: RankQ},
		{name: "Bomb", cards: "7S 7H 7D 7C", expected: TypeBomb, rank: Rank7},
		{name: "Trio with solo", cards: "5S 5H 5D KC", expected: TypeTrioSolo, rank: Rank5},
		{name: "Trio with pair", cards: "8S 3H 8H 3D 8D", expected: TypeTrioPair, rank: Rank8},
		{name: "Four with dual solo", cards: "6S 6H 6D 6C 9S R", expected: NewHandType(PrimalFour, KickerDualSolo, false), rank: Rank6},
		{name: "Four with dual pair", cards: "6S 6H 6D 6C 9S 9H JS JD", expected: NewHandType(PrimalFour, KickerDualPair, false), rank: Rank6},
		{name: "Solo chain", cards: "3S 4H 5D 6C 7S", expected: TypeSoloChain, rank: Rank7},
		{name: "Solo chain to ace", cards: "10S JH QD KC AS", expected: TypeSoloChain, rank: RankA},
		{name: "Pair chain", cards: "3S 3H 4S 4H 5S 5H", expected: TypePairChain, rank: Rank5},
		{name: "Trio chain", cards: "9S 9H 9D 10S 10H 10D", expected: TypeTrioChain, rank: Rank10},
		{name: "Four chain", cards: "9S 9H 9D 9C 10S 10H 10D 10C", expected: TypeFourChain, rank: Rank10},
		{name: "Trio chain with solos", cards: "9S 9H 9D 10S 10H 10D 3C 4C", expected: NewHandType(PrimalTrio, KickerSolo, true), rank: Rank10},
		{name: "Trio chain with pairs", cards: "9S 9H 9D 10S 10H 10D 3C 3D 4C 4D", expected: NewHandType(PrimalTrio, KickerPair, true), rank: Rank10},
		{name: "Invalid: two different solos", cards: "3S 4S"},
		{name: "Invalid: solo chain too short", cards: "3S 4H 5D 6C"},
		{name: "Invalid: chain through 2", cards: "JS QH KD AC 2S"},
		{name: "Invalid: gap in chain", cards: "3S 4H 5D 6C 8S"},
		{name: "Invalid: pair chain too short", cards: "3S 3H 4S 4H"},
		{name: "Invalid: trio with two solos", cards: "5S 5H 5D KC QC"},
		{name: "Invalid: trio chain with 2s", cards: "AS AH AD 2S 2H 2D"},
		{name: "Invalid: empty", cards: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := Classify(MustParseCards(tt.cards))
			if hand.Type != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, hand.Type)
			}
			if hand.Rank() != tt.rank && !hand.IsNone() {
				t.Errorf("expected rank %v, got %v", tt.rank, hand.Rank())
			}
		})
	}
}

func TestClassifyOversize(t *testing.T) {
	deck := NewDeck()
	if got := Classify(deck[:MaxHandLength+1]); !got.IsNone() {
		t.Fatalf("Classify(%d cards) = %v, want none", MaxHandLength+1, got.Type)
	}
}

func TestClassifyDistributesKickersLast(t *testing.T) {
	hand := Classify(MustParseCards("3C 9S 4C 9H 10S 9D 10H 10D"))
	if got, want := hand.PrimalCards().String(), "10S 10H 10D 9S 9H 9D"; got != want {
		t.Fatalf("primal = %q, want %q", got, want)
	}
	if got, want := hand.KickerCards().String(), "4C 3C"; got != want {
		t.Fatalf("kicker = %q, want %q", got, want)
	}
	if hand.ChainLength() != 2 {
		t.Fatalf("chain length = %d, want 2", hand.ChainLength())
	}
}

// everyShape holds one hand of every legal type.
var everyShape = []string{
	"8S",
	"4S 4H",
	"7S 7H 7D",
	"5S 5H 5D KC",
	"5S 5H 5D KC KD",
	"3S 4H 5D 6C 7S",
	"3S 3H 4S 4H 5S 5H",
	"3S 3H 3D 4S 4H 4D",
	"3S 3H 3D 4S 4H 4D 8S 9S",
	"3S 3H 3D 4S 4H 4D 8S 8H 9S 9H",
	"6S 6H 6D 6C 3S 9H",
	"6S 6H 6D 6C 3S 3H 9S 9H",
	"9S 9H 9D 9C 10S 10H 10D 10C",
	"9S 9H 9D 9C",
	"r R",
}

func TestClassifyOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, s := range everyShape {
		cards := MustParseCards(s)
		want := Classify(cards)
		if want.IsNone() {
			t.Fatalf("%s does not classify", s)
		}
		for i := 0; i < 50; i++ {
			shuffled := make(Cards, len(cards))
			for j, k := range rng.Perm(len(cards)) {
				shuffled[j] = cards[k]
			}
			got := Classify(shuffled)
			if got.Type != want.Type || got.Cards.String() != want.Cards.String() {
				t.Fatalf("Classify(%s) = %v, want %v", shuffled, got, want)
			}
		}
	}
}

func TestCompareReflexive(t *testing.T) {
	seen := make(map[HandType]bool)
	for _, s := range everyShape {
		h := Classify(MustParseCards(s))
		if seen[h.Type] {
			t.Fatalf("%s repeats type %s", s, h.Type)
		}
		seen[h.Type] = true
		if got := Compare(h, h); got != Equal {
			t.Errorf("Compare(%s, %s) = %v, want equal", h, h, got)
		}
		if got := Compare(h, h.Clone()); got != Equal {
			t.Errorf("Compare(%s, clone) = %v, want equal", h, got)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected CompareResult
	}{
		{name: "Higher solo", a: "8S", b: "7S", expected: Greater},
		{name: "Lower pair", a: "4S 4H", b: "9S 9H", expected: Less},
		{name: "Same rank pair", a: "4S 4H", b: "4D 4C", expected: Equal},
		{name: "Two over ace", a: "2S", b: "AS", expected: Greater},
		{name: "Bomb over trio with solo", a: "3S 3H 3D 3C", b: "AS AH AD 4C", expected: Greater},
		{name: "Higher bomb", a: "5S 5H 5D 5C", b: "4S 4H 4D 4C", expected: Greater},
		{name: "Nuke over bomb", a: "r R", b: "2S 2H 2D 2C", expected: Greater},
		{name: "Nuke against nuke", a: "r R", b: "R r", expected: Equal},
		{name: "Pair under nuke", a: "2S 2H", b: "r R", expected: Less},
		{name: "Different types", a: "3S 3H", b: "4S", expected: Illegal},
		{name: "Different chain lengths", a: "4S 5H 6D 7C 8S 9S", b: "3S 4H 5D 6C 7S", expected: Illegal},
		{name: "Invalid operand", a: "3S 4H", b: "4S", expected: Illegal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(Classify(MustParseCards(tt.a)), Classify(MustParseCards(tt.b)))
			if got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCompareAntisymmetric(t *testing.T) {
	hands := []string{"8S", "2S", "4S 4H", "3S 3H 3D 3C", "r R", "5S 5H 5D KC", "3S 4H 5D 6C 7S"}
	for _, x := range hands {
		for _, y := range hands {
			a, b := Classify(MustParseCards(x)), Classify(MustParseCards(y))
			ab, ba := Compare(a, b), Compare(b, a)
			switch ab {
			case Greater:
				if ba != Less {
					t.Fatalf("%s vs %s: %v / %v", x, y, ab, ba)
				}
			case Less:
				if ba != Greater {
					t.Fatalf("%s vs %s: %v / %v", x, y, ab, ba)
				}
			default:
				if ba != ab {
					t.Fatalf("%s vs %s: %v / %v", x, y, ab, ba)
				}
			}
		}
	}
}

func TestCanBeat(t *testing.T) {
	tests := []struct {
		name     string
		prev     string
		new      string
		expected bool
	}{
		{name: "Higher solo beats lower solo", prev: "3S", new: "4S", expected: true},
		{name: "Same rank does not beat", prev: "9S 9H", new: "9D 9C", expected: false},
		{name: "Bomb beats chain", prev: "3S 4H 5D 6C 7S", new: "3D 3C 3H 3S", expected: true},
		{name: "Invalid play never beats", prev: "3S", new: "5S 6S", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanBeat(MustParseCards(tt.prev), MustParseCards(tt.new)); got != tt.expected {
				t.Errorf("CanBeat() = %v, want %v", got, tt.expected)
			}
		})
	}
}
