package domain

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != MaxCards {
		t.Fatalf("deck size = %d, want %d", len(deck), MaxCards)
	}

	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card found: %s", c)
		}
		seen[c] = true
		if c.Rank < Rank3 || c.Rank > RankBigJoker {
			t.Fatalf("rank out of range: %d", c.Rank)
		}
		if c.Rank.IsJoker() != (c.Suit == SuitNone) {
			t.Fatalf("joker/suit mismatch: %+v", c)
		}
	}

	count := deck.CountRanks()
	for r := Rank3; r <= Rank2; r++ {
		if count[r] != 4 {
			t.Fatalf("rank %s count = %d, want 4", r, count[r])
		}
	}
}

func TestShuffleDeckKeepsCards(t *testing.T) {
	deck := NewDeck()
	shuffled := ShuffleDeck(deck, rand.New(rand.NewSource(7)))
	if !shuffled.Equal(deck) {
		t.Fatalf("shuffle changed the card multiset")
	}
	if reflect.DeepEqual(shuffled, deck) {
		t.Fatalf("shuffle left deck in original order")
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	for _, c := range NewDeck() {
		got, err := ParseCard(c.String())
		if err != nil {
			t.Fatalf("ParseCard(%q) error: %v", c.String(), err)
		}
		if got != c {
			t.Fatalf("ParseCard(%q) = %+v, want %+v", c.String(), got, c)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		token string
		want  Card
		ok    bool
	}{
		{token: "3S", want: Card{Rank: Rank3, Suit: SuitSpade}, ok: true},
		{token: "th", want: Card{Rank: Rank10, Suit: SuitHeart}, ok: true},
		{token: "10♦", want: Card{Rank: Rank10, Suit: SuitDiamond}, ok: true},
		{token: "2c", want: Card{Rank: Rank2, Suit: SuitClub}, ok: true},
		{token: "BJ", want: Card{Rank: RankBigJoker}, ok: true},
		{token: "r", want: Card{Rank: RankSmallJoker}, ok: true},
		{token: "1S"},
		{token: "KX"},
		{token: "Q"},
		{token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseCard(tt.token)
			if !tt.ok {
				if !errors.Is(err, ErrInvalidCard) {
					t.Fatalf("ParseCard(%q) error = %v, want ErrInvalidCard", tt.token, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCard(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestSortHand(t *testing.T) {
	cards := MustParseCards("3S 2H R 10C 10S r AD")
	SortHand(cards)
	if got, want := cards.String(), "R r 2H AD 10S 10C 3S"; got != want {
		t.Fatalf("SortHand() = %q, want %q", got, want)
	}
}

func TestRemoveCards(t *testing.T) {
	hand := MustParseCards("3S 4H 5D 6S 4H")
	played := MustParseCards("4H 6S")

	got := RemoveCards(hand, played)
	want := MustParseCards("3S 5D 4H")

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RemoveCards() = %v, want %v", got, want)
	}
}

func TestContains(t *testing.T) {
	pool := MustParseCards("3S 3H 4D R")
	tests := []struct {
		name   string
		subset string
		want   bool
	}{
		{name: "single", subset: "3H", want: true},
		{name: "pair", subset: "3S 3H", want: true},
		{name: "duplicate not held", subset: "3S 3S", want: false},
		{name: "missing card", subset: "5D", want: false},
		{name: "joker", subset: "R", want: true},
		{name: "empty", subset: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pool.Contains(MustParseCards(tt.subset)); got != tt.want {
				t.Fatalf("Contains(%q) = %v, want %v", tt.subset, got, tt.want)
			}
		})
	}
}

func TestCardsValidate(t *testing.T) {
	if err := NewDeck().Validate(); err != nil {
		t.Fatalf("full deck: %v", err)
	}
	if err := MustParseCards("3S 3S 3S 3S 3S").Validate(); !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("duplicates: err = %v, want ErrDuplicateCard", err)
	}
	if err := NewDeck().Concat(MustParseCards("3S")).Validate(); !errors.Is(err, ErrTooManyCards) {
		t.Errorf("55 cards: err = %v, want ErrTooManyCards", err)
	}
}

func TestNewGameDeal(t *testing.T) {
	deck := ShuffleDeck(NewDeck(), rand.New(rand.NewSource(1)))
	g := NewGame("g1", [PlayerCount]string{"a", "b", "c"}, deck)

	if g.Phase != PhaseBidding {
		t.Fatalf("phase = %s, want %s", g.Phase, PhaseBidding)
	}
	for seat, p := range g.Players {
		if len(p.Hand) != HandSize {
			t.Fatalf("seat %d hand size = %d, want %d", seat, len(p.Hand), HandSize)
		}
		if p.Seat != seat {
			t.Fatalf("seat mismatch: %d != %d", p.Seat, seat)
		}
	}
	if len(g.Kitty) != KittySize {
		t.Fatalf("kitty size = %d, want %d", len(g.Kitty), KittySize)
	}
	if !g.CardsInPlay().Equal(NewDeck()) {
		t.Fatalf("dealt cards do not cover the deck")
	}
	if got := g.SeatOf("c"); got != 2 {
		t.Fatalf("SeatOf(c) = %d, want 2", got)
	}
	if got := g.CountPlayersWithCards(); got != PlayerCount {
		t.Fatalf("CountPlayersWithCards() = %d, want %d", got, PlayerCount)
	}
	if got := len(g.Unseen(0)); got != MaxCards-HandSize {
		t.Fatalf("Unseen(0) = %d cards, want %d", got, MaxCards-HandSize)
	}
}
