package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Rank is the face value of a card. Ordinals run 3 (lowest) to big joker.
type Rank uint8

const (
	RankNone Rank = iota
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	Rank2
	RankSmallJoker
	RankBigJoker
)

// RankCount buckets cards by rank; index 0 is unused.
type RankCount [RankBigJoker + 1]int

// Suit is cosmetic. Jokers carry SuitNone.
type Suit uint8

const (
	SuitNone Suit = iota
	SuitClub
	SuitDiamond
	SuitHeart
	SuitSpade
)

// Card is a single playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

var ErrInvalidCard = errors.New("invalid card")

var rankNames = [...]string{"?", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2", "r", "R"}

var suitNames = [...]string{"", "C", "D", "H", "S"}

// IsJoker reports whether r is one of the two jokers.
func (r Rank) IsJoker() bool {
	return r == RankSmallJoker || r == RankBigJoker
}

// Chainable reports whether r may take part in a chain (3 through A).
func (r Rank) Chainable() bool {
	return r >= Rank3 && r <= RankA
}

func (r Rank) String() string {
	if int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "?"
}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return "?"
}

// String renders a card as rank followed by suit letter, e.g. "10H".
// Jokers render as "r" (small) and "R" (big).
func (c Card) String() string {
	if c.Rank.IsJoker() {
		return c.Rank.String()
	}
	return c.Rank.String() + c.Suit.String()
}

// ParseCard parses a single card token produced by Card.String.
// Suit letters are case-insensitive and the symbols ♠♥♦♣ are accepted.
func ParseCard(token string) (Card, error) {
	token = strings.TrimSpace(token)
	switch token {
	case "r", "SJ", "sj":
		return Card{Rank: RankSmallJoker}, nil
	case "R", "BJ", "bj":
		return Card{Rank: RankBigJoker}, nil
	}

	runes := []rune(token)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, token)
	}

	suit, ok := parseSuit(runes[len(runes)-1])
	if !ok {
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, token)
	}
	rank, ok := parseRank(strings.ToUpper(string(runes[:len(runes)-1])))
	if !ok {
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, token)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a whitespace or comma separated list of cards.
func ParseCards(s string) (Cards, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	out := make(Cards, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParseCards is ParseCards for literals known to be valid.
func MustParseCards(s string) Cards {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(s string) (Rank, bool) {
	switch s {
	case "T", "10":
		return Rank10, true
	case "J":
		return RankJ, true
	case "Q":
		return RankQ, true
	case "K":
		return RankK, true
	case "A":
		return RankA, true
	case "2":
		return Rank2, true
	}
	if len(s) == 1 && s[0] >= '3' && s[0] <= '9' {
		return Rank3 + Rank(s[0]-'3'), true
	}
	return RankNone, false
}

func parseSuit(r rune) (Suit, bool) {
	switch r {
	case 'C', 'c', '♣':
		return SuitClub, true
	case 'D', 'd', '♦':
		return SuitDiamond, true
	case 'H', 'h', '♥':
		return SuitHeart, true
	case 'S', 's', '♠':
		return SuitSpade, true
	}
	return SuitNone, false
}
