package brain

import (
	"landlord/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota // We don't know who has it
	StatusMine                      // In the bot's hand
	StatusPlayed                    // Already on the table
)

// GameMemory stores the bot's private view of the game.
type GameMemory struct {
	// DeckStatus tracks all 54 cards, indexed by cardToIndex.
	DeckStatus [domain.MaxCards]CardStatus
	// Played counts the cards each seat has put on the table.
	Played [domain.PlayerCount]int
	// Current is the hand on the table to beat.
	Current domain.Hand
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{}
}

// Reset clears the memory for a new game.
func (m *GameMemory) Reset() {
	for i := range m.DeckStatus {
		m.DeckStatus[i] = StatusUnknown
	}
	m.Played = [domain.PlayerCount]int{}
	m.Current = domain.Hand{}
}

// MarkMine records the cards currently in the bot's hand.
func (m *GameMemory) MarkMine(cards domain.Cards) {
	for _, c := range cards {
		m.DeckStatus[cardToIndex(c)] = StatusMine
	}
}

// MarkPlayed records cards that have been played on the table.
func (m *GameMemory) MarkPlayed(cards domain.Cards) {
	for _, c := range cards {
		m.DeckStatus[cardToIndex(c)] = StatusPlayed
	}
}

// UpdateHand marks the current hand as Mine and anything previously Mine
// but no longer held as Unknown.
func (m *GameMemory) UpdateHand(hand domain.Cards) {
	for i, status := range m.DeckStatus {
		if status == StatusMine {
			m.DeckStatus[i] = StatusUnknown
		}
	}
	m.MarkMine(hand)
}

// RecordPlay logs that a seat played a hand. Passes carry a none hand and
// change nothing.
func (m *GameMemory) RecordPlay(seat int, hand domain.Hand) {
	if hand.IsNone() {
		return
	}
	m.Current = hand
	m.MarkPlayed(hand.Cards)
	if seat >= 0 && seat < len(m.Played) {
		m.Played[seat] += len(hand.Cards)
	}
}

// Unseen returns every card neither held nor played.
func (m *GameMemory) Unseen() domain.Cards {
	var out domain.Cards
	for _, c := range domain.NewDeck() {
		if m.DeckStatus[cardToIndex(c)] == StatusUnknown {
			out = append(out, c)
		}
	}
	return out
}

// IsPlayed returns true if the card is already out of the game.
func (m *GameMemory) IsPlayed(c domain.Card) bool {
	return m.DeckStatus[cardToIndex(c)] == StatusPlayed
}

// cardToIndex maps suited cards to 0..51 and the jokers to 52 and 53.
func cardToIndex(c domain.Card) int {
	switch c.Rank {
	case domain.RankSmallJoker:
		return 52
	case domain.RankBigJoker:
		return 53
	}
	return int(c.Rank-domain.Rank3)*4 + int(c.Suit-domain.SuitClub)
}
