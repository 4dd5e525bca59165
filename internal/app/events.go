package app

import "landlord/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted    EventKind = "game_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventBidPlaced      EventKind = "bid_placed"
	EventLandlordChosen EventKind = "landlord_chosen"
	EventHandPlayed     EventKind = "hand_played"
	EventTurnPassed     EventKind = "turn_passed"
	EventGameEnded      EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	GameID          string
	Phase           domain.Phase
	FirstTurnUserID string
}

type HandDealtPayload struct {
	UserID string
	Hand   domain.Cards
}

type BidPlacedPayload struct {
	UserID         string
	Bid            int
	NextTurnUserID string
}

type LandlordChosenPayload struct {
	UserID string
	Bid    int
	Kitty  domain.Cards
}

type HandPlayedPayload struct {
	UserID         string
	Hand           domain.Hand
	CardsLeft      int
	NextTurnUserID string
}

type TurnPassedPayload struct {
	UserID         string
	NextTurnUserID string
	// LeadReturned is set when every other player passed and the next player
	// leads freely.
	LeadReturned bool
}

type GameEndedPayload struct {
	WinnerUserID string
	WinningRole  domain.Role
	Bid          int
	Bombs        int
	Multiplier   int64
	Spring       bool
	// BalanceChanges maps user ID to the settled amount; the values sum to zero.
	BalanceChanges map[string]int64
}
