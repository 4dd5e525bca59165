package bot

import (
	"landlord/internal/domain"
)

// Move represents the decision made by the AI.
type Move struct {
	Pass bool
	Hand domain.Hand
}

// PassMove is the move of a player who declines to beat the table.
var PassMove = Move{Pass: true}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// Bid returns the bid for the landlord seat, or 0 to abstain. Any
	// non-zero result is strictly above currentBid.
	Bid(hand domain.Cards, currentBid int) int
	// CalculateMove leads when the table is empty and responds otherwise.
	CalculateMove(game *domain.Game, player *domain.Player) (Move, error)
	// OnEvent feeds the brain a play observed at the table.
	OnEvent(event interface{})
}
