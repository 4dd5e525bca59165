package bot

import (
	"landlord/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent for identity with a brain of the identity's level.
func NewAgent(identity BotIdentity, tuning Tuning) (*Agent, error) {
	level, err := ParseLevel(identity.Level)
	if err != nil {
		return nil, err
	}
	brain, err := NewBrainWithTuning(level, tuning)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: brain}, nil
}

// Bid asks the agent for its bid during the auction.
func (a *Agent) Bid(game *domain.Game) int {
	seat := game.SeatOf(a.ID)
	if seat < 0 {
		return 0
	}
	return a.Strategy.Bid(game.Players[seat].Hand, game.HighBid)
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	seat := game.SeatOf(a.ID)
	if seat < 0 {
		// Agent is not part of this game
		return PassMove, nil
	}
	return a.PlayAtSeat(game, seat)
}

// PlayAtSeat is Play for callers that already know the agent's seat.
func (a *Agent) PlayAtSeat(game *domain.Game, seat int) (Move, error) {
	if seat < 0 || seat >= domain.PlayerCount || game.Players[seat] == nil {
		return PassMove, nil
	}
	move, err := a.Strategy.CalculateMove(game, game.Players[seat])
	if err != nil {
		return PassMove, err
	}
	return move, nil
}

// OnGameEvent notifies the agent of a game event.
func (a *Agent) OnGameEvent(event interface{}) {
	a.Strategy.OnEvent(event)
}
