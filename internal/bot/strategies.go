package bot

import (
	botinternal "landlord/internal/bot/internal"
	"landlord/internal/domain"
)

// StandardBot is the rule-based player: standard decomposition, fixed lead
// priority and the cheapest beat that keeps the rest of the hand together.
type StandardBot struct {
	tuning Tuning
	eval   botinternal.Evaluator
}

// NewStandardBot creates a rule-based brain.
func NewStandardBot(tuning Tuning) *StandardBot {
	return &StandardBot{
		tuning: tuning,
		eval:   tuning.evaluator(botinternal.EvaluatorStandard),
	}
}

func (b *StandardBot) Bid(hand domain.Cards, currentBid int) int {
	bid := b.tuning.Bid.bidFor(b.eval.Evaluate(hand))
	if bid <= currentBid {
		return 0
	}
	return bid
}

func (b *StandardBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if player == nil || len(player.Hand) == 0 {
		return PassMove, nil
	}
	if leading(game, player.Seat) {
		ctx := &LeadContext{
			Hands:  b.eval.Analyze(player.Hand),
			Game:   game,
			Seat:   player.Seat,
			Tuning: b.tuning,
		}
		return Move{Hand: RunLeadPipeline(StandardLeadRules, ctx)}, nil
	}

	if b.tuning.Cooperate && yieldToTeammate(game, player) {
		return PassMove, nil
	}
	best := botinternal.BestBeat(player.Hand, game.LastPlay, b.eval)
	if best.IsNone() {
		return PassMove, nil
	}
	if b.tuning.Cooperate && best.Type.IsBombLike() && game.Teammates(player.Seat, game.LastSeat) {
		return PassMove, nil
	}
	return Move{Hand: best}, nil
}

func (b *StandardBot) OnEvent(event interface{}) {}

// leading reports whether seat is free to play any hand: nobody has played
// yet, or everyone else passed on its own hand.
func leading(game *domain.Game, seat int) bool {
	return game == nil || game.Leading() || game.LastSeat == seat
}

// yieldToTeammate reports whether the last hand came from a fellow peasant
// who is closer to going out than player.
func yieldToTeammate(game *domain.Game, player *domain.Player) bool {
	last := game.LastSeat
	if last < 0 || last == player.Seat || !game.Teammates(player.Seat, last) {
		return false
	}
	return len(game.Players[last].Hand) < len(player.Hand)
}
