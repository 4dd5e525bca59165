package bot

import (
	"landlord/internal/bot/brain"
	botinternal "landlord/internal/bot/internal"
	"landlord/internal/domain"
)

// AdvancedBot plays on the minimal decomposition, tracks what the table has
// shown and saves bombs for when they decide the game.
type AdvancedBot struct {
	tuning Tuning
	eval   botinternal.Evaluator
	memory *brain.GameMemory
	gameID string
}

// NewAdvancedBot creates a brain with card memory.
func NewAdvancedBot(tuning Tuning) *AdvancedBot {
	return &AdvancedBot{
		tuning: tuning,
		eval:   tuning.evaluator(botinternal.EvaluatorAdvanced),
		memory: brain.NewMemory(),
	}
}

// Bid counts bombs and high cards as free hands.
func (b *AdvancedBot) Bid(hand domain.Cards, currentBid int) int {
	profile := botinternal.ProfileHand(hand, b.eval)
	hands := profile.Hands - profile.Strength()/2
	bid := b.tuning.Bid.bidFor(hands)
	if bid <= currentBid {
		return 0
	}
	return bid
}

func (b *AdvancedBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if player == nil || len(player.Hand) == 0 {
		return PassMove, nil
	}
	b.sync(game)
	b.memory.UpdateHand(player.Hand)

	if leading(game, player.Seat) {
		return Move{Hand: b.lead(game, player)}, nil
	}
	return b.respond(game, player), nil
}

func (b *AdvancedBot) lead(game *domain.Game, player *domain.Player) domain.Hand {
	hands := b.eval.Analyze(player.Hand)
	ctx := &LeadContext{
		Hands:  hands,
		Game:   game,
		Seat:   player.Seat,
		Tuning: b.tuning,
	}
	control := botinternal.AnalyzeControl(hands, b.memory.Unseen())
	ctx.Control = &control

	rules := []LeadRule{&BossRunRule{}}
	rules = append(rules, StandardLeadRules...)
	rules = append(rules, &BlockSoloRule{})
	return RunLeadPipeline(rules, ctx)
}

func (b *AdvancedBot) respond(game *domain.Game, player *domain.Player) Move {
	teammate := game.Teammates(player.Seat, game.LastSeat)
	if b.tuning.Cooperate && yieldToTeammate(game, player) {
		return PassMove
	}

	regular, bombs := botinternal.RankBeats(player.Hand, game.LastPlay, b.eval)
	for _, sb := range regular {
		if len(sb.Remaining) == 0 {
			return Move{Hand: sb.Hand}
		}
	}
	if len(regular) > 0 {
		return Move{Hand: regular[0].Hand}
	}
	if len(bombs) == 0 || (b.tuning.Cooperate && teammate) {
		return PassMove
	}

	bomb := bombs[0]
	remaining := domain.RemoveCards(player.Hand, bomb.Cards)
	switch {
	case len(remaining) == 0,
		b.eval.Evaluate(remaining) <= 1,
		botinternal.DetectPhase(game) == botinternal.PhaseEnd,
		botinternal.DetectThreat(game, player.Seat, b.tuning.ThreatThreshold):
		return Move{Hand: bomb}
	}
	return PassMove
}

// OnEvent records plays (domain.Play) observed at the table.
func (b *AdvancedBot) OnEvent(event interface{}) {
	switch e := event.(type) {
	case domain.Play:
		b.memory.RecordPlay(e.Seat, e.Hand)
	case *domain.Play:
		if e != nil {
			b.memory.RecordPlay(e.Seat, e.Hand)
		}
	}
}

// sync resets the memory when a new game starts.
func (b *AdvancedBot) sync(game *domain.Game) {
	if game == nil || game.ID == b.gameID {
		return
	}
	b.gameID = game.ID
	b.memory.Reset()
	for _, p := range game.Record {
		b.memory.RecordPlay(p.Seat, p.Hand)
	}
}
