package bot

import botinternal "landlord/internal/bot/internal"

// BidThresholds map a hand count to a bid: at most Three hands bids 3, at
// most Two bids 2 and at most One bids 1.
type BidThresholds struct {
	Three int
	Two   int
	One   int
}

// Tuning holds the knobs shared by every bot level.
type Tuning struct {
	Bid BidThresholds
	// Cooperate keeps a peasant from overtaking its teammate.
	Cooperate bool
	// ThreatThreshold is the opponent hand size that counts as about to go out.
	ThreatThreshold int
	// Evaluator overrides the level's default hand-count function when set.
	Evaluator *botinternal.Evaluator
}

// DefaultTuning matches the classic rule-based player.
var DefaultTuning = Tuning{
	Bid:             BidThresholds{Three: 2, Two: 3, One: 8},
	Cooperate:       true,
	ThreatThreshold: 2,
}

// bidFor converts a hand count into a bid.
func (t BidThresholds) bidFor(hands int) int {
	switch {
	case hands <= t.Three:
		return 3
	case hands <= t.Two:
		return 2
	case hands <= t.One:
		return 1
	}
	return 0
}

func (t Tuning) evaluator(fallback botinternal.Evaluator) botinternal.Evaluator {
	if t.Evaluator != nil {
		return *t.Evaluator
	}
	return fallback
}
