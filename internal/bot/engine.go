package bot

import (
	botinternal "landlord/internal/bot/internal"
	"landlord/internal/domain"
)

// Evaluator selects the hand-count function used to score the cards left
// after a play.
type Evaluator = botinternal.Evaluator

const (
	EvaluatorStandard = botinternal.EvaluatorStandard
	EvaluatorAdvanced = botinternal.EvaluatorAdvanced
)

// Mode selects the decomposition strategy for Analyze.
type Mode = botinternal.Evaluator

const (
	ModeStandard = botinternal.EvaluatorStandard
	ModeAdvanced = botinternal.EvaluatorAdvanced
)

// ParseEvaluator maps a configuration name to an evaluator.
func ParseEvaluator(name string) (Evaluator, bool) {
	return botinternal.ParseEvaluator(name)
}

// Classify returns the hand formed by cards; the type is none when the cards
// form no legal hand.
func Classify(cards domain.Cards) domain.Hand {
	return domain.Classify(cards)
}

// SearchBeat finds the lowest hand in pool beating toBeat. Pass the previous
// result as inProgress to continue up the ladder.
func SearchBeat(pool domain.Cards, toBeat, inProgress domain.Hand) (domain.Hand, bool) {
	h := botinternal.SearchBeat(pool, toBeat, inProgress)
	return h, !h.IsNone()
}

// SearchBeatList returns every beat of toBeat available in pool, weakest first.
func SearchBeatList(pool domain.Cards, toBeat domain.Hand) domain.HandList {
	return botinternal.SearchBeatList(pool, toBeat)
}

// Analyze decomposes cards into hands covering every card exactly once.
func Analyze(cards domain.Cards, mode Mode) domain.HandList {
	return mode.Analyze(cards)
}

// BestBeat picks the beat of toBeat that leaves pool strongest according to eval.
func BestBeat(pool domain.Cards, toBeat domain.Hand, eval Evaluator) (domain.Hand, bool) {
	h := botinternal.BestBeat(pool, toBeat, eval)
	return h, !h.IsNone()
}
