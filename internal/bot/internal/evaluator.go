package internal

import "landlord/internal/domain"

// Evaluator selects the hand-count function used to judge what is left after a play.
type Evaluator uint8

const (
	EvaluatorStandard Evaluator = iota
	EvaluatorAdvanced
)

// Evaluate returns the number of hands cards decompose into. Fewer is stronger.
func (e Evaluator) Evaluate(cards domain.Cards) int {
	if e == EvaluatorAdvanced {
		return AdvancedEvaluate(cards)
	}
	return StandardEvaluate(cards)
}

// Analyze returns the decomposition matching the evaluator.
func (e Evaluator) Analyze(cards domain.Cards) domain.HandList {
	if e == EvaluatorAdvanced {
		return AdvancedAnalyze(cards)
	}
	return StandardAnalyze(cards)
}

func (e Evaluator) String() string {
	if e == EvaluatorAdvanced {
		return "advanced"
	}
	return "standard"
}

// ParseEvaluator maps a configuration name to an evaluator.
func ParseEvaluator(name string) (Evaluator, bool) {
	switch name {
	case "", "standard":
		return EvaluatorStandard, true
	case "advanced":
		return EvaluatorAdvanced, true
	}
	return EvaluatorStandard, false
}
