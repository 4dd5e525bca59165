package internal

import (
	"sort"

	"landlord/internal/domain"
)

// ScoredBeat holds a candidate beat with its computed score and remainder.
type ScoredBeat struct {
	Hand      domain.Hand
	Score     int
	Remaining domain.Cards
}

// RankBeats runs the beat ladder for toBeat and splits it into regular beats,
// scored and sorted best first, and bombs in ladder order.
func RankBeats(pool domain.Cards, toBeat domain.Hand, eval Evaluator) (regular []ScoredBeat, bombs domain.HandList) {
	for _, h := range SearchBeatList(pool, toBeat) {
		if h.Type.IsBombLike() {
			bombs = append(bombs, h)
			continue
		}
		remaining := domain.RemoveCards(pool, h.Cards)
		regular = append(regular, ScoredBeat{
			Hand:      h,
			Score:     eval.Evaluate(remaining)*10 + int(h.Rank()),
			Remaining: remaining,
		})
	}
	sort.SliceStable(regular, func(i, j int) bool {
		return regular[i].Score < regular[j].Score
	})
	return regular, bombs
}

// BestBeat returns the beat that leaves pool in the best shape. Regular beats
// are preferred; a bomb or the nuke is used only when nothing else works.
func BestBeat(pool domain.Cards, toBeat domain.Hand, eval Evaluator) domain.Hand {
	regular, bombs := RankBeats(pool, toBeat, eval)
	if len(regular) > 0 {
		return regular[0].Hand
	}
	if len(bombs) > 0 {
		return bombs[0]
	}
	return domain.Hand{}
}
