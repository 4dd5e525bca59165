package internal

import "landlord/internal/domain"

// ControlStats describes how much of a decomposition the opponents can answer.
type ControlStats struct {
	Unseen  domain.Cards
	Boss    domain.HandList // hands nothing unseen can beat
	Weak    domain.HandList
	Control float64 // share of hands that are boss hands
}

// AnalyzeControl splits hands into boss hands and the rest by checking each
// against every card the player cannot see.
func AnalyzeControl(hands domain.HandList, unseen domain.Cards) ControlStats {
	stats := ControlStats{Unseen: unseen}
	if len(hands) == 0 {
		return stats
	}

	for _, h := range hands {
		if SearchBeat(unseen, h, domain.Hand{}).IsNone() {
			stats.Boss = append(stats.Boss, h)
		} else {
			stats.Weak = append(stats.Weak, h)
		}
	}
	stats.Control = float64(len(stats.Boss)) / float64(len(hands))
	return stats
}
