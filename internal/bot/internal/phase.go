package internal

import "landlord/internal/domain"

// GamePhase describes the current strategic stage of a game.
type GamePhase int

const (
	// PhaseOpening indicates nobody has played a card yet.
	PhaseOpening GamePhase = iota
	// PhaseMid indicates no one has reached the endgame threshold yet.
	PhaseMid
	// PhaseEnd indicates some player holds EndgameCards or fewer.
	PhaseEnd
)

// EndgameCards is the hand size at which a player is considered about to go out.
const EndgameCards = 5

func (p GamePhase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseEnd:
		return "end"
	}
	return "mid"
}

// DetectPhase infers the phase from the game record and hand sizes.
func DetectPhase(game *domain.Game) GamePhase {
	if game == nil {
		return PhaseMid
	}
	for _, player := range game.Players {
		if player != nil && len(player.Hand) <= EndgameCards {
			return PhaseEnd
		}
	}
	if len(game.Record) == 0 {
		return PhaseOpening
	}
	return PhaseMid
}

// DetectThreat reports whether any opponent of seat holds threshold cards or fewer.
func DetectThreat(game *domain.Game, seat int, threshold int) bool {
	if threshold <= 0 || game == nil {
		return false
	}
	for _, player := range game.Players {
		if player == nil || player.Seat == seat || game.Teammates(seat, player.Seat) {
			continue
		}
		if len(player.Hand) <= threshold {
			return true
		}
	}
	return false
}
