package domain

// Settlement is the outcome of a finished game in currency units.
type Settlement struct {
	// Multiplier is bid × 2^(bombs + spring).
	Multiplier     int64
	Spring         bool
	BalanceChanges map[string]int64
}

// CalculateSettlement scores a finished game. The landlord wins or loses
// twice the unit, each peasant the unit, where the unit is BaseStake times
// the multiplier. A game that has not ended settles to nothing.
func (g *Game) CalculateSettlement() Settlement {
	changes := make(map[string]int64, PlayerCount)
	if g.Phase != PhaseEnded || g.Winner < 0 || g.Landlord < 0 {
		return Settlement{BalanceChanges: changes}
	}

	doublings := 0
	for _, p := range g.Record {
		if p.Hand.Type.IsBombLike() {
			doublings++
		}
	}
	spring := g.isSpring()
	if spring {
		doublings++
	}

	bid := int64(g.HighBid)
	if bid < 1 {
		bid = 1
	}
	mult := bid << doublings
	unit := g.BaseStake * mult

	sign := int64(1)
	if g.Players[g.Winner].Role != RoleLandlord {
		sign = -1
	}
	for _, p := range g.Players {
		if p.Seat == g.Landlord {
			changes[p.UserID] = sign * 2 * unit
		} else {
			changes[p.UserID] = -sign * unit
		}
	}
	return Settlement{Multiplier: mult, Spring: spring, BalanceChanges: changes}
}

// isSpring reports a shut-out: the landlord won without either peasant
// playing a card, or the peasants won after the landlord's opening lead.
func (g *Game) isSpring() bool {
	landlordPlays, peasantPlays := 0, 0
	for _, p := range g.Record {
		if p.Hand.IsNone() {
			continue
		}
		if p.Seat == g.Landlord {
			landlordPlays++
		} else {
			peasantPlays++
		}
	}
	if g.Winner == g.Landlord {
		return peasantPlays == 0
	}
	return landlordPlays == 1
}
