package bot

import (
	botinternal "landlord/internal/bot/internal"
	"landlord/internal/domain"
)

// LeadContext holds the state for the lead decision pipeline.
type LeadContext struct {
	Hands  domain.HandList
	Choice domain.Hand

	Game   *domain.Game
	Seat   int
	Tuning Tuning

	// Control is set by brains that count cards.
	Control *botinternal.ControlStats
}

func (ctx *LeadContext) decided() bool {
	return !ctx.Choice.IsNone()
}

// LeadRule is a logic unit that can pick or replace the hand to lead.
type LeadRule interface {
	Name() string
	Apply(ctx *LeadContext)
}

// StandardLeadRules is the fixed lead priority of the rule-based player.
var StandardLeadRules = []LeadRule{
	&LastHandRule{},
	&TrioChainRule{},
	&ChainRule{},
	&TrioRule{},
	&PairRule{},
	&SoloRule{},
	&FirstHandRule{},
}

// RunLeadPipeline applies rules in order and returns the chosen hand.
func RunLeadPipeline(rules []LeadRule, ctx *LeadContext) domain.Hand {
	for _, rule := range rules {
		rule.Apply(ctx)
	}
	return ctx.Choice
}

// LastHandRule plays out the final hand.
type LastHandRule struct{}

func (r *LastHandRule) Name() string { return "LastHand" }

func (r *LastHandRule) Apply(ctx *LeadContext) {
	if !ctx.decided() && len(ctx.Hands) == 1 {
		ctx.Choice = ctx.Hands[0]
	}
}

// TrioChainRule leads a trio chain, attaching bare pairs or else bare solos
// as kickers when enough of them exist.
type TrioChainRule struct{}

func (r *TrioChainRule) Name() string { return "TrioChain" }

func (r *TrioChainRule) Apply(ctx *LeadContext) {
	if ctx.decided() {
		return
	}
	idx := ctx.Hands.Find(domain.TypeTrioChain)
	if idx < 0 {
		return
	}
	chain := ctx.Hands[idx]
	rest := ctx.Hands.Without(idx)
	need := chain.ChainLength()

	ctx.Choice = chain
	for _, kicker := range []domain.HandType{domain.TypePair, domain.TypeSolo} {
		picked := lowestBare(rest, kicker, need, domain.RankBigJoker)
		if len(picked) < need {
			continue
		}
		cards := chain.Cards.Clone()
		for _, h := range picked {
			cards = append(cards, h.Cards...)
		}
		if h := domain.Classify(cards); !h.IsNone() {
			ctx.Choice = h
			return
		}
	}
}

// ChainRule leads a pair chain, or failing that a solo chain.
type ChainRule struct{}

func (r *ChainRule) Name() string { return "Chain" }

func (r *ChainRule) Apply(ctx *LeadContext) {
	if ctx.decided() {
		return
	}
	for _, t := range []domain.HandType{domain.TypePairChain, domain.TypeSoloChain} {
		if idx := ctx.Hands.Find(t); idx >= 0 {
			ctx.Choice = ctx.Hands[idx]
			return
		}
	}
}

// TrioRule leads the lowest trio below 2 with a pair, or else a solo, as kicker.
type TrioRule struct{}

func (r *TrioRule) Name() string { return "Trio" }

func (r *TrioRule) Apply(ctx *LeadContext) {
	if ctx.decided() {
		return
	}
	trios := lowestBare(ctx.Hands, domain.TypeTrio, 1, domain.Rank2)
	if len(trios) == 0 {
		return
	}
	trio := trios[0]
	ctx.Choice = trio

	kickers := lowestBare(ctx.Hands, domain.TypePair, 1, domain.Rank2)
	if len(kickers) == 0 {
		kickers = lowestBare(ctx.Hands, domain.TypeSolo, 1, domain.Rank2)
	}
	if len(kickers) == 0 {
		return
	}
	if h := domain.Classify(trio.Cards.Concat(kickers[0].Cards)); !h.IsNone() {
		ctx.Choice = h
	}
}

// PairRule leads the lowest pair below 2.
type PairRule struct{}

func (r *PairRule) Name() string { return "Pair" }

func (r *PairRule) Apply(ctx *LeadContext) {
	if ctx.decided() {
		return
	}
	if pairs := lowestBare(ctx.Hands, domain.TypePair, 1, domain.Rank2); len(pairs) > 0 {
		ctx.Choice = pairs[0]
	}
}

// SoloRule leads the lowest solo below 2.
type SoloRule struct{}

func (r *SoloRule) Name() string { return "Solo" }

func (r *SoloRule) Apply(ctx *LeadContext) {
	if ctx.decided() {
		return
	}
	if solos := lowestBare(ctx.Hands, domain.TypeSolo, 1, domain.Rank2); len(solos) > 0 {
		ctx.Choice = solos[0]
	}
}

// FirstHandRule falls back to the first hand of the decomposition.
type FirstHandRule struct{}

func (r *FirstHandRule) Name() string { return "FirstHand" }

func (r *FirstHandRule) Apply(ctx *LeadContext) {
	if !ctx.decided() && len(ctx.Hands) > 0 {
		ctx.Choice = ctx.Hands[0]
	}
}

// BossRunRule keeps the lead with unbeatable hands once at most one weak hand
// is left, so the weak hand goes out last.
type BossRunRule struct{}

func (r *BossRunRule) Name() string { return "BossRun" }

func (r *BossRunRule) Apply(ctx *LeadContext) {
	if ctx.decided() || ctx.Control == nil || len(ctx.Control.Weak) > 1 || len(ctx.Control.Boss) == 0 {
		return
	}
	for _, h := range ctx.Control.Boss {
		if !h.Type.IsBombLike() {
			ctx.Choice = h
			return
		}
	}
	ctx.Choice = ctx.Control.Boss[0]
}

// BlockSoloRule avoids handing a solo to an opponent down to one card: it
// leads something else, or the highest solo when nothing else is left.
type BlockSoloRule struct{}

func (r *BlockSoloRule) Name() string { return "BlockSolo" }

func (r *BlockSoloRule) Apply(ctx *LeadContext) {
	if !ctx.decided() || ctx.Choice.Type != domain.TypeSolo || len(ctx.Hands) == 1 {
		return
	}
	if !botinternal.DetectThreat(ctx.Game, ctx.Seat, 1) {
		return
	}
	for _, h := range ctx.Hands {
		if h.Type != domain.TypeSolo && !h.Type.IsBombLike() {
			ctx.Choice = h
			return
		}
	}
	for _, h := range ctx.Hands {
		if h.Type == domain.TypeSolo && h.Rank() > ctx.Choice.Rank() {
			ctx.Choice = h
		}
	}
}

// lowestBare returns up to n hands of type t with rank below limit, lowest
// rank first.
func lowestBare(hands domain.HandList, t domain.HandType, n int, limit domain.Rank) domain.HandList {
	var out domain.HandList
	for r := domain.Rank3; r < limit && len(out) < n; r++ {
		for _, h := range hands {
			if h.Type == t && h.Rank() == r {
				out = append(out, h)
				break
			}
		}
	}
	return out
}
