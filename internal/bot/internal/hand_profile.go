package internal

import "landlord/internal/domain"

// HandProfile summarizes a hand's strategic structure.
type HandProfile struct {
	TotalCards  int
	Hands       int
	Solos       int
	Pairs       int
	Trios       int
	Chains      int
	ChainCards  int
	MaxChainLen int
	Bombs       int
	Nuke        bool
	Twos        int
	Jokers      int
}

// ProfileHand decomposes a hand with eval and counts what it finds.
func ProfileHand(hand domain.Cards, eval Evaluator) HandProfile {
	profile := HandProfile{TotalCards: len(hand)}
	if len(hand) == 0 {
		return profile
	}

	count := hand.CountRanks()
	profile.Twos = count[domain.Rank2]
	profile.Jokers = count[domain.RankSmallJoker] + count[domain.RankBigJoker]

	hands := eval.Analyze(hand)
	profile.Hands = len(hands)
	for _, h := range hands {
		switch {
		case h.Type == domain.TypeNuke:
			profile.Nuke = true
		case h.Type == domain.TypeBomb:
			profile.Bombs++
		case h.Type.IsChain():
			profile.Chains++
			profile.ChainCards += len(h.Cards)
			if n := h.ChainLength(); n > profile.MaxChainLen {
				profile.MaxChainLen = n
			}
		case h.Type == domain.TypeTrio:
			profile.Trios++
		case h.Type == domain.TypePair:
			profile.Pairs++
		case h.Type == domain.TypeSolo:
			profile.Solos++
		}
	}
	return profile
}

// Strength is a rough bidding score: fewer hands and more wild beats are better.
func (p HandProfile) Strength() int {
	s := p.Bombs + p.Twos/2
	if p.Nuke {
		s += 2
	} else if p.Jokers > 0 {
		s++
	}
	return s
}
