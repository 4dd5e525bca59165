package nakama

import (
	"encoding/base64"
	"fmt"

	"landlord/internal/domain"
	"landlord/internal/ports/wire"
)

// HandView is the JSON form of a hand.
type HandView struct {
	Type  string   `json:"type"`
	Cards []string `json:"cards"`
}

func cardsFromStrings(tokens []string) (domain.Cards, error) {
	if len(tokens) > domain.MaxCards {
		return nil, fmt.Errorf("%w: %d", domain.ErrTooManyCards, len(tokens))
	}
	out := make(domain.Cards, 0, len(tokens))
	for _, tok := range tokens {
		c, err := domain.ParseCard(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func cardsToStrings(cards domain.Cards) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func handToView(h domain.Hand) HandView {
	return HandView{Type: h.Type.String(), Cards: cardsToStrings(h.Cards)}
}

func handsToViews(hl domain.HandList) []HandView {
	out := make([]HandView, len(hl))
	for i, h := range hl {
		out[i] = handToView(h)
	}
	return out
}

func wireHand(h domain.Hand) string {
	return base64.StdEncoding.EncodeToString(wire.EncodeHand(h))
}

func wireHandList(hl domain.HandList) string {
	return base64.StdEncoding.EncodeToString(wire.EncodeHandList(hl))
}
