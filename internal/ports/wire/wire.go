// Package wire encodes hands in the protocol-buffer wire format without
// generated message types.
//
//	Hand     { 1: varint type; 2: bytes cards }
//	HandList { repeated 1: Hand }
//	Bid      { 1: varint bid }
//	Play     { 1: bytes cards }   empty cards mean pass
//
// Each card is one byte: rank<<3 | suit.
package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"landlord/internal/domain"
)

var ErrMalformed = errors.New("malformed wire message")

const (
	fieldHandType  protowire.Number = 1
	fieldHandCards protowire.Number = 2
	fieldListHand  protowire.Number = 1
	fieldBid       protowire.Number = 1
	fieldPlayCards protowire.Number = 1
)

// EncodeCard packs c into one byte.
func EncodeCard(c domain.Card) byte {
	return byte(c.Rank)<<3 | byte(c.Suit)
}

// DecodeCard unpacks one byte, rejecting cards that do not exist.
func DecodeCard(b byte) (domain.Card, error) {
	c := domain.Card{Rank: domain.Rank(b >> 3), Suit: domain.Suit(b & 0x07)}
	switch {
	case c.Rank.IsJoker():
		if c.Suit != domain.SuitNone {
			return domain.Card{}, fmt.Errorf("%w: joker with suit %d", ErrMalformed, c.Suit)
		}
	case c.Rank < domain.Rank3 || c.Rank > domain.Rank2,
		c.Suit < domain.SuitClub || c.Suit > domain.SuitSpade:
		return domain.Card{}, fmt.Errorf("%w: card byte %#x", ErrMalformed, b)
	}
	return c, nil
}

// EncodeCards packs cards one byte each.
func EncodeCards(cards domain.Cards) []byte {
	out := make([]byte, len(cards))
	for i, c := range cards {
		out[i] = EncodeCard(c)
	}
	return out
}

// DecodeCards unpacks a card byte string.
func DecodeCards(b []byte) (domain.Cards, error) {
	if len(b) > domain.MaxCards {
		return nil, fmt.Errorf("%w: %d cards", ErrMalformed, len(b))
	}
	out := make(domain.Cards, len(b))
	for i, v := range b {
		c, err := DecodeCard(v)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// AppendHand appends the Hand message for h to b.
func AppendHand(b []byte, h domain.Hand) []byte {
	b = protowire.AppendTag(b, fieldHandType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.Type))
	b = protowire.AppendTag(b, fieldHandCards, protowire.BytesType)
	return protowire.AppendBytes(b, EncodeCards(h.Cards))
}

// EncodeHand returns the Hand message for h.
func EncodeHand(h domain.Hand) []byte {
	return AppendHand(nil, h)
}

// DecodeHand parses a Hand message. The declared type must match what the
// cards classify as. The result is in classified order, primal cards first.
func DecodeHand(b []byte) (domain.Hand, error) {
	var (
		h        domain.Hand
		declared uint64
	)
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldHandType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			declared = v
			return n, nil
		case num == fieldHandCards && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			cards, err := DecodeCards(v)
			h.Cards = cards
			return n, err
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return domain.Hand{}, err
	}

	if declared > 0xFF {
		return domain.Hand{}, fmt.Errorf("%w: hand type %d", ErrMalformed, declared)
	}
	h.Type = domain.HandType(declared)
	if h.Type == domain.TypeNone {
		if len(h.Cards) != 0 {
			return domain.Hand{}, fmt.Errorf("%w: cards without a type", ErrMalformed)
		}
		return domain.Hand{}, nil
	}
	if got := domain.Classify(h.Cards).Type; got != h.Type {
		return domain.Hand{}, fmt.Errorf("%w: declared %s, cards form %s", ErrMalformed, h.Type, got)
	}
	return domain.Classify(h.Cards), nil
}

// EncodeHandList returns the HandList message for hl.
func EncodeHandList(hl domain.HandList) []byte {
	var b []byte
	for _, h := range hl {
		b = protowire.AppendTag(b, fieldListHand, protowire.BytesType)
		b = protowire.AppendBytes(b, EncodeHand(h))
	}
	return b
}

// DecodeHandList parses a HandList message.
func DecodeHandList(b []byte) (domain.HandList, error) {
	var hl domain.HandList
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldListHand || typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		h, err := DecodeHand(v)
		if err != nil {
			return n, err
		}
		hl = append(hl, h)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return hl, nil
}

// EncodeBid returns the Bid message.
func EncodeBid(bid int) []byte {
	b := protowire.AppendTag(nil, fieldBid, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(bid))
}

// DecodeBid parses a Bid message. A missing field is a bid of 0.
func DecodeBid(b []byte) (int, error) {
	var bid uint64
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldBid && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			bid = v
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return 0, err
	}
	if bid > domain.MaxBid {
		return 0, fmt.Errorf("%w: bid %d", ErrMalformed, bid)
	}
	return int(bid), nil
}

// EncodePlay returns the Play message for cards; nil cards encode a pass.
func EncodePlay(cards domain.Cards) []byte {
	if len(cards) == 0 {
		return nil
	}
	b := protowire.AppendTag(nil, fieldPlayCards, protowire.BytesType)
	return protowire.AppendBytes(b, EncodeCards(cards))
}

// DecodePlay parses a Play message. No cards means pass.
func DecodePlay(b []byte) (domain.Cards, error) {
	var cards domain.Cards
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != fieldPlayCards || typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		decoded, err := DecodeCards(v)
		cards = decoded
		return n, err
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// consumeFields walks every field of a message. fn consumes the value that
// follows the tag and returns its length, or a negative protowire error code.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
