package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"landlord/internal/bot"
	"landlord/internal/domain"
)

// ErrStalled is returned when a self-play game exceeds the turn cap.
var ErrStalled = errors.New("game did not finish")

// PlayGame runs a complete bot-only game from the given seed: deal, bid
// (redealing while nobody bids), then play until a hand is empty. The same
// seed always produces the same game apart from its ID.
func (s *Service) PlayGame(ctx context.Context, seed int64) (*domain.Game, []Event, error) {
	rng := rand.New(rand.NewSource(seed))
	agents, err := s.roster.Agents(0, domain.PlayerCount, s.tuning)
	if err != nil {
		return nil, nil, err
	}
	var ids [domain.PlayerCount]string
	for i, a := range agents {
		ids[i] = a.ID
	}

	var events []Event
	for deal := 0; deal <= s.maxRedeals; deal++ {
		if err := ctx.Err(); err != nil {
			return nil, events, err
		}

		game, evs, err := s.startGame(rng, ids)
		if err != nil {
			return nil, events, err
		}
		events = append(events, evs...)

		evs, err = s.runBidding(game, agents)
		events = append(events, evs...)
		if errors.Is(err, ErrNoBid) {
			s.gameLog(game).WithField("deal", deal).Debug("nobody bid, redealing")
			continue
		}
		if err != nil {
			return game, events, err
		}

		evs, err = s.runPlay(ctx, game, agents)
		events = append(events, evs...)
		return game, events, err
	}
	return nil, events, fmt.Errorf("%w after %d deals", ErrNoBid, s.maxRedeals+1)
}

func (s *Service) runBidding(game *domain.Game, agents []*bot.Agent) ([]Event, error) {
	var events []Event
	for game.Phase == domain.PhaseBidding {
		agent := agents[game.CurrentTurn]
		evs, err := s.PlaceBid(game, agent.ID, agent.Bid(game))
		events = append(events, evs...)
		if err != nil {
			return events, err
		}
	}
	return events, nil
}

func (s *Service) runPlay(ctx context.Context, game *domain.Game, agents []*bot.Agent) ([]Event, error) {
	var events []Event
	for turn := 0; game.Phase == domain.PhasePlaying; turn++ {
		if turn >= maxTurns {
			return events, fmt.Errorf("%w: %d turns", ErrStalled, turn)
		}
		if err := ctx.Err(); err != nil {
			return events, err
		}

		seat := game.CurrentTurn
		agent := agents[seat]
		move, err := agent.PlayAtSeat(game, seat)
		if err != nil {
			s.gameLog(game).WithError(err).WithField("seat", seat).Warn("bot failed to move")
		}

		evs, err := s.apply(game, agent.ID, move)
		if err != nil {
			s.gameLog(game).WithError(err).WithFields(logrus.Fields{
				"seat": seat,
				"move": move.Hand.String(),
			}).Warn("bot move rejected, falling back")
			evs, err = s.apply(game, agent.ID, s.fallback(game, seat))
			if err != nil {
				return events, err
			}
		}
		events = append(events, evs...)

		played := game.Record[len(game.Record)-1]
		for _, a := range agents {
			a.OnGameEvent(played)
		}
	}
	return events, nil
}

func (s *Service) apply(game *domain.Game, userID string, move bot.Move) ([]Event, error) {
	if move.Pass || move.Hand.IsNone() {
		return s.PassTurn(game, userID)
	}
	return s.PlayCards(game, userID, move.Hand.Cards)
}

// fallback is always legal: pass when responding, lead the lowest card otherwise.
func (s *Service) fallback(game *domain.Game, seat int) bot.Move {
	if !s.leading(game, seat) {
		return bot.PassMove
	}
	hand := game.Players[seat].Hand
	return bot.Move{Hand: domain.Classify(hand[len(hand)-1:])}
}
