package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"landlord/internal/domain"
)

// Summary aggregates the outcome of many self-play games.
type Summary struct {
	Games        int     `json:"games"`
	LandlordWins int     `json:"landlord_wins"`
	PeasantWins  int     `json:"peasant_wins"`
	NoBid        int     `json:"no_bid"`
	Turns        int     `json:"turns"`
	AverageTurns float64 `json:"average_turns"`
	Bombs        int     `json:"bombs"`
}

type gameResult struct {
	played bool
	role   domain.Role
	turns  int
	bombs  int
}

// Simulate plays n games with seeds seed..seed+n-1 on at most workers
// goroutines. Games where nobody ever bid are counted in NoBid; any other
// failure cancels the run.
func (s *Service) Simulate(ctx context.Context, n, workers int, seed int64) (Summary, error) {
	if n <= 0 {
		return Summary{}, nil
	}
	if workers <= 0 {
		workers = 1
	}

	results := make([]gameResult, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			game, _, err := s.PlayGame(ctx, seed+int64(i))
			if errors.Is(err, ErrNoBid) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = gameResult{
				played: true,
				role:   game.Players[game.Winner].Role,
				turns:  len(game.Record),
				bombs:  CountBombs(game),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Games: n}
	for _, r := range results {
		if !r.played {
			sum.NoBid++
			continue
		}
		if r.role == domain.RoleLandlord {
			sum.LandlordWins++
		} else {
			sum.PeasantWins++
		}
		sum.Turns += r.turns
		sum.Bombs += r.bombs
	}
	if played := n - sum.NoBid; played > 0 {
		sum.AverageTurns = float64(sum.Turns) / float64(played)
	}
	s.log.WithField("summary", sum).Info("simulation finished")
	return sum, nil
}
