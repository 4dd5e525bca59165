package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"landlord/internal/bot"
	"landlord/internal/config"
)

// TuningFromConfig converts the bot section of the configuration.
func TuningFromConfig(c config.BotConfig) (bot.Tuning, error) {
	t := bot.Tuning{
		Bid: bot.BidThresholds{
			Three: c.BidThresholds.Three,
			Two:   c.BidThresholds.Two,
			One:   c.BidThresholds.One,
		},
		Cooperate:       c.Cooperate,
		ThreatThreshold: c.ThreatThreshold,
	}
	if c.Evaluator != "" {
		eval, ok := bot.ParseEvaluator(c.Evaluator)
		if !ok {
			return bot.Tuning{}, fmt.Errorf("unknown evaluator %q", c.Evaluator)
		}
		t.Evaluator = &eval
	}
	return t, nil
}

// OptionsFromConfig builds the service options described by c. When no
// roster file is configured every seat gets a generated identity of the
// configured level.
func OptionsFromConfig(c *config.Config, log logrus.FieldLogger) ([]Option, error) {
	tuning, err := TuningFromConfig(c.Bot)
	if err != nil {
		return nil, err
	}
	level, err := bot.ParseLevel(c.Bot.Level)
	if err != nil {
		return nil, err
	}

	roster := bot.DefaultRoster()
	if c.Bot.Roster != "" {
		if roster, err = bot.ReadRoster(c.Bot.Roster); err != nil {
			return nil, err
		}
	} else if roster.Len() == 0 {
		roster = bot.UniformRoster(level, 3)
	}

	return []Option{
		WithLogger(log),
		WithTuning(tuning),
		WithRoster(roster),
		WithMaxRedeals(c.Sim.MaxRedeals),
		WithBaseStake(c.Sim.BaseStake),
	}, nil
}
