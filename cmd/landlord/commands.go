package main

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"landlord/internal/app"
	"landlord/internal/bot"
	"landlord/internal/domain"
	"landlord/internal/ports/wire"
)

func newClassifyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <cards>",
		Short: "Classify cards as a single hand",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := parseArgs(args)
			if err != nil {
				return err
			}
			hand := bot.Classify(cards)
			return c.print(cmd.OutOrStdout(), toOut(hand), func(w io.Writer) {
				fmt.Fprintln(w, hand)
			})
		},
	}
}

func newBeatCmd(c *cli) *cobra.Command {
	var target string
	var ladder bool
	cmd := &cobra.Command{
		Use:   "beat <pool>",
		Short: "Find the lowest beat of --target in the pool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := parseArgs(args)
			if err != nil {
				return err
			}
			toBeat, err := parseTarget(target)
			if err != nil {
				return err
			}

			var beats domain.HandList
			if ladder {
				beats = bot.SearchBeatList(pool.Sorted(), toBeat)
			} else if h, ok := bot.SearchBeat(pool.Sorted(), toBeat, domain.Hand{}); ok {
				beats = domain.HandList{h}
			}
			c.log.WithFields(logrus.Fields{"target": toBeat.String(), "beats": len(beats)}).Debug("search finished")

			return c.print(cmd.OutOrStdout(), toOuts(beats), func(w io.Writer) {
				if len(beats) == 0 {
					fmt.Fprintln(w, "pass")
				}
				for _, h := range beats {
					fmt.Fprintln(w, h)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "hand to beat")
	cmd.Flags().BoolVar(&ladder, "ladder", false, "list every beat, weakest first")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var modeName string
	cmd := &cobra.Command{
		Use:   "analyze <cards>",
		Short: "Decompose cards into hands",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := parseArgs(args)
			if err != nil {
				return err
			}
			mode, ok := bot.ParseEvaluator(modeName)
			if !ok {
				return fmt.Errorf("unknown mode %q", modeName)
			}
			hands := bot.Analyze(cards.Sorted(), mode)
			return c.print(cmd.OutOrStdout(), toOuts(hands), func(w io.Writer) {
				for _, h := range hands {
					fmt.Fprintln(w, h)
				}
				fmt.Fprintf(w, "%d hands\n", len(hands))
			})
		},
	}
	cmd.Flags().StringVarP(&modeName, "mode", "m", "standard", "standard or advanced")
	return cmd
}

func newBestCmd(c *cli) *cobra.Command {
	var target, evalName string
	cmd := &cobra.Command{
		Use:   "best <pool>",
		Short: "Pick the beat of --target that leaves the strongest hand",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := parseArgs(args)
			if err != nil {
				return err
			}
			toBeat, err := parseTarget(target)
			if err != nil {
				return err
			}
			if evalName == "" {
				evalName = c.cfg.Bot.Evaluator
			}
			eval, ok := bot.ParseEvaluator(evalName)
			if !ok {
				return fmt.Errorf("unknown evaluator %q", evalName)
			}

			hand, found := bot.BestBeat(pool.Sorted(), toBeat, eval)
			return c.print(cmd.OutOrStdout(), toOut(hand), func(w io.Writer) {
				if !found {
					fmt.Fprintln(w, "pass")
					return
				}
				fmt.Fprintln(w, hand)
			})
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "hand to beat")
	cmd.Flags().StringVarP(&evalName, "evaluator", "e", "", "standard or advanced (default from config)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newBidCmd(c *cli) *cobra.Command {
	var current int
	var levelName string
	cmd := &cobra.Command{
		Use:   "bid <cards>",
		Short: "Show the bot's bid for a hand",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := parseArgs(args)
			if err != nil {
				return err
			}
			if current < 0 || current > domain.MaxBid {
				return fmt.Errorf("current bid %d out of range", current)
			}
			if levelName == "" {
				levelName = c.cfg.Bot.Level
			}
			level, err := bot.ParseLevel(levelName)
			if err != nil {
				return err
			}
			tuning, err := app.TuningFromConfig(c.cfg.Bot)
			if err != nil {
				return err
			}
			brain, err := bot.NewBrainWithTuning(level, tuning)
			if err != nil {
				return err
			}

			bid := brain.Bid(cards.Sorted(), current)
			return c.print(cmd.OutOrStdout(), map[string]int{"bid": bid}, func(w io.Writer) {
				fmt.Fprintln(w, bid)
			})
		},
	}
	cmd.Flags().IntVar(&current, "current", 0, "highest bid so far")
	cmd.Flags().StringVar(&levelName, "level", "", "standard or advanced (default from config)")
	return cmd
}

func newSimulateCmd(c *cli) *cobra.Command {
	var games, workers int
	var seed int64
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play bot-only games and summarize the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("games") {
				games = c.cfg.Sim.Games
			}
			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.Sim.Workers
			}
			if !cmd.Flags().Changed("seed") {
				seed = c.cfg.Sim.Seed
			}

			opts, err := app.OptionsFromConfig(c.cfg, c.log)
			if err != nil {
				return err
			}
			sum, err := app.NewService(nil, opts...).Simulate(cmd.Context(), games, workers, seed)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), sum, func(w io.Writer) {
				fmt.Fprintf(w, "games:         %d\n", sum.Games)
				fmt.Fprintf(w, "landlord wins: %d\n", sum.LandlordWins)
				fmt.Fprintf(w, "peasant wins:  %d\n", sum.PeasantWins)
				fmt.Fprintf(w, "no bid:        %d\n", sum.NoBid)
				fmt.Fprintf(w, "average turns: %.1f\n", sum.AverageTurns)
				fmt.Fprintf(w, "bombs:         %d\n", sum.Bombs)
			})
		},
	}
	cmd.Flags().IntVarP(&games, "games", "n", 0, "games to play (default from config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent games (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the first game (default from config)")
	return cmd
}

func newDecodeCmd(c *cli) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "decode <base64>",
		Short: "Decode the wire field of an RPC response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("wire payload is not base64: %w", err)
			}

			var hands domain.HandList
			if list {
				hands, err = wire.DecodeHandList(raw)
			} else {
				var h domain.Hand
				h, err = wire.DecodeHand(raw)
				hands = domain.HandList{h}
			}
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), toOuts(hands), func(w io.Writer) {
				for _, h := range hands {
					fmt.Fprintln(w, h)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "payload is a hand list (analyze, search beats)")
	return cmd
}
