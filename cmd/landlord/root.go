package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"landlord/internal/config"
	"landlord/internal/domain"
)

// cli carries the state shared by every subcommand once the root has run.
type cli struct {
	configPath string
	output     string

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "landlord",
		Short:         "Landlord hand classifier, beat search and self-play",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "YAML config file")
	flags.String("log-level", "", "log level (overrides log.level)")
	addOutputFlag(flags, &c.output)

	root.AddCommand(
		newClassifyCmd(c),
		newBeatCmd(c),
		newAnalyzeCmd(c),
		newBestCmd(c),
		newBidCmd(c),
		newSimulateCmd(c),
		newDecodeCmd(c),
	)
	return root
}

func addOutputFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "output", "o", "text", "output format: text or json")
}

func (c *cli) setup(cmd *cobra.Command) error {
	v := config.New()
	if err := v.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	cfg, err := config.Read(v, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.log = logrus.New()
	c.log.SetOutput(cmd.ErrOrStderr())
	if cfg.Log.Format == "json" {
		c.log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		c.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	c.log.SetLevel(level)

	switch c.output {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.output)
	}
	return nil
}

// print writes v as indented JSON, or calls text for the text format.
func (c *cli) print(w io.Writer, v interface{}, text func(io.Writer)) error {
	if c.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func parseArgs(args []string) (domain.Cards, error) {
	cards, err := domain.ParseCards(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if err := cards.Validate(); err != nil {
		return nil, err
	}
	return cards, nil
}

func parseTarget(s string) (domain.Hand, error) {
	cards, err := domain.ParseCards(s)
	if err != nil {
		return domain.Hand{}, err
	}
	hand := domain.Classify(cards)
	if hand.IsNone() {
		return domain.Hand{}, fmt.Errorf("target %q is not a legal hand", s)
	}
	return hand, nil
}

type handOut struct {
	Type  string `json:"type"`
	Cards string `json:"cards"`
}

func toOut(h domain.Hand) handOut {
	return handOut{Type: h.Type.String(), Cards: h.Cards.String()}
}

func toOuts(hl domain.HandList) []handOut {
	out := make([]handOut, len(hl))
	for i, h := range hl {
		out[i] = toOut(h)
	}
	return out
}
