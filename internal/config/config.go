package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LANDLORD_BOT_LEVEL.
const EnvPrefix = "LANDLORD"

type Config struct {
	Bot BotConfig `mapstructure:"bot"`
	Sim SimConfig `mapstructure:"sim"`
	Log LogConfig `mapstructure:"log"`
}

type BotConfig struct {
	Level           string        `mapstructure:"level"`
	Evaluator       string        `mapstructure:"evaluator"`
	BidThresholds   BidThresholds `mapstructure:"bid_thresholds"`
	Cooperate       bool          `mapstructure:"cooperate"`
	ThreatThreshold int           `mapstructure:"threat_threshold"`
	// Roster is the JSON file with the bot identities seated by the simulator.
	Roster string `mapstructure:"roster"`
}

// BidThresholds are the largest hand counts that still bid 3, 2 and 1.
type BidThresholds struct {
	Three int `mapstructure:"three"`
	Two   int `mapstructure:"two"`
	One   int `mapstructure:"one"`
}

type SimConfig struct {
	Games      int   `mapstructure:"games"`
	Workers    int   `mapstructure:"workers"`
	Seed       int64 `mapstructure:"seed"`
	MaxRedeals int   `mapstructure:"max_redeals"`
	BaseStake  int64 `mapstructure:"base_stake"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

var (
	cfg      *Config
	loadOnce sync.Once
	loadErr  error
)

// New returns a viper instance with every default and the environment
// bindings installed.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("bot.level", "standard")
	v.SetDefault("bot.evaluator", "")
	v.SetDefault("bot.bid_thresholds.three", 2)
	v.SetDefault("bot.bid_thresholds.two", 3)
	v.SetDefault("bot.bid_thresholds.one", 8)
	v.SetDefault("bot.cooperate", true)
	v.SetDefault("bot.threat_threshold", 2)
	v.SetDefault("bot.roster", "")
	v.SetDefault("sim.games", 100)
	v.SetDefault("sim.workers", 4)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.max_redeals", 8)
	v.SetDefault("sim.base_stake", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read decodes configuration from v, reading path first when it is set.
func Read(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &c, nil
}

// Load loads the process-wide configuration from path. An empty path yields
// the defaults plus environment overrides.
func Load(path string) error {
	loadOnce.Do(func() {
		cfg, loadErr = Read(New(), path)
	})
	return loadErr
}

// Get returns the process-wide configuration, or the defaults when Load has
// not run.
func Get() *Config {
	if cfg == nil {
		c, err := Read(New(), "")
		if err != nil {
			return &Config{}
		}
		return c
	}
	return cfg
}
