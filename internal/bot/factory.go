package bot

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a bot difficulty.
type Level int

const (
	LevelStandard Level = iota + 1
	LevelAdvanced
)

var ErrUnknownLevel = errors.New("unknown bot level")

func (l Level) String() string {
	switch l {
	case LevelStandard:
		return "standard"
	case LevelAdvanced:
		return "advanced"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a configuration name to a level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard", "easy":
		return LevelStandard, nil
	case "advanced", "hard":
		return LevelAdvanced, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level Level) (Brain, error) {
	return NewBrainWithTuning(level, DefaultTuning)
}

// NewBrainWithTuning is NewBrain with explicit tuning.
func NewBrainWithTuning(level Level, tuning Tuning) (Brain, error) {
	switch level {
	case LevelStandard:
		return NewStandardBot(tuning), nil
	case LevelAdvanced:
		return NewAdvancedBot(tuning), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, level)
	}
}
