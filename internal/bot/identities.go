package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Level       string `json:"level"` // "standard", "advanced"
	AvatarIndex int    `json:"avatar_index"`
}

// Roster is an ordered pool of bot identities indexed by user ID.
type Roster struct {
	identities []BotIdentity
	byID       map[string]int
}

// ParseRoster decodes a JSON array of identities. Identities without a user
// ID get a stable placeholder so they can still be seated.
func ParseRoster(data []byte) (*Roster, error) {
	var identities []BotIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	r := &Roster{byID: make(map[string]int)}
	for i, identity := range identities {
		if _, err := ParseLevel(identity.Level); err != nil {
			return nil, fmt.Errorf("bot identity %q: %w", identity.Username, err)
		}
		if identity.UserID == "" {
			identity.UserID = fmt.Sprintf("bot-%d", i)
		}
		r.add(identity)
	}
	return r, nil
}

func (r *Roster) add(identity BotIdentity) {
	if i, ok := r.byID[identity.UserID]; ok {
		r.identities[i] = identity
		return
	}
	r.byID[identity.UserID] = len(r.identities)
	r.identities = append(r.identities, identity)
}

// UniformRoster generates n identities playing at level.
func UniformRoster(level Level, n int) *Roster {
	r := &Roster{byID: make(map[string]int)}
	for i := 0; i < n; i++ {
		r.add(BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", i),
			Username:    fmt.Sprintf("bot%d", i),
			DisplayName: fmt.Sprintf("AI Player %d", i),
			Level:       level.String(),
		})
	}
	return r
}

// Len returns the number of identities in the roster.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.identities)
}

// Identity returns an identity by index (mod pool size). An empty roster
// yields generated standard-level identities.
func (r *Roster) Identity(index int) BotIdentity {
	if r.Len() == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			Username:    fmt.Sprintf("bot%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
			Level:       LevelStandard.String(),
		}
	}
	return r.identities[index%len(r.identities)]
}

// Lookup returns the identity for a user ID.
func (r *Roster) Lookup(userID string) (BotIdentity, bool) {
	if r == nil {
		return BotIdentity{}, false
	}
	i, ok := r.byID[userID]
	if !ok {
		return BotIdentity{}, false
	}
	return r.identities[i], true
}

// Agents builds count agents drawn from the roster starting at offset.
func (r *Roster) Agents(offset, count int, tuning Tuning) ([]*Agent, error) {
	agents := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		agent, err := NewAgent(r.Identity(offset+i), tuning)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

var (
	roster        *Roster
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the process-wide bot roster from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		roster, loadErr = ReadRoster(path)
	})
	return loadErr
}

// ReadRoster parses the roster stored at path.
func ReadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bot identities: %w", err)
	}
	return ParseRoster(data)
}

// DefaultRoster returns the loaded roster, or an empty one before LoadIdentities.
func DefaultRoster() *Roster {
	if roster == nil {
		return &Roster{byID: make(map[string]int)}
	}
	return roster
}

// AccountProvisioner is the part of runtime.NakamaModule used to create bot accounts.
type AccountProvisioner interface {
	AuthenticateDevice(ctx context.Context, id, username string, create bool) (string, string, bool, error)
	AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error
}

// ErrProvision is returned when one or more bot accounts could not be created.
var ErrProvision = errors.New("bot provisioning failed")

// ProvisionBots ensures that bot accounts exist in the Nakama database and have the is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	var err error
	provisionOnce.Do(func() {
		err = roster.Provision(ctx, nk, logger)
	})
	return err
}

// Provision authenticates every identity with a device ID and rekeys it by
// the Nakama user ID. Identities that fail keep their placeholder ID.
func (r *Roster) Provision(ctx context.Context, nk AccountProvisioner, logger runtime.Logger) error {
	if r == nil {
		return nil
	}
	var failed []string
	for i := range r.identities {
		identity := r.identities[i]
		if identity.DeviceID == "" {
			continue
		}

		userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
		if err != nil {
			logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
			failed = append(failed, identity.Username)
			continue
		}

		delete(r.byID, identity.UserID)
		identity.UserID = userID
		identity.Username = username
		r.identities[i] = identity
		r.byID[userID] = i

		metadata := map[string]interface{}{
			"is_bot":       true,
			"level":        identity.Level,
			"avatar_index": identity.AvatarIndex,
		}
		if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
			logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
		}

		logger.Info("ProvisionBots: Bot %s (%s) is ready. Level: %s", identity.DisplayName, userID, identity.Level)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: %d bots: %v", ErrProvision, len(failed), failed)
	}
	return nil
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := DefaultRoster().Lookup(userID)
	return ok
}
