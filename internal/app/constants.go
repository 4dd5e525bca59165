package app

// DefaultMaxRedeals bounds how many times PlayGame redeals after nobody bids.
// Keep this centralized so tests or local runs can adjust the rule without touching multiple call sites.
const DefaultMaxRedeals = 8

// maxTurns caps a single game's play loop. Every lead removes cards, so a
// legal game needs far fewer turns than this.
const maxTurns = 4 * 54 * 3

// DefaultBaseStake is the settlement unit when no stake is configured.
const DefaultBaseStake int64 = 1
