package bot

import (
	"errors"
	"testing"

	"landlord/internal/domain"
)

const rosterJSON = `[
  {"user_id": "u1", "username": "ling", "display_name": "Ling", "level": "standard"},
  {"username": "wei", "display_name": "Wei", "level": "advanced"}
]`

func TestParseRoster(t *testing.T) {
	r, err := ParseRoster([]byte(rosterJSON))
	if err != nil {
		t.Fatalf("ParseRoster: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if got := r.Identity(3).Username; got != "wei" {
		t.Errorf("Identity(3) = %q, want wei", got)
	}
	if id, ok := r.Lookup("bot-1"); !ok || id.DisplayName != "Wei" {
		t.Errorf("Lookup(bot-1) = %+v, %v", id, ok)
	}
	if _, ok := r.Lookup("nobody"); ok {
		t.Errorf("Lookup(nobody) should fail")
	}
}

func TestParseRoster_Errors(t *testing.T) {
	if _, err := ParseRoster([]byte(`{`)); err == nil {
		t.Errorf("expected a decode error")
	}
	_, err := ParseRoster([]byte(`[{"username": "x", "level": "grandmaster"}]`))
	if !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("err = %v, want ErrUnknownLevel", err)
	}
}

func TestEmptyRosterGeneratesIdentities(t *testing.T) {
	var r *Roster
	id := r.Identity(2)
	if id.UserID != "bot-2" || id.Level != "standard" {
		t.Errorf("Identity(2) = %+v", id)
	}
}

func TestUniformRoster(t *testing.T) {
	r := UniformRoster(LevelAdvanced, domain.PlayerCount)
	if r.Len() != domain.PlayerCount {
		t.Fatalf("Len = %d", r.Len())
	}
	agents, err := r.Agents(0, domain.PlayerCount, DefaultTuning)
	if err != nil {
		t.Fatalf("Agents: %v", err)
	}
	seen := make(map[string]bool)
	for _, a := range agents {
		if seen[a.ID] {
			t.Errorf("duplicate agent %s", a.ID)
		}
		seen[a.ID] = true
		if _, ok := a.Strategy.(*AdvancedBot); !ok {
			t.Errorf("agent %s plays %T", a.ID, a.Strategy)
		}
	}
}

func TestRosterAgents(t *testing.T) {
	r, err := ParseRoster([]byte(rosterJSON))
	if err != nil {
		t.Fatalf("ParseRoster: %v", err)
	}
	agents, err := r.Agents(0, domain.PlayerCount, DefaultTuning)
	if err != nil {
		t.Fatalf("Agents: %v", err)
	}
	if len(agents) != domain.PlayerCount {
		t.Fatalf("got %d agents", len(agents))
	}
	if _, ok := agents[0].Strategy.(*StandardBot); !ok {
		t.Errorf("agent 0 should be a StandardBot, got %T", agents[0].Strategy)
	}
	if _, ok := agents[1].Strategy.(*AdvancedBot); !ok {
		t.Errorf("agent 1 should be an AdvancedBot, got %T", agents[1].Strategy)
	}
}

func TestAgentPlayAndBid(t *testing.T) {
	agent, err := NewAgent(BotIdentity{UserID: "b", Level: "standard"}, DefaultTuning)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	g := table(0, [domain.PlayerCount]string{"KS", "r R 2S 2H 2D 2C", "KD"}, -1, "")

	if got := agent.Bid(g); got != 3 {
		t.Errorf("Bid = %d, want 3", got)
	}
	move, err := agent.Play(g)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if move.Pass || move.Hand.IsNone() {
		t.Errorf("expected a lead, got %+v", move)
	}

	stranger := &Agent{ID: "zz", Strategy: agent.Strategy}
	if move, _ := stranger.Play(g); !move.Pass {
		t.Errorf("an agent outside the game should pass")
	}
	if got := stranger.Bid(g); got != 0 {
		t.Errorf("an agent outside the game should not bid")
	}
}

func TestNewBrain(t *testing.T) {
	for _, name := range []string{"", "easy", "standard", "advanced", "HARD"} {
		level, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if _, err := NewBrain(level); err != nil {
			t.Errorf("NewBrain(%s): %v", level, err)
		}
	}
	if _, err := NewBrain(Level(9)); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("NewBrain(9) err = %v, want ErrUnknownLevel", err)
	}
	if _, err := ParseLevel("expert"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("ParseLevel(expert) err = %v, want ErrUnknownLevel", err)
	}
}

func TestEngineFacade(t *testing.T) {
	pool := domain.MustParseCards("5S 5H 6S 6H 9S")
	pair4 := Classify(domain.MustParseCards("4S 4H"))

	first, ok := SearchBeat(pool, pair4, domain.Hand{})
	if !ok || first.Rank() != domain.Rank5 {
		t.Fatalf("SearchBeat = %s, %v", first, ok)
	}
	second, ok := SearchBeat(pool, pair4, first)
	if !ok || second.Rank() != domain.Rank6 {
		t.Fatalf("SearchBeat ladder = %s, %v", second, ok)
	}
	if _, ok := SearchBeat(pool, pair4, second); ok {
		t.Errorf("ladder should end after the sixes")
	}
	if got := len(SearchBeatList(pool, pair4)); got != 2 {
		t.Errorf("SearchBeatList = %d hands, want 2", got)
	}
	if got := Analyze(pool, ModeAdvanced); !got.Cards().Equal(pool) {
		t.Errorf("Analyze lost cards: %v", got)
	}
	if _, ok := BestBeat(pool, Classify(domain.MustParseCards("2S 2H")), EvaluatorStandard); ok {
		t.Errorf("nothing in pool beats a pair of 2s")
	}
}
