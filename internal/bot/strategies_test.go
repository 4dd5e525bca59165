package bot

import (
	"testing"

	"landlord/internal/domain"
)

// table seats three hands with seat landlord as the landlord. When lastSeat is
// not negative, last is on the table as that seat's play.
func table(landlord int, hands [domain.PlayerCount]string, lastSeat int, last string) *domain.Game {
	g := &domain.Game{
		ID:         "test",
		Phase:      domain.PhasePlaying,
		HighBidder: landlord,
		Landlord:   landlord,
		LastSeat:   -1,
		Winner:     -1,
	}
	for seat, h := range hands {
		role := domain.RolePeasant
		if seat == landlord {
			role = domain.RoleLandlord
		}
		g.Players[seat] = &domain.Player{
			UserID: string(rune('a' + seat)),
			Seat:   seat,
			Role:   role,
			Hand:   domain.MustParseCards(h).Sorted(),
		}
	}
	if lastSeat >= 0 {
		g.LastSeat = lastSeat
		g.LastPlay = domain.Classify(domain.MustParseCards(last))
		g.Record = append(g.Record, domain.Play{Seat: lastSeat, Hand: g.LastPlay})
	}
	return g
}

func TestStandardBot_Bid(t *testing.T) {
	tests := []struct {
		name       string
		hand       string
		currentBid int
		want       int
	}{
		{"two hands bids three", "r R 2S 2H 2D 2C", 0, 3},
		{"cannot outbid three", "r R 2S 2H 2D 2C", 3, 0},
		{"three hands bids two", "r R 2S 2H 2D 2C 3S", 0, 2},
		{"three hands over a two", "r R 2S 2H 2D 2C 3S", 2, 0},
		{"eight hands bids one", "3S 4S 5S 7S 9S JS KS 2S", 0, 1},
		{"nine hands abstains", "3S 4S 5S 7S 9S JS KS 2S r", 0, 0},
	}
	b := NewStandardBot(DefaultTuning)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Bid(domain.MustParseCards(tt.hand), tt.currentBid); got != tt.want {
				t.Errorf("Bid(%s, %d) = %d, want %d", tt.hand, tt.currentBid, got, tt.want)
			}
		})
	}
}

func TestStandardBot_Lead(t *testing.T) {
	tests := []struct {
		name string
		hand string
		want string
	}{
		{"last hand goes out", "r R", "r R"},
		{"trio chain takes pairs", "3S 3H 3D 4S 4H 4D 8S 8H 9S 9H KS", "3S 3H 3D 4S 4H 4D 8S 8H 9S 9H"},
		{"solo chain before pair", "3S 4S 5S 6S 7S 9H 9D", "3S 4S 5S 6S 7S"},
		{"trio with pair", "5S 5H 5D 9S 9H JS", "5S 5H 5D 9S 9H"},
		{"trio keeps the 2s", "5S 5H 5D 2S 2H", "5S 5H 5D"},
		{"lowest pair", "6S 6H 8S 8H 2S", "6S 6H"},
		{"lowest solo", "4S 9H 2S", "4S"},
	}
	b := NewStandardBot(DefaultTuning)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := table(0, [domain.PlayerCount]string{tt.hand, "10C", "10D"}, -1, "")
			move, err := b.CalculateMove(g, g.Players[0])
			if err != nil {
				t.Fatalf("CalculateMove: %v", err)
			}
			if move.Pass {
				t.Fatalf("leader must not pass")
			}
			if !move.Hand.Cards.Equal(domain.MustParseCards(tt.want)) {
				t.Errorf("lead = %s, want %s", move.Hand.Cards, tt.want)
			}
		})
	}
}

func TestStandardBot_LeadsAfterEveryonePassed(t *testing.T) {
	g := table(0, [domain.PlayerCount]string{"5S 5H 9S", "3C", "3D"}, 0, "AS")
	b := NewStandardBot(DefaultTuning)

	move, err := b.CalculateMove(g, g.Players[0])
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if move.Pass || move.Hand.Type != domain.TypePair {
		t.Errorf("expected a pair lead, got %+v", move)
	}
}

func TestStandardBot_Respond(t *testing.T) {
	tests := []struct {
		name     string
		hands    [domain.PlayerCount]string
		seat     int
		lastSeat int
		last     string
		want     string // empty means pass
	}{
		{
			name:  "cheapest pair",
			hands: [domain.PlayerCount]string{"KS", "5S 5H 6S 6H 9S", "KD"},
			seat:  1, lastSeat: 0, last: "4S 4H",
			want: "5S 5H",
		},
		{
			name:  "no beat passes",
			hands: [domain.PlayerCount]string{"KS", "3S", "KD"},
			seat:  1, lastSeat: 0, last: "4S",
		},
		{
			name:  "bombs the landlord",
			hands: [domain.PlayerCount]string{"KS", "3S 3H 3D 3C 4S", "KD"},
			seat:  1, lastSeat: 0, last: "AS",
			want: "3S 3H 3D 3C",
		},
		{
			name:  "never bombs the teammate",
			hands: [domain.PlayerCount]string{"KS", "KD KH 7S 8S 9D 10D", "3S 3H 3D 3C 4S"},
			seat:  2, lastSeat: 1, last: "AS",
		},
		{
			name:  "lets a shorter teammate run",
			hands: [domain.PlayerCount]string{"KS", "8S", "9S 10S JS"},
			seat:  2, lastSeat: 1, last: "5S",
		},
		{
			name:  "overtakes a longer teammate",
			hands: [domain.PlayerCount]string{"KS", "8S 8H 7D 6C", "9S 10S"},
			seat:  2, lastSeat: 1, last: "5S",
			want: "9S",
		},
	}
	b := NewStandardBot(DefaultTuning)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := table(0, tt.hands, tt.lastSeat, tt.last)
			move, err := b.CalculateMove(g, g.Players[tt.seat])
			if err != nil {
				t.Fatalf("CalculateMove: %v", err)
			}
			if tt.want == "" {
				if !move.Pass {
					t.Errorf("expected pass, got %s", move.Hand)
				}
				return
			}
			if move.Pass || !move.Hand.Cards.Equal(domain.MustParseCards(tt.want)) {
				t.Errorf("move = %+v, want %s", move, tt.want)
			}
		})
	}
}

func TestStandardBot_NoCooperation(t *testing.T) {
	tuning := DefaultTuning
	tuning.Cooperate = false
	b := NewStandardBot(tuning)

	g := table(0, [domain.PlayerCount]string{"KS", "8S", "9S 10S JS"}, 1, "5S")
	move, _ := b.CalculateMove(g, g.Players[2])
	if move.Pass {
		t.Errorf("without cooperation the bot should beat its teammate")
	}
}

func TestAdvancedBot_Respond(t *testing.T) {
	tests := []struct {
		name  string
		hands [domain.PlayerCount]string
		want  string
	}{
		{
			name:  "holds the bomb mid game",
			hands: [domain.PlayerCount]string{"KS KH QS QH JH 10H 9H 8H", "3S 3H 3D 3C 5S 7S 9S JS", "4S 4H 6S 6H 8S 10S"},
		},
		{
			name:  "bombs when the landlord is nearly out",
			hands: [domain.PlayerCount]string{"KS KH", "3S 3H 3D 3C 5S 7S 9S JS", "4S 4H 6S 6H 8S 10S"},
			want:  "3S 3H 3D 3C",
		},
		{
			name:  "bombs to go out",
			hands: [domain.PlayerCount]string{"KS KH QS QH JH 10H 9H 8H", "3S 3H 3D 3C", "4S 4H 6S 6H 8S 10S"},
			want:  "3S 3H 3D 3C",
		},
		{
			name:  "regular beat that goes out",
			hands: [domain.PlayerCount]string{"KS KH QS QH JH 10H 9H 8H", "2S", "4S 4H 6S 6H 8S 10S"},
			want:  "2S",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewAdvancedBot(DefaultTuning)
			g := table(0, tt.hands, 0, "AS")
			move, err := b.CalculateMove(g, g.Players[1])
			if err != nil {
				t.Fatalf("CalculateMove: %v", err)
			}
			if tt.want == "" {
				if !move.Pass {
					t.Errorf("expected pass, got %s", move.Hand)
				}
				return
			}
			if move.Pass || !move.Hand.Cards.Equal(domain.MustParseCards(tt.want)) {
				t.Errorf("move = %+v, want %s", move, tt.want)
			}
		})
	}
}

func TestAdvancedBot_LeadIsLegal(t *testing.T) {
	deck := domain.NewDeck()
	g := domain.NewGame("lead", [domain.PlayerCount]string{"a", "b", "c"}, deck)
	g.Phase = domain.PhasePlaying
	g.Landlord = 0
	for _, p := range g.Players {
		p.Role = domain.RolePeasant
	}
	g.Players[0].Role = domain.RoleLandlord

	b := NewAdvancedBot(DefaultTuning)
	move, err := b.CalculateMove(g, g.Players[0])
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if move.Pass || move.Hand.IsNone() {
		t.Fatalf("leader must play a hand")
	}
	if !g.Players[0].Hand.Contains(move.Hand.Cards) {
		t.Errorf("lead %s is not in hand %s", move.Hand, g.Players[0].Hand)
	}
	if domain.Classify(move.Hand.Cards).Type != move.Hand.Type {
		t.Errorf("lead %s is not a legal hand", move.Hand)
	}
}

func TestAdvancedBot_OnEventCountsCards(t *testing.T) {
	b := NewAdvancedBot(DefaultTuning)
	queen := domain.Classify(domain.MustParseCards("QS"))
	b.OnEvent(domain.Play{Seat: 0, Hand: queen})
	b.OnEvent(&domain.Play{Seat: 1})

	if !b.memory.IsPlayed(queen.Cards[0]) {
		t.Errorf("QS should be counted as played")
	}
	if got := len(b.memory.Unseen()); got != domain.MaxCards-1 {
		t.Errorf("Unseen() = %d cards, want %d", got, domain.MaxCards-1)
	}
}

func TestAdvancedBot_Bid(t *testing.T) {
	b := NewAdvancedBot(DefaultTuning)
	if got := b.Bid(domain.MustParseCards("r R 2S 2H 2D 2C"), 0); got != 3 {
		t.Errorf("Bid = %d, want 3", got)
	}
	// six scattered solos
	weak := domain.MustParseCards("3S 5S 7S 9S JS KS")
	if got := b.Bid(weak, 0); got != 1 {
		t.Errorf("Bid = %d, want 1", got)
	}
	if got := b.Bid(weak, 1); got != 0 {
		t.Errorf("Bid over 1 = %d, want 0", got)
	}
}
