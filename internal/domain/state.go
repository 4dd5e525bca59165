package domain

// Phase represents the lifecycle stage of a landlord game.
type Phase string

const (
	// PhaseBidding is the auction for the landlord seat.
	PhaseBidding Phase = "bidding"
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a game concludes.
	PhaseEnded Phase = "ended"
)

// Table layout.
const (
	PlayerCount = 3
	HandSize    = 17
	KittySize   = 3
	MaxBid      = 3
)

// Role is a player's side once bidding is settled.
type Role string

const (
	RoleUndecided Role = ""
	RolePeasant   Role = "peasant"
	RoleLandlord  Role = "landlord"
)

// Player holds state for a participant in the game.
type Player struct {
	UserID string
	Seat   int // 0-based seat number
	Role   Role
	Hand   Cards
	Bid    int
}

// Play is one entry in the game record. A pass carries a none hand.
type Play struct {
	Seat int
	Hand Hand
}

// Game holds authoritative state for a single landlord deal.
type Game struct {
	ID      string
	Phase   Phase
	Players [PlayerCount]*Player
	Kitty   Cards

	// Bidding
	BidStart   int
	BidTurns   int
	HighBid    int
	HighBidder int

	Landlord int

	// Turn tracking
	CurrentTurn int
	LastPlay    Hand
	LastSeat    int
	Passes      int

	Record []Play
	Winner int

	// BaseStake is the unit the settlement multiplies.
	BaseStake int64
}

// NewGame deals a shuffled deck into three hands of HandSize plus the kitty.
func NewGame(id string, playerIDs [PlayerCount]string, deck Cards) *Game {
	g := &Game{
		ID:         id,
		Phase:      PhaseBidding,
		HighBidder: -1,
		Landlord:   -1,
		LastSeat:   -1,
		Winner:     -1,
	}
	for seat := 0; seat < PlayerCount; seat++ {
		hand := deck[seat*HandSize : (seat+1)*HandSize].Clone()
		SortHand(hand)
		g.Players[seat] = &Player{UserID: playerIDs[seat], Seat: seat, Hand: hand}
	}
	g.Kitty = deck[PlayerCount*HandSize:].Clone()
	return g
}

// NextSeat returns the seat after seat in play order.
func NextSeat(seat int) int {
	return (seat + 1) % PlayerCount
}

// SeatOf returns the seat held by userID, or -1.
func (g *Game) SeatOf(userID string) int {
	for _, p := range g.Players {
		if p != nil && p.UserID == userID {
			return p.Seat
		}
	}
	return -1
}

// Leading reports whether the player to act is free to lead any hand.
func (g *Game) Leading() bool {
	return g.LastPlay.IsNone()
}

// Teammates reports whether the two seats are on the same side.
func (g *Game) Teammates(a, b int) bool {
	if a == b {
		return true
	}
	return g.Players[a].Role == RolePeasant && g.Players[b].Role == RolePeasant
}

// CardsInPlay returns every card still held by a player plus the kitty if it
// has not been claimed.
func (g *Game) CardsInPlay() Cards {
	var out Cards
	for _, p := range g.Players {
		out = append(out, p.Hand...)
	}
	if g.Landlord < 0 {
		out = append(out, g.Kitty...)
	}
	return out
}

// PlayedCards returns every card already played.
func (g *Game) PlayedCards() Cards {
	var out Cards
	for _, p := range g.Record {
		out = append(out, p.Hand.Cards...)
	}
	return out
}

// Unseen returns the cards the player at seat cannot see: the full deck minus
// their own hand and everything already played.
func (g *Game) Unseen(seat int) Cards {
	seen := g.Players[seat].Hand.Concat(g.PlayedCards())
	return RemoveCards(NewDeck(), seen)
}

// CountPlayersWithCards returns the number of players with cards remaining.
func (g *Game) CountPlayersWithCards() int {
	count := 0
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			count++
		}
	}
	return count
}
