package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"landlord/internal/bot"
	"landlord/internal/domain"
)

// Service contains landlord use-cases operating on domain state.
type Service struct {
	rng        *rand.Rand
	log        logrus.FieldLogger
	roster     *bot.Roster
	tuning     bot.Tuning
	maxRedeals int
	baseStake  int64
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used for every transition.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

// WithRoster sets the bot identities seated by PlayGame.
func WithRoster(r *bot.Roster) Option {
	return func(s *Service) { s.roster = r }
}

// WithTuning sets the tuning shared by every seated bot.
func WithTuning(t bot.Tuning) Option {
	return func(s *Service) { s.tuning = t }
}

// WithMaxRedeals bounds the redeals PlayGame attempts when nobody bids.
func WithMaxRedeals(n int) Option {
	return func(s *Service) { s.maxRedeals = n }
}

// WithBaseStake sets the stake a game's settlement is multiplied from.
func WithBaseStake(stake int64) Option {
	return func(s *Service) { s.baseStake = stake }
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, opts ...Option) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Service{
		rng:        rng,
		log:        logrus.StandardLogger(),
		tuning:     bot.DefaultTuning,
		maxRedeals: DefaultMaxRedeals,
		baseStake:  DefaultBaseStake,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrNotBidding    = errors.New("game not in bidding phase")
	ErrNotPlaying    = errors.New("game not in playing phase")
	ErrNotYourTurn   = errors.New("not the player's turn")
	ErrUnknownPlayer = errors.New("player not found")
	ErrInvalidBid    = errors.New("invalid bid")
	ErrCardsNotHeld  = errors.New("cards not in hand")
	ErrIllegalHand   = errors.New("cards form no legal hand")
	ErrCannotBeat    = errors.New("hand does not beat the table")
	ErrMustLead      = errors.New("leader cannot pass")
	ErrNoBid         = errors.New("nobody bid for landlord")
	ErrGameOver      = errors.New("game is over")
)

// StartGame deals a new game to three players in seat order and opens the
// bidding at a random seat.
func (s *Service) StartGame(playerIDs [domain.PlayerCount]string) (*domain.Game, []Event, error) {
	return s.startGame(s.rng, playerIDs)
}

func (s *Service) startGame(rng *rand.Rand, playerIDs [domain.PlayerCount]string) (*domain.Game, []Event, error) {
	for _, id := range playerIDs {
		if id == "" {
			return nil, nil, fmt.Errorf("%w: empty seat", ErrUnknownPlayer)
		}
	}

	deck := domain.ShuffleDeck(domain.NewDeck(), rng)
	game := domain.NewGame(uuid.NewString(), playerIDs, deck)
	game.BidStart = rng.Intn(domain.PlayerCount)
	game.BaseStake = s.baseStake
	game.CurrentTurn = game.BidStart

	events := make([]Event, 0, domain.PlayerCount+1)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:          game.ID,
			Phase:           game.Phase,
			FirstTurnUserID: playerIDs[game.BidStart],
		},
	})
	for _, pl := range game.Players {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: pl.UserID, Hand: pl.Hand.Clone()},
			Recipients: []string{pl.UserID},
		})
	}

	s.gameLog(game).WithField("bid_start", game.BidStart).Debug("game started")
	return game, events, nil
}

// PlaceBid records a bid of 0 (pass) or 1..3 above the current high bid. The
// auction closes after a bid of 3 or once every seat has spoken; it returns
// ErrNoBid when nobody bid.
func (s *Service) PlaceBid(game *domain.Game, actorUserID string, bid int) ([]Event, error) {
	if game.Phase != domain.PhaseBidding {
		return nil, ErrNotBidding
	}
	pl, err := s.actor(game, actorUserID)
	if err != nil {
		return nil, err
	}
	if bid != 0 && (bid <= game.HighBid || bid > domain.MaxBid) {
		return nil, fmt.Errorf("%w: %d after %d", ErrInvalidBid, bid, game.HighBid)
	}

	pl.Bid = bid
	if bid > 0 {
		game.HighBid = bid
		game.HighBidder = pl.Seat
	}
	game.BidTurns++
	game.CurrentTurn = domain.NextSeat(pl.Seat)

	s.gameLog(game).WithFields(logrus.Fields{"seat": pl.Seat, "bid": bid}).Debug("bid placed")
	events := []Event{{
		Kind: EventBidPlaced,
		Payload: BidPlacedPayload{
			UserID:         actorUserID,
			Bid:            bid,
			NextTurnUserID: game.Players[game.CurrentTurn].UserID,
		},
	}}

	if bid < domain.MaxBid && game.BidTurns < domain.PlayerCount {
		return events, nil
	}
	if game.HighBidder < 0 {
		game.Phase = domain.PhaseEnded
		return events, ErrNoBid
	}
	return append(events, s.settleLandlord(game)), nil
}

func (s *Service) settleLandlord(game *domain.Game) Event {
	landlord := game.Players[game.HighBidder]
	for _, pl := range game.Players {
		pl.Role = domain.RolePeasant
	}
	landlord.Role = domain.RoleLandlord
	landlord.Hand = landlord.Hand.Concat(game.Kitty).Sorted()

	game.Landlord = landlord.Seat
	game.Phase = domain.PhasePlaying
	game.CurrentTurn = landlord.Seat

	s.gameLog(game).WithFields(logrus.Fields{"landlord": landlord.Seat, "bid": game.HighBid}).Info("landlord chosen")
	return Event{
		Kind: EventLandlordChosen,
		Payload: LandlordChosenPayload{
			UserID: landlord.UserID,
			Bid:    game.HighBid,
			Kitty:  game.Kitty.Clone(),
		},
	}
}

// PlayCards processes a play action and emits resulting events.
func (s *Service) PlayCards(game *domain.Game, actorUserID string, cards domain.Cards) ([]Event, error) {
	if game.Phase == domain.PhaseEnded {
		return nil, ErrGameOver
	}
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl, err := s.actor(game, actorUserID)
	if err != nil {
		return nil, err
	}
	if !pl.Hand.Contains(cards) {
		return nil, fmt.Errorf("%w: %s", ErrCardsNotHeld, cards)
	}
	hand := domain.Classify(cards)
	if hand.IsNone() {
		return nil, fmt.Errorf("%w: %s", ErrIllegalHand, cards)
	}
	if !s.leading(game, pl.Seat) && domain.Compare(hand, game.LastPlay) != domain.Greater {
		return nil, fmt.Errorf("%w: %s over %s", ErrCannotBeat, hand, game.LastPlay)
	}

	pl.Hand = domain.RemoveCards(pl.Hand, hand.Cards)
	game.LastPlay = hand
	game.LastSeat = pl.Seat
	game.Passes = 0
	game.Record = append(game.Record, domain.Play{Seat: pl.Seat, Hand: hand})
	game.CurrentTurn = domain.NextSeat(pl.Seat)

	s.gameLog(game).WithFields(logrus.Fields{
		"seat":       pl.Seat,
		"hand":       hand.String(),
		"cards_left": len(pl.Hand),
	}).Debug("hand played")

	events := []Event{{
		Kind: EventHandPlayed,
		Payload: HandPlayedPayload{
			UserID:         actorUserID,
			Hand:           hand,
			CardsLeft:      len(pl.Hand),
			NextTurnUserID: game.Players[game.CurrentTurn].UserID,
		},
	}}
	if len(pl.Hand) == 0 {
		events = append(events, s.endGame(game, pl))
	}
	return events, nil
}

// PassTurn marks a player's pass action. When every other player has passed
// the lead returns to whoever played last.
func (s *Service) PassTurn(game *domain.Game, actorUserID string) ([]Event, error) {
	if game.Phase == domain.PhaseEnded {
		return nil, ErrGameOver
	}
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl, err := s.actor(game, actorUserID)
	if err != nil {
		return nil, err
	}
	if s.leading(game, pl.Seat) {
		return nil, ErrMustLead
	}

	game.Passes++
	game.Record = append(game.Record, domain.Play{Seat: pl.Seat})
	game.CurrentTurn = domain.NextSeat(pl.Seat)

	returned := game.Passes == domain.PlayerCount-1
	if returned {
		game.LastPlay = domain.Hand{}
		game.Passes = 0
	}

	s.gameLog(game).WithFields(logrus.Fields{"seat": pl.Seat, "lead_returned": returned}).Debug("turn passed")
	return []Event{{
		Kind: EventTurnPassed,
		Payload: TurnPassedPayload{
			UserID:         actorUserID,
			NextTurnUserID: game.Players[game.CurrentTurn].UserID,
			LeadReturned:   returned,
		},
	}}, nil
}

func (s *Service) endGame(game *domain.Game, winner *domain.Player) Event {
	game.Phase = domain.PhaseEnded
	game.Winner = winner.Seat
	bombs := CountBombs(game)
	settlement := game.CalculateSettlement()

	s.gameLog(game).WithFields(logrus.Fields{
		"winner":     winner.Seat,
		"role":       winner.Role,
		"turns":      len(game.Record),
		"bombs":      bombs,
		"multiplier": settlement.Multiplier,
		"spring":     settlement.Spring,
	}).Info("game ended")
	return Event{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			WinnerUserID:   winner.UserID,
			WinningRole:    winner.Role,
			Bid:            game.HighBid,
			Bombs:          bombs,
			Multiplier:     settlement.Multiplier,
			Spring:         settlement.Spring,
			BalanceChanges: settlement.BalanceChanges,
		},
	}
}

// CountBombs returns how many bombs and nukes were played in game.
func CountBombs(game *domain.Game) int {
	n := 0
	for _, p := range game.Record {
		if p.Hand.Type.IsBombLike() {
			n++
		}
	}
	return n
}

func (s *Service) actor(game *domain.Game, userID string) (*domain.Player, error) {
	seat := game.SeatOf(userID)
	if seat < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, userID)
	}
	if seat != game.CurrentTurn {
		return nil, fmt.Errorf("%w: %s", ErrNotYourTurn, userID)
	}
	return game.Players[seat], nil
}

func (s *Service) leading(game *domain.Game, seat int) bool {
	return game.Leading() || game.LastSeat == seat
}

func (s *Service) gameLog(game *domain.Game) logrus.FieldLogger {
	return s.log.WithField("game_id", game.ID)
}
