package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"landlord/internal/app"
	"landlord/internal/bot"
	"landlord/internal/domain"
	"landlord/internal/ports"
	"landlord/internal/ports/wire"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [domain.PlayerCount]string  // user IDs, empty string means the seat is free
	OwnerSeat int                         // seat allowed to start a game
	Tick      int64                       // current match tick
	Presences map[string]runtime.Presence // connected users for targeted messaging
	Humans    map[string]bool             // users that joined through a presence
	App       *app.Service
	Game      *domain.Game // nil while in the lobby

	BotsEnabled          bool
	BotMinDelay          int   // min ticks a bot waits before acting
	BotMaxDelay          int   // max ticks a bot waits before acting
	BotAutoFillDelay     int   // ticks a lone human waits before bots fill the table
	BotWaitUntil         int64 // tick when the pending bot acts
	LastSinglePlayerTick int64
	// Bots holds every agent acting at the table, including stand-ins for
	// humans who left mid-game.
	Bots   map[string]*bot.Agent
	Roster *bot.Roster
	Tuning bot.Tuning

	Economy ports.EconomyPort
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.PlayerCount - ms.GetOpenSeatsCount()
}

// GetHumanPlayerCount counts seated humans that are still connected.
func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if _, ok := ms.Presences[seat]; ok && seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) isHumanSeat(seat int) bool {
	if seat < 0 || seat >= len(ms.Seats) {
		return false
	}
	userID := ms.Seats[seat]
	return userID != "" && ms.Humans[userID]
}

// findFirstHumanSeat returns the first seat with a connected human, or -1.
func (ms *MatchState) findFirstHumanSeat() int {
	for i, userID := range ms.Seats {
		if _, ok := ms.Presences[userID]; ok && ms.isHumanSeat(i) {
			return i
		}
	}
	return -1
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat != "" && seat == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) firstOpenSeat() int {
	for i, seat := range ms.Seats {
		if seat == "" {
			return i
		}
	}
	return -1
}

// nextBotIdentity returns the first roster identity from index start that is
// not seated, and the index to continue from. A roster too small for the
// table is topped up with generated identities.
func (ms *MatchState) nextBotIdentity(start int) (bot.BotIdentity, int) {
	for k := start; k < start+ms.Roster.Len(); k++ {
		if identity := ms.Roster.Identity(k); ms.seatOf(identity.UserID) < 0 {
			return identity, k + 1
		}
	}
	var generated *bot.Roster
	for k := start; ; k++ {
		if identity := generated.Identity(k); ms.seatOf(identity.UserID) < 0 {
			return identity, k + 1
		}
	}
}

func (ms *MatchState) phaseName() string {
	if ms.Game == nil {
		return "lobby"
	}
	return string(ms.Game.Phase)
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. Table settings come from
// the runtime environment.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		Humans:           make(map[string]bool),
		OwnerSeat:        -1,
		BotsEnabled:      env["landlord_bots_enabled"] == "true",
		BotMinDelay:      envInt(env, "landlord_bot_min_delay_sec", 1),
		BotMaxDelay:      envInt(env, "landlord_bot_max_delay_sec", 3),
		BotAutoFillDelay: envInt(env, "landlord_bot_auto_fill_delay_sec", 5),
		Bots:             make(map[string]*bot.Agent),
		Roster:           bot.DefaultRoster(),
		Tuning:           bot.DefaultTuning,
	}
	if nk != nil {
		state.Economy = NewNakamaEconomyAdapter(nk)
	}
	stake := int64(envInt(env, "landlord_base_stake", 0))
	state.App = app.NewService(nil, app.WithLogger(newAppLogger(logger)), app.WithBaseStake(stake))

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func envInt(env map[string]string, key string, fallback int) int {
	if val, ok := env[key]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnecting players keep their seat.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.GetOpenSeatsCount() > 0 {
		return state, true, ""
	}
	// A full lobby still admits a human in place of a bot.
	if matchState.Game == nil {
		for i := range matchState.Seats {
			if !matchState.isHumanSeat(i) {
				return state, true, ""
			}
		}
	}
	return state, false, "Match full"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		matchState.Humans[userID] = true

		if seat := matchState.seatOf(userID); seat >= 0 {
			// Back from a disconnect: take the seat back from the stand-in.
			delete(matchState.Bots, userID)
			logger.Info("MatchJoin: User %s reclaimed seat %d", userID, seat)
			continue
		}

		if seat := matchState.firstOpenSeat(); seat >= 0 {
			matchState.Seats[seat] = userID
			continue
		}

		assigned := false
		if matchState.Game == nil {
			for i, seatUserID := range matchState.Seats {
				if !matchState.isHumanSeat(i) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserID, userID, i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = userID
					assigned = true
					break
				}
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
		}
	}

	if _, connected := matchState.Presences[matchState.seatUser(matchState.OwnerSeat)]; !connected {
		matchState.OwnerSeat = matchState.findFirstHumanSeat()
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)
	return matchState
}

func (ms *MatchState) seatUser(seat int) string {
	if seat < 0 || seat >= len(ms.Seats) {
		return ""
	}
	return ms.Seats[seat]
}

// MatchLeave frees the seats of leaving players in the lobby. Mid-game a
// standard bot plays the seat until the game ends.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		seat := matchState.seatOf(userID)
		if seat < 0 {
			continue
		}
		if matchState.Game != nil {
			agent, err := bot.NewAgent(bot.BotIdentity{UserID: userID, Level: bot.LevelStandard.String()}, matchState.Tuning)
			if err != nil {
				logger.Error("MatchLeave: Failed to create stand-in for %s: %v", userID, err)
				continue
			}
			matchState.Bots[userID] = agent
			logger.Info("MatchLeave: Bot stands in for %s in seat %d.", userID, seat)
			continue
		}
		matchState.Seats[seat] = ""
		logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	if _, connected := matchState.Presences[matchState.seatUser(matchState.OwnerSeat)]; !connected {
		matchState.OwnerSeat = matchState.findFirstHumanSeat()
		logger.Debug("MatchLeave: Owner set to seat %d.", matchState.OwnerSeat)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlaceBid:
			mh.handlePlaceBid(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(ctx, matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.autoFillBots(ctx, matchState, dispatcher, logger)
	}
	mh.processBots(ctx, matchState, dispatcher, logger)

	return matchState
}

// autoFillBots seats bots next to a lone human once the auto-fill delay passes.
func (mh *matchHandler) autoFillBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game != nil || state.GetHumanPlayerCount() != 1 || state.GetOpenSeatsCount() == 0 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("autoFillBots: Single player detected, starting auto-fill timer.")
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
		return
	}

	next := 0
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		var identity bot.BotIdentity
		identity, next = state.nextBotIdentity(next)

		agent, err := bot.NewAgent(identity, state.Tuning)
		if err != nil {
			logger.Error("autoFillBots: Failed to create bot agent for %s: %v", identity.UserID, err)
			return
		}
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = agent
		logger.Info("autoFillBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
	}
	state.LastSinglePlayerTick = 0

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(ctx, state, dispatcher, logger)
}

// processBots lets the agent on turn act once its delay has passed.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game == nil || game.Phase == domain.PhaseEnded {
		return
	}
	userID := game.Players[game.CurrentTurn].UserID
	agent, ok := state.Bots[userID]
	if !ok {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if spread := state.BotMaxDelay - state.BotMinDelay; spread > 0 {
			delay += rand.Intn(spread + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", userID, game.CurrentTurn, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	if game.Phase == domain.PhaseBidding {
		events, err := state.App.PlaceBid(game, userID, agent.Bid(game))
		mh.afterBid(ctx, state, dispatcher, logger, events, err)
		return
	}

	seat := game.CurrentTurn
	move, err := agent.PlayAtSeat(game, seat)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", userID, err)
	}
	events, err := mh.applyMove(state, userID, move)
	if err != nil {
		logger.Warn("processBots: Bot %s move %s rejected: %v", userID, move.Hand, err)
		events, err = mh.applyMove(state, userID, fallbackMove(game, seat))
		if err != nil {
			logger.Error("processBots: Bot %s fallback rejected: %v", userID, err)
			return
		}
	}
	mh.afterMove(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) applyMove(state *MatchState, userID string, move bot.Move) ([]app.Event, error) {
	if move.Pass || move.Hand.IsNone() {
		return state.App.PassTurn(state.Game, userID)
	}
	return state.App.PlayCards(state.Game, userID, move.Hand.Cards)
}

// fallbackMove passes when responding and leads the lowest card otherwise.
func fallbackMove(game *domain.Game, seat int) bot.Move {
	if !game.Leading() && game.LastSeat != seat {
		return bot.PassMove
	}
	hand := game.Players[seat].Hand
	return bot.Move{Hand: domain.Classify(hand[len(hand)-1:])}
}

// afterBid broadcasts the auction events and redeals when nobody bid.
func (mh *matchHandler) afterBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event, err error) {
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	if errors.Is(err, app.ErrNoBid) {
		logger.Info("afterBid: Nobody bid, redealing.")
		mh.startGame(ctx, state, dispatcher, logger)
		return
	}
	if err == nil {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// afterMove broadcasts a play or pass and shows it to every agent.
func (mh *matchHandler) afterMove(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	if game := state.Game; game != nil && len(game.Record) > 0 {
		played := game.Record[len(game.Record)-1]
		for _, agent := range state.Bots {
			agent.OnGameEvent(played)
		}
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) startGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) bool {
	game, events, err := state.App.StartGame(state.Seats)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return false
	}
	state.Game = game
	state.BotWaitUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	return true
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, 409, "game already running")
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the owner can start the game")
		return
	}
	if state.GetOpenSeatsCount() > 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "the table needs three players")
		return
	}

	if mh.startGame(ctx, state, dispatcher, logger) {
		logger.Info("StartGame: Game %s started.", state.Game.ID)
	}
}

func (mh *matchHandler) handlePlaceBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePlaceBid: Game not started.")
		return
	}

	bid, err := wire.DecodeBid(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	events, err := state.App.PlaceBid(state.Game, senderID, bid)
	if err != nil && !errors.Is(err, app.ErrNoBid) {
		logger.Warn("handlePlaceBid: User %s failed to bid %d: %v", senderID, bid, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	mh.afterBid(ctx, state, dispatcher, logger, events, err)
}

func (mh *matchHandler) handlePlayCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePlayCards: Game not started.")
		return
	}

	cards, err := wire.DecodePlay(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if len(cards) == 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no cards played")
		return
	}

	events, err := state.App.PlayCards(state.Game, senderID, cards)
	if err != nil {
		var hand domain.Cards
		if seat := state.Game.SeatOf(senderID); seat >= 0 {
			hand = state.Game.Players[seat].Hand
		}
		logger.Warn("handlePlayCards: User %s failed to play cards: %v. Requested: %s, Hand: %s", senderID, err, cards, hand)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	mh.afterMove(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handlePassTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePassTurn: Game not started.")
		return
	}

	events, err := state.App.PassTurn(state.Game, senderID)
	if err != nil {
		logger.Warn("handlePassTurn: User %s failed to pass turn: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	mh.afterMove(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) broadcastEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts an app event to a Struct message and dispatches it.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var fields map[string]interface{}

	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		opCode = OpGameStarted
		fields = map[string]interface{}{
			"game_id":            p.GameID,
			"phase":              string(p.Phase),
			"first_turn_user_id": p.FirstTurnUserID,
		}
	case app.HandDealtPayload:
		opCode = OpHandDealt
		fields = map[string]interface{}{
			"user_id": p.UserID,
			"hand":    cardValues(p.Hand),
		}
	case app.BidPlacedPayload:
		opCode = OpBidPlaced
		fields = map[string]interface{}{
			"user_id":           p.UserID,
			"bid":               p.Bid,
			"next_turn_user_id": p.NextTurnUserID,
		}
	case app.LandlordChosenPayload:
		opCode = OpLandlordChosen
		fields = map[string]interface{}{
			"user_id": p.UserID,
			"bid":     p.Bid,
			"kitty":   cardValues(p.Kitty),
		}
	case app.HandPlayedPayload:
		opCode = OpHandPlayed
		fields = map[string]interface{}{
			"user_id":           p.UserID,
			"type":              p.Hand.Type.String(),
			"cards":             cardValues(p.Hand.Cards),
			"cards_left":        p.CardsLeft,
			"next_turn_user_id": p.NextTurnUserID,
		}
	case app.TurnPassedPayload:
		opCode = OpTurnPassed
		fields = map[string]interface{}{
			"user_id":           p.UserID,
			"next_turn_user_id": p.NextTurnUserID,
			"lead_returned":     p.LeadReturned,
		}
	case app.GameEndedPayload:
		opCode = OpGameEnded
		changes := make(map[string]interface{}, len(p.BalanceChanges))
		for userID, amount := range p.BalanceChanges {
			changes[userID] = amount
		}
		fields = map[string]interface{}{
			"winner_user_id":  p.WinnerUserID,
			"winning_role":    string(p.WinningRole),
			"bid":             p.Bid,
			"bombs":           p.Bombs,
			"multiplier":      p.Multiplier,
			"spring":          p.Spring,
			"balance_changes": changes,
		}
		defer mh.endGame(ctx, state, dispatcher, logger, p)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	payload, err := structpb.NewStruct(fields)
	if err != nil {
		logger.Error("Failed to build event %v: %v", ev.Kind, err)
		return
	}
	data, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for bots or disconnected players go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)
}

// endGame settles the wallets of human players and returns the table to the lobby.
func (mh *matchHandler) endGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, p app.GameEndedPayload) {
	if state.Economy != nil {
		updates := make([]ports.WalletUpdate, 0, len(p.BalanceChanges))
		for userID, amount := range p.BalanceChanges {
			if !state.Humans[userID] {
				continue
			}
			updates = append(updates, ports.WalletUpdate{
				UserID: userID,
				Amount: amount,
				Metadata: map[string]interface{}{
					"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
					"game_id":  state.Game.ID,
					"reason":   "game_settlement",
				},
			})
		}
		if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
			logger.Error("Failed to update balances: %v", err)
		}
	}

	// Stand-ins leave with the game they finished.
	for i, userID := range state.Seats {
		if _, connected := state.Presences[userID]; state.Humans[userID] && !connected {
			delete(state.Bots, userID)
			state.Seats[i] = ""
		}
	}
	state.Game = nil
	state.BotWaitUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(ctx, state, dispatcher, logger)
}

func cardValues(cards domain.Cards) []interface{} {
	out := make([]interface{}, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// broadcastMatchState sends the seat snapshot to everyone.
func (mh *matchHandler) broadcastMatchState(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make([]interface{}, 0, domain.PlayerCount)
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		displayName := userID
		if p, ok := state.Presences[userID]; ok {
			displayName = p.GetUsername()
		} else if agent, ok := state.Bots[userID]; ok && agent.Name != "" {
			displayName = agent.Name
		}

		cardsRemaining := 0
		if state.Game != nil {
			if seat := state.Game.SeatOf(userID); seat >= 0 {
				cardsRemaining = len(state.Game.Players[seat].Hand)
			}
		}

		var balance int64
		if state.Economy != nil && state.Humans[userID] {
			b, err := state.Economy.GetBalance(ctx, userID)
			if err != nil {
				logger.Warn("broadcastMatchState: Failed to get balance for %s: %v", userID, err)
			}
			balance = b
		}

		players = append(players, map[string]interface{}{
			"user_id":         userID,
			"seat":            i,
			"is_owner":        i == state.OwnerSeat,
			"is_bot":          !state.Humans[userID],
			"display_name":    displayName,
			"cards_remaining": cardsRemaining,
			"balance":         balance,
		})
	}

	snapshot, err := structpb.NewStruct(map[string]interface{}{
		"owner_seat": state.OwnerSeat,
		"tick":       state.Tick,
		"phase":      state.phaseName(),
		"players":    players,
	})
	if err != nil {
		logger.Error("broadcastMatchState: Failed to build snapshot: %v", err)
		return
	}
	data, err := proto.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, data, nil, nil, true)
}

// sendError sends an error event to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	payload, err := structpb.NewStruct(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("Failed to build error event: %v", err)
		return
	}
	data, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal error event: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true)
}

// matchLabel renders the label quick match filters on.
func matchLabel(state *MatchState) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		labelKeyOpen:  state.GetOpenSeatsCount(),
		labelKeyState: state.phaseName(),
		labelKeyGame:  labelGame,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
