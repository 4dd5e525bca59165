package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"

	"landlord/internal/app"
	"landlord/internal/bot"
	"landlord/internal/domain"
)

// maxSimulateGames caps the games one landlord_simulate call may run.
const maxSimulateGames = 200

type rpcFunc = func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := []struct {
		id string
		fn rpcFunc
	}{
		{RpcQuickMatch, rpcQuickMatch},
		{RpcClassify, rpcClassify},
		{RpcAnalyze, rpcAnalyze},
		{RpcSearchBeats, rpcSearchBeats},
		{RpcBestBeat, rpcBestBeat},
		{RpcBid, rpcBid},
		{RpcSimulate, rpcSimulate},
	}
	for _, r := range rpcs {
		if err := initializer.RegisterRpc(r.id, r.fn); err != nil {
			return err
		}
	}
	return nil
}

type ClassifyRequest struct {
	Cards []string `json:"cards"`
}

type ClassifyResponse struct {
	Valid bool     `json:"valid"`
	Hand  HandView `json:"hand"`
	Wire  string   `json:"wire"`
}

type AnalyzeRequest struct {
	Cards []string `json:"cards"`
	Mode  string   `json:"mode"`
}

type AnalyzeResponse struct {
	Hands []HandView `json:"hands"`
	Count int        `json:"count"`
	Wire  string     `json:"wire"`
}

// SearchBeatsRequest asks for the lowest beat of Target in Pool, or the whole
// ladder of beats when Ladder is set.
type SearchBeatsRequest struct {
	Pool   []string `json:"pool"`
	Target []string `json:"target"`
	Ladder bool     `json:"ladder"`
}

type SearchBeatsResponse struct {
	Beats []HandView `json:"beats"`
	Wire  string     `json:"wire"`
}

type BestBeatRequest struct {
	Pool      []string `json:"pool"`
	Target    []string `json:"target"`
	Evaluator string   `json:"evaluator"`
}

type BestBeatResponse struct {
	Found bool     `json:"found"`
	Hand  HandView `json:"hand"`
	Wire  string   `json:"wire"`
}

type BidRequest struct {
	Cards      []string `json:"cards"`
	CurrentBid int      `json:"current_bid"`
	Level      string   `json:"level"`
}

type BidResponse struct {
	Bid int `json:"bid"`
}

type SimulateRequest struct {
	Games   int    `json:"games"`
	Workers int    `json:"workers"`
	Seed    int64  `json:"seed"`
	Level   string `json:"level"`
}

func rpcClassify(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req ClassifyRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	cards, err := cardsFromStrings(req.Cards)
	if err != nil {
		return "", invalidArgument(err)
	}

	hand := bot.Classify(cards)
	return encodeResponse(logger, ClassifyResponse{
		Valid: !hand.IsNone(),
		Hand:  handToView(hand),
		Wire:  wireHand(hand),
	})
}

func rpcAnalyze(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req AnalyzeRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	cards, err := cardsFromStrings(req.Cards)
	if err != nil {
		return "", invalidArgument(err)
	}
	mode, ok := bot.ParseEvaluator(req.Mode)
	if !ok {
		return "", runtime.NewError("unknown mode "+req.Mode, codeInvalidArgument)
	}

	hands := bot.Analyze(cards.Sorted(), mode)
	return encodeResponse(logger, AnalyzeResponse{
		Hands: handsToViews(hands),
		Count: len(hands),
		Wire:  wireHandList(hands),
	})
}

func rpcSearchBeats(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req SearchBeatsRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	pool, target, err := poolAndTarget(req.Pool, req.Target)
	if err != nil {
		return "", err
	}

	var beats domain.HandList
	if req.Ladder {
		beats = bot.SearchBeatList(pool, target)
	} else if h, ok := bot.SearchBeat(pool, target, domain.Hand{}); ok {
		beats = domain.HandList{h}
	}
	return encodeResponse(logger, SearchBeatsResponse{
		Beats: handsToViews(beats),
		Wire:  wireHandList(beats),
	})
}

func rpcBestBeat(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req BestBeatRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	pool, target, err := poolAndTarget(req.Pool, req.Target)
	if err != nil {
		return "", err
	}
	eval, ok := bot.ParseEvaluator(req.Evaluator)
	if !ok {
		return "", runtime.NewError("unknown evaluator "+req.Evaluator, codeInvalidArgument)
	}

	hand, found := bot.BestBeat(pool, target, eval)
	return encodeResponse(logger, BestBeatResponse{
		Found: found,
		Hand:  handToView(hand),
		Wire:  wireHand(hand),
	})
}

func rpcBid(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req BidRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	cards, err := cardsFromStrings(req.Cards)
	if err != nil {
		return "", invalidArgument(err)
	}
	if req.CurrentBid < 0 || req.CurrentBid > domain.MaxBid {
		return "", runtime.NewError("current_bid out of range", codeInvalidArgument)
	}
	level, err := bot.ParseLevel(req.Level)
	if err != nil {
		return "", invalidArgument(err)
	}
	brain, err := bot.NewBrain(level)
	if err != nil {
		return "", invalidArgument(err)
	}

	return encodeResponse(logger, BidResponse{Bid: brain.Bid(cards.Sorted(), req.CurrentBid)})
}

func rpcSimulate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req := SimulateRequest{Games: 10, Workers: 2, Seed: 1}
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if req.Games <= 0 || req.Games > maxSimulateGames {
		return "", runtime.NewError("games must be between 1 and 200", codeInvalidArgument)
	}

	roster := bot.DefaultRoster()
	if req.Level != "" || roster.Len() < domain.PlayerCount {
		level, err := bot.ParseLevel(req.Level)
		if err != nil {
			return "", invalidArgument(err)
		}
		roster = bot.UniformRoster(level, domain.PlayerCount)
	}

	svc := app.NewService(nil, app.WithLogger(newAppLogger(logger)), app.WithRoster(roster))
	sum, err := svc.Simulate(ctx, req.Games, req.Workers, req.Seed)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", runtime.NewError("simulation cancelled", codeInternal)
		}
		logger.Error("rpcSimulate: %v", err)
		return "", runtime.NewError("simulation failed", codeInternal)
	}
	return encodeResponse(logger, sum)
}

func poolAndTarget(poolTokens, targetTokens []string) (domain.Cards, domain.Hand, error) {
	pool, err := cardsFromStrings(poolTokens)
	if err != nil {
		return nil, domain.Hand{}, invalidArgument(err)
	}
	targetCards, err := cardsFromStrings(targetTokens)
	if err != nil {
		return nil, domain.Hand{}, invalidArgument(err)
	}
	target := bot.Classify(targetCards)
	if target.IsNone() {
		return nil, domain.Hand{}, runtime.NewError("target is not a legal hand", codeInvalidArgument)
	}
	return pool.Sorted(), target, nil
}

func decodePayload(payload string, v interface{}) error {
	if payload == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("invalid payload: "+err.Error(), codeInvalidArgument)
	}
	return nil
}

func encodeResponse(logger runtime.Logger, v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to marshal response: %v", err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(b), nil
}

func invalidArgument(err error) error {
	return runtime.NewError(err.Error(), codeInvalidArgument)
}
