package nakama

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"landlord/internal/app"
	"landlord/internal/domain"
	"landlord/internal/ports/wire"
)

func callRPC(t *testing.T, fn rpcFunc, payload string, out interface{}) error {
	t.Helper()
	resp, err := fn(context.Background(), noopLogger{}, nil, nil, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(resp), out); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, resp)
	}
	return nil
}

func wantCode(t *testing.T, err error, code int) {
	t.Helper()
	var rerr *runtime.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %v, want *runtime.Error", err)
	}
	if rerr.Code != code {
		t.Fatalf("code = %d, want %d (%s)", rerr.Code, code, rerr.Message)
	}
}

func TestRpcClassify(t *testing.T) {
	var resp ClassifyResponse
	if err := callRPC(t, rpcClassify, `{"cards":["3S","3H","3D","4S","4H","4D","8S","9S"]}`, &resp); err != nil {
		t.Fatalf("rpcClassify: %v", err)
	}
	if !resp.Valid || resp.Hand.Type != "trio-chain+solo" {
		t.Fatalf("resp = %+v", resp)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Wire)
	if err != nil {
		t.Fatalf("wire is not base64: %v", err)
	}
	hand, err := wire.DecodeHand(raw)
	if err != nil {
		t.Fatalf("DecodeHand: %v", err)
	}
	if hand.Type.String() != resp.Hand.Type || len(hand.Cards) != 8 {
		t.Fatalf("wire hand = %s", hand)
	}

	if err := callRPC(t, rpcClassify, `{"cards":["3S","4S"]}`, &resp); err != nil {
		t.Fatalf("rpcClassify: %v", err)
	}
	if resp.Valid || resp.Hand.Type != "none" {
		t.Fatalf("3S 4S classified as %+v", resp)
	}
}

func TestRpcClassify_BadInput(t *testing.T) {
	for _, payload := range []string{
		`{"cards":["3S","3S"]}`,
		`{"cards":["1Z"]}`,
		`not json`,
	} {
		var resp ClassifyResponse
		wantCode(t, callRPC(t, rpcClassify, payload, &resp), codeInvalidArgument)
	}
}

func TestRpcAnalyze(t *testing.T) {
	var resp AnalyzeResponse
	payload := `{"cards":["3S","4S","5S","6S","7S","7H","8S","9S","10S","JS"],"mode":"advanced"}`
	if err := callRPC(t, rpcAnalyze, payload, &resp); err != nil {
		t.Fatalf("rpcAnalyze: %v", err)
	}
	if resp.Count != len(resp.Hands) || resp.Count == 0 {
		t.Fatalf("resp = %+v", resp)
	}
	total := 0
	for _, h := range resp.Hands {
		total += len(h.Cards)
	}
	if total != 10 {
		t.Fatalf("decomposition covers %d cards, want 10", total)
	}

	wantCode(t, callRPC(t, rpcAnalyze, `{"cards":["3S"],"mode":"psychic"}`, &resp), codeInvalidArgument)
}

func TestRpcSearchBeats(t *testing.T) {
	var resp SearchBeatsResponse
	payload := `{"pool":["5S","5H","9S","9H","9D","9C"],"target":["4S","4H"]}`
	if err := callRPC(t, rpcSearchBeats, payload, &resp); err != nil {
		t.Fatalf("rpcSearchBeats: %v", err)
	}
	if len(resp.Beats) != 1 || resp.Beats[0].Type != "pair" || resp.Beats[0].Cards[0][0] != '5' {
		t.Fatalf("first beat = %+v", resp.Beats)
	}

	payload = `{"pool":["5S","5H","9S","9H","9D","9C"],"target":["4S","4H"],"ladder":true}`
	if err := callRPC(t, rpcSearchBeats, payload, &resp); err != nil {
		t.Fatalf("rpcSearchBeats: %v", err)
	}
	if len(resp.Beats) < 3 || resp.Beats[len(resp.Beats)-1].Type != "bomb" {
		t.Fatalf("ladder = %+v", resp.Beats)
	}

	wantCode(t, callRPC(t, rpcSearchBeats, `{"pool":["5S"],"target":["3S","4S"]}`, &resp), codeInvalidArgument)
}

func TestRpcBestBeat(t *testing.T) {
	var resp BestBeatResponse
	if err := callRPC(t, rpcBestBeat, `{"pool":["3S","4S"],"target":["2S"]}`, &resp); err != nil {
		t.Fatalf("rpcBestBeat: %v", err)
	}
	if resp.Found {
		t.Fatalf("found a beat of 2S in 3S 4S: %+v", resp)
	}

	if err := callRPC(t, rpcBestBeat, `{"pool":["3S","4S","5S","6S","7S","KS"],"target":["10H"],"evaluator":"standard"}`, &resp); err != nil {
		t.Fatalf("rpcBestBeat: %v", err)
	}
	if !resp.Found || resp.Hand.Type != "solo" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestRpcBid(t *testing.T) {
	var resp BidResponse
	payload := `{"cards":["r","R","2S","2H","2D","2C"]}`
	if err := callRPC(t, rpcBid, payload, &resp); err != nil {
		t.Fatalf("rpcBid: %v", err)
	}
	if resp.Bid != domain.MaxBid {
		t.Fatalf("bid = %d, want %d", resp.Bid, domain.MaxBid)
	}

	if err := callRPC(t, rpcBid, `{"cards":["r","R","2S","2H","2D","2C"],"current_bid":3}`, &resp); err != nil {
		t.Fatalf("rpcBid: %v", err)
	}
	if resp.Bid != 0 {
		t.Fatalf("bid over 3 = %d, want 0", resp.Bid)
	}

	wantCode(t, callRPC(t, rpcBid, `{"cards":["3S"],"current_bid":4}`, &resp), codeInvalidArgument)
	wantCode(t, callRPC(t, rpcBid, `{"cards":["3S"],"level":"grandmaster"}`, &resp), codeInvalidArgument)
}

func TestRpcSimulate(t *testing.T) {
	var sum app.Summary
	if err := callRPC(t, rpcSimulate, `{"games":3,"workers":2,"seed":5,"level":"standard"}`, &sum); err != nil {
		t.Fatalf("rpcSimulate: %v", err)
	}
	if sum.Games != 3 || sum.LandlordWins+sum.PeasantWins+sum.NoBid != 3 {
		t.Fatalf("summary = %+v", sum)
	}

	wantCode(t, callRPC(t, rpcSimulate, `{"games":1000}`, &sum), codeInvalidArgument)
}

func TestQuickMatchQuery(t *testing.T) {
	want := "+label.open:>=1 +label.game:landlord +label.state:lobby"
	if got := quickMatchQuery(); got != want {
		t.Fatalf("quickMatchQuery() = %q, want %q", got, want)
	}
}
