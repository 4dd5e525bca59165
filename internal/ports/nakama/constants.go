package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	RpcClassify    = "landlord_classify"
	RpcAnalyze     = "landlord_analyze"
	RpcSearchBeats = "landlord_search_beats"
	RpcBestBeat    = "landlord_best_beat"
	RpcBid         = "landlord_bid"
	RpcSimulate    = "landlord_simulate"

	// MatchNameLandlord is the authoritative match handler name registered with Nakama.
	MatchNameLandlord = "landlord_match"
)

// Op codes for client messages and server events. Client payloads use the
// wire codec; server events are binary google.protobuf.Struct messages.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlaceBid  int64 = 2 // wire bid
	OpPlayCards int64 = 3 // wire play
	OpPassTurn  int64 = 4

	// Server -> Client events
	OpMatchState     int64 = 100
	OpGameStarted    int64 = 101
	OpHandDealt      int64 = 102 // send privately
	OpBidPlaced      int64 = 103
	OpLandlordChosen int64 = 104
	OpHandPlayed     int64 = 105
	OpTurnPassed     int64 = 106
	OpGameEnded      int64 = 107
	OpGameError      int64 = 108
)

// Match label keys queried by quick match.
const (
	labelKeyOpen  = "open"
	labelKeyState = "state"
	labelKeyGame  = "game"

	labelGame = "landlord"
)

// gRPC status codes returned through runtime.NewError.
const (
	codeInvalidArgument = 3
	codeInternal        = 13
)
