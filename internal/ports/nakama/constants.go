package nakama

const (
	// RpcCreateMatch is the Nakama RPC id clients call to open a new Farkle table they host.
	RpcCreateMatch = "farkle_create_match"

	// RpcResumeMatch finds an open table hosted by the caller and issues a fresh host token.
	RpcResumeMatch = "farkle_resume_match"

	// MatchNameFarkle is the authoritative match handler name registered with Nakama.
	MatchNameFarkle = "farkle_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpConfigure  int64 = 1
	OpStartGame  int64 = 2
	OpRoll       int64 = 3
	OpToggleHold int64 = 4
	OpBankScore  int64 = 5
	OpEndTurn    int64 = 6

	// Server -> Client events
	OpStateSnapshot  int64 = 100
	OpGameStarted    int64 = 101
	OpRollStarted    int64 = 102
	OpDiceRolled     int64 = 103
	OpHoldChanged    int64 = 104
	OpScoreBanked    int64 = 105
	OpTurnEnded      int64 = 106
	OpGameEnded      int64 = 107
	OpGameError      int64 = 108
	OpGameConfigured int64 = 109
)

// Runtime env keys.
const (
	envHostTokenSecret = "farkle_host_token_secret"
	envHostTokenIssuer = "farkle_host_token_issuer"
	envConfigPath      = "farkle_config_path"

	defaultHostTokenIssuer = "farkle"
	devHostTokenSecret     = "farkle-dev-secret"
)

const (
	// MetadataHostToken is the join metadata key carrying the host token.
	MetadataHostToken = "host_token"

	paramHost = "host"

	// signalSnapshot is the MatchSignal payload that asks for the table state.
	signalSnapshot = "snapshot"

	errorCodeRule      = 400
	errorCodeForbidden = 403
	errorCodeBadInput  = 422
)
