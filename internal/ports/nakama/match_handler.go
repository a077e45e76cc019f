package nakama

import (
	"context"
	"database/sql"

	"farkle/internal/app"
	"farkle/internal/config"
	"farkle/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	MatchLabelKey_Open = "open" // Key for joinability in the match label
)

// MatchState holds the authoritative runtime state for one hot-seat Farkle table.
// Only the host presence may send actions; players are seat indexes within the game.
type MatchState struct {
	HostUserID        string                      `json:"host_user_id"`
	Tick              int64                       `json:"tick"`
	RollReadyTick     int64                       `json:"roll_ready_tick"`     // Tick when the animating roll completes; 0 when idle
	FarkleAdvanceTick int64                       `json:"farkle_advance_tick"` // Tick when a farkled turn passes on; 0 when idle
	IdleSinceTick     int64                       `json:"idle_since_tick"`     // Tick when the last host session left; -1 while connected
	Presences         map[string]runtime.Presence `json:"-"`                   // Map SessionId -> Presence; the host may hold several sessions
	App               *app.Service                `json:"-"`
	Session           *app.Session                `json:"-"`
	Config            *config.GameConfig          `json:"-"`
	Tokens            *app.HostTokenService       `json:"-"`
	label             string
}

func newMatchState(hostUserID string, cfg *config.GameConfig, svc *app.Service, tokens *app.HostTokenService) *MatchState {
	return &MatchState{
		HostUserID:    hostUserID,
		IdleSinceTick: 0, // idle until the host first joins
		Presences:     make(map[string]runtime.Presence),
		App:           svc,
		Session:       svc.NewSession(cfg.DefaultPlayerCount, cfg.DefaultWinningScore),
		Config:        cfg,
		Tokens:        tokens,
	}
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created. params must name the host user.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	hostUserID, _ := params[paramHost].(string)
	if hostUserID == "" {
		logger.Error("MatchInit: Missing host user id in params.")
		return nil, 0, ""
	}

	cfg := config.GetGameConfig()
	state := newMatchState(hostUserID, cfg, app.NewService(nil), hostTokenService(ctx, logger))

	label, err := computeLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	state.label = label

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 1
	}
	logger.Info("MatchInit: Table created for host %s (tick rate %d).", hostUserID, tickRate)
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if userID != matchState.HostUserID {
		logger.Warn("MatchJoinAttempt: User %s is not the host of this table.", userID)
		return state, false, "only the host can join this table"
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if err := matchState.Tokens.Verify(metadata[MetadataHostToken], userID, matchID); err != nil {
		logger.Warn("MatchJoinAttempt: Rejected host token for %s: %v", userID, err)
		return state, false, "invalid host token"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	matchState.IdleSinceTick = -1
	for _, p := range presences {
		matchState.Presences[p.GetSessionId()] = p
		logger.Debug("MatchJoin: Host %s connected (session %s).", p.GetUserId(), p.GetSessionId())
		mh.sendSnapshot(matchState, dispatcher, logger, []runtime.Presence{p})
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more presences leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetSessionId())
		logger.Debug("MatchLeave: User %s left (session %s).", p.GetUserId(), p.GetSessionId())
	}

	if len(matchState.Presences) == 0 {
		matchState.IdleSinceTick = tick
		logger.Info("MatchLeave: No host session left, table kept for reconnects from tick %d.", tick)
	}

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	if matchState.expired() {
		logger.Info("MatchLoop: Terminating table of %s, no host reconnected.", matchState.HostUserID)
		return nil
	}

	for _, msg := range messages {
		senderID := msg.GetUserId()
		if senderID != matchState.HostUserID {
			logger.Warn("MatchLoop: Ignoring opcode %d from non-host %s.", msg.GetOpCode(), senderID)
			continue
		}

		switch msg.GetOpCode() {
		case OpConfigure:
			mh.handleConfigure(matchState, dispatcher, logger, senderID, msg.GetData())
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, senderID)
		case OpRoll:
			mh.handleRoll(matchState, dispatcher, logger, senderID)
		case OpToggleHold:
			mh.handleToggleHold(matchState, dispatcher, logger, senderID, msg.GetData())
		case OpBankScore:
			mh.handleBank(matchState, dispatcher, logger, senderID)
		case OpEndTurn:
			mh.handleEndTurn(matchState, dispatcher, logger, senderID)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processTimers(matchState, dispatcher, logger)

	return matchState
}

// expired reports whether the table has had no host session for the whole reconnect grace.
func (s *MatchState) expired() bool {
	if s.IdleSinceTick < 0 || len(s.Presences) > 0 {
		return false
	}
	return s.Tick-s.IdleSinceTick >= s.Config.Ticks(s.Config.ReconnectGrace())
}

// sessionsOf lists the connected sessions of a user.
func (s *MatchState) sessionsOf(userID string) []runtime.Presence {
	var out []runtime.Presence
	for _, p := range s.Presences {
		if p.GetUserId() == userID {
			out = append(out, p)
		}
	}
	return out
}

// processTimers completes animating rolls and passes farkled turns once their tick arrives.
func (mh *matchHandler) processTimers(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.RollReadyTick > 0 && state.Tick >= state.RollReadyTick {
		state.RollReadyTick = 0

		events, err := state.App.CompleteRoll(state.Session)
		if err != nil {
			logger.Error("processTimers: Failed to complete roll: %v", err)
			return
		}
		if state.Session.Game.Turn.Farkled {
			state.FarkleAdvanceTick = state.Tick + state.Config.Ticks(state.Config.FarkleDelay())
			logger.Debug("processTimers: Farkle, turn passes at tick %d (current %d).", state.FarkleAdvanceTick, state.Tick)
		}
		mh.publish(state, dispatcher, logger, events)
	}

	if state.FarkleAdvanceTick > 0 && state.Tick >= state.FarkleAdvanceTick {
		state.FarkleAdvanceTick = 0

		events, err := state.App.AdvanceAfterFarkle(state.Session)
		if err != nil {
			logger.Warn("processTimers: Farkle advance skipped: %v", err)
			return
		}
		mh.publish(state, dispatcher, logger, events)
	}
}

func (mh *matchHandler) handleConfigure(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	request, err := decodeRequest(data)
	if err != nil {
		logger.Warn("handleConfigure: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCodeBadInput, "invalid configure request")
		return
	}

	game := state.Session.Game
	playerCount, ok := intField(request, "player_count")
	if !ok {
		playerCount = game.PlayerCount
	}
	winningScore, ok := intField(request, "winning_score")
	if !ok {
		winningScore = game.WinningScore
	}

	events, err := state.App.Configure(state.Session, playerCount, winningScore)
	mh.finish(state, dispatcher, logger, "handleConfigure", senderID, events, err)
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	events, err := state.App.StartGame(state.Session)
	if err == nil {
		state.RollReadyTick = 0
		state.FarkleAdvanceTick = 0
		logger.Info("StartGame: Game %s started with %d players.", state.Session.GameID, state.Session.Game.PlayerCount)
	}
	mh.finish(state, dispatcher, logger, "StartGame", senderID, events, err)
}

func (mh *matchHandler) handleRoll(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	events, err := state.App.BeginRoll(state.Session)
	if err == nil {
		state.RollReadyTick = state.Tick + state.Config.Ticks(state.Config.RollAnimation())
	}
	mh.finish(state, dispatcher, logger, "handleRoll", senderID, events, err)
}

func (mh *matchHandler) handleToggleHold(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	request, err := decodeRequest(data)
	if err != nil {
		logger.Warn("handleToggleHold: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCodeBadInput, "invalid toggle request")
		return
	}
	index, ok := intField(request, "index")
	if !ok {
		mh.sendError(state, dispatcher, logger, senderID, errorCodeBadInput, "index is required")
		return
	}

	events, err := state.App.ToggleHold(state.Session, index)
	mh.finish(state, dispatcher, logger, "handleToggleHold", senderID, events, err)
}

func (mh *matchHandler) handleBank(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	events, err := state.App.Bank(state.Session)
	mh.finish(state, dispatcher, logger, "handleBank", senderID, events, err)
}

func (mh *matchHandler) handleEndTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	events, err := state.App.EndTurn(state.Session)
	mh.finish(state, dispatcher, logger, "handleEndTurn", senderID, events, err)
}

// finish reports a rule violation to the sender or publishes the resulting events.
func (mh *matchHandler) finish(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, handler, senderID string, events []app.Event, err error) {
	if err != nil {
		logger.Warn("%s: User %s action rejected: %v", handler, senderID, err)
		code := errorCodeRule
		if !domain.IsRuleViolation(err) {
			code = errorCodeForbidden
		}
		mh.sendError(state, dispatcher, logger, senderID, code, err.Error())
		return
	}
	mh.publish(state, dispatcher, logger, events)
}

// publish broadcasts events followed by a fresh snapshot and label.
func (mh *matchHandler) publish(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.sendSnapshot(state, dispatcher, logger, nil)
	mh.updateLabel(state, dispatcher, logger)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, payload, err := eventToProto(ev)
	if err != nil {
		logger.Error("Failed to convert event %v: %v", ev.Kind, err)
		return
	}
	bytes, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			recipients = append(recipients, state.sessionsOf(uid)...)
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, recipients []runtime.Presence) {
	snapshot, err := snapshotToProto(state.Session.GameID, state.Session.Game.Snapshot())
	if err != nil {
		logger.Error("Failed to build snapshot: %v", err)
		return
	}
	bytes, err := proto.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStateSnapshot, bytes, recipients, nil, true)
}

// sendError sends a game_error message to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload, err := structpb.NewStruct(map[string]interface{}{
		"code":    code,
		"message": message,
	})
	if err != nil {
		logger.Error("Failed to build game_error: %v", err)
		return
	}
	bytes, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal game_error: %v", err)
		return
	}

	sessions := state.sessionsOf(userID)
	if len(sessions) == 0 {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, sessions, nil, true)
}

func computeLabel(state *MatchState) (string, error) {
	payload := domain.ComputeLabel(state.Session.Game)
	label, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKey_Open: payload.Open,
		"game":             payload.Game,
		"phase":            payload.Phase,
		paramHost:          state.HostUserID,
	})
	if err != nil {
		return "", err
	}
	labelBytes, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(labelBytes), nil
}

// updateLabel pushes the label only when it changed.
func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := computeLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if label == state.label {
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
		return
	}
	state.label = label
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		logger.Info("MatchTerminate: Table of %s closing in %ds (game %s).", matchState.HostUserID, graceSeconds, matchState.Session.GameID)
	}
	return state
}

// MatchSignal answers "snapshot" with the current table state as JSON.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok || data != signalSnapshot {
		return state, ""
	}

	snapshot, err := snapshotToProto(matchState.Session.GameID, matchState.Session.Game.Snapshot())
	if err != nil {
		logger.Error("MatchSignal: Failed to build snapshot: %v", err)
		return state, ""
	}
	b, err := protojson.Marshal(snapshot)
	if err != nil {
		logger.Error("MatchSignal: Failed to marshal snapshot: %v", err)
		return state, ""
	}
	return state, string(b)
}
