package nakama

import (
	"fmt"

	"farkle/internal/app"
	"farkle/internal/domain"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// decodeRequest parses a client payload. An empty payload is an empty request.
func decodeRequest(data []byte) (*structpb.Struct, error) {
	req := &structpb.Struct{}
	if len(data) == 0 {
		return req, nil
	}
	if err := proto.Unmarshal(data, req); err != nil {
		return nil, err
	}
	return req, nil
}

// intField reads a whole number from a request field.
func intField(req *structpb.Struct, key string) (int, bool) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	i := int(n.NumberValue)
	if float64(i) != n.NumberValue {
		return 0, false
	}
	return i, true
}

func intList(xs []int) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func diceList(values [domain.NumDice]int) []interface{} {
	return intList(values[:])
}

func optionsList(options []domain.ScoringOption) []interface{} {
	out := make([]interface{}, 0, len(options))
	for _, opt := range options {
		out = append(out, map[string]interface{}{
			"kind":   opt.Kind.String(),
			"label":  opt.Label(),
			"value":  opt.Value,
			"count":  opt.Count,
			"points": opt.Points,
			"dice":   intList(opt.Dice),
		})
	}
	return out
}

func endTurnFields(res domain.EndTurnResult) map[string]interface{} {
	return map[string]interface{}{
		"player":         res.Player,
		"gained":         res.Gained,
		"player_scores":  intList(res.PlayerScores),
		"current_player": res.CurrentPlayer,
		"game_over":      res.GameOver,
		"winner":         res.Winner,
		"status":         res.Status,
	}
}

func snapshotToProto(gameID string, snap domain.Snapshot) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"game_id":        gameID,
		"phase":          string(snap.Phase),
		"player_count":   snap.PlayerCount,
		"winning_score":  snap.WinningScore,
		"player_scores":  intList(snap.PlayerScores),
		"current_player": snap.CurrentPlayer,
		"winner":         snap.Winner,
		"dice":           diceList(snap.Dice),
		"active_dice":    snap.ActiveDice,
		"held":           intList(snap.Held),
		"selectable":     intList(snap.Selectable),
		"options":        optionsList(snap.Options),
		"turn_score":     snap.TurnScore,
		"selected_score": snap.SelectedScore,
		"farkled":        snap.Farkled,
		"all_scored":     snap.AllScored,
		"rolling":        snap.Rolling,
		"can_roll":       snap.CanRoll,
		"status":         snap.Status,
	})
}

// eventToProto maps an app event to its op code and wire message.
func eventToProto(ev app.Event) (int64, *structpb.Struct, error) {
	var (
		opCode int64
		fields map[string]interface{}
	)

	switch p := ev.Payload.(type) {
	case app.GameConfiguredPayload:
		opCode = OpGameConfigured
		fields = map[string]interface{}{
			"player_count":  p.PlayerCount,
			"winning_score": p.WinningScore,
			"status":        p.Status,
		}
	case app.GameStartedPayload:
		opCode = OpGameStarted
		fields = map[string]interface{}{
			"game_id":        p.GameID,
			"player_count":   p.PlayerCount,
			"winning_score":  p.WinningScore,
			"current_player": p.CurrentPlayer,
			"status":         p.Status,
		}
	case app.RollStartedPayload:
		opCode = OpRollStarted
		fields = map[string]interface{}{
			"game_id": p.GameID,
			"player":  p.Player,
			"status":  p.Status,
		}
	case app.DiceRolledPayload:
		opCode = OpDiceRolled
		rolled := make([]int, len(p.Result.Rolled))
		for i, d := range p.Result.Rolled {
			rolled[i] = d.Index
		}
		fields = map[string]interface{}{
			"game_id":    p.GameID,
			"player":     p.Player,
			"dice":       diceList(p.Result.Values),
			"rolled":     intList(rolled),
			"options":    optionsList(p.Result.Options),
			"farkled":    p.Result.Farkled,
			"all_scored": p.Result.AllScored,
			"status":     p.Result.Status,
		}
	case app.HoldChangedPayload:
		opCode = OpHoldChanged
		fields = map[string]interface{}{
			"game_id":        p.GameID,
			"player":         p.Player,
			"held":           intList(p.Result.Held.Indices()),
			"selected_score": p.Result.SelectedScore,
			"status":         p.Result.Status,
		}
	case app.ScoreBankedPayload:
		opCode = OpScoreBanked
		fields = map[string]interface{}{
			"game_id":     p.GameID,
			"player":      p.Player,
			"turn_score":  p.Result.TurnScore,
			"active_dice": p.Result.ActiveDice,
			"held":        intList(p.Result.Held.Indices()),
			"hot_dice":    p.Result.HotDice,
			"turn_ended":  p.Result.TurnEnded,
			"status":      p.Result.Status,
		}
	case app.TurnEndedPayload:
		opCode = OpTurnEnded
		fields = endTurnFields(p.Result)
		fields["game_id"] = p.GameID
		fields["farkled"] = p.Farkled
	case app.GameEndedPayload:
		opCode = OpGameEnded
		fields = map[string]interface{}{
			"game_id":       p.GameID,
			"winner":        p.Winner,
			"winner_score":  p.WinnerScore,
			"player_scores": intList(p.PlayerScores),
			"status":        p.Status,
		}
	default:
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s message: %w", ev.Kind, err)
	}
	return opCode, msg, nil
}
