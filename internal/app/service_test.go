package app

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"farkle/internal/domain"
)

// fixedFaces replays die faces in order, then repeats the last one.
type fixedFaces struct {
	faces []int
	pos   int
}

func (f *fixedFaces) Intn(n int) int {
	face := f.faces[len(f.faces)-1]
	if f.pos < len(f.faces) {
		face = f.faces[f.pos]
		f.pos++
	}
	return (face - 1) % n
}

func kinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestStartGameStampsID(t *testing.T) {
	svc := NewService(domain.NewSource(42))
	sess := svc.NewSession(2, 5000)

	evs, err := svc.StartGame(sess)
	if err != nil {
		t.Fatalf("start game error: %v", err)
	}
	if sess.Game.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %s, want playing", sess.Game.Phase)
	}
	if _, err := uuid.Parse(sess.GameID); err != nil {
		t.Fatalf("game id %q is not a uuid: %v", sess.GameID, err)
	}
	if len(evs) != 1 || evs[0].Kind != EventGameStarted {
		t.Fatalf("events = %v", kinds(evs))
	}
	payload := evs[0].Payload.(GameStartedPayload)
	if payload.GameID != sess.GameID || payload.PlayerCount != 2 || payload.WinningScore != 5000 {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	first := sess.GameID
	if _, err := svc.StartGame(sess); err != nil {
		t.Fatalf("restart error: %v", err)
	}
	if sess.GameID == first {
		t.Fatal("restart must stamp a new game id")
	}
}

func TestConfigureEvents(t *testing.T) {
	svc := NewService(nil)
	sess := svc.NewSession(1, 10000)

	evs, err := svc.Configure(sess, 3, 4000)
	if err != nil {
		t.Fatalf("configure error: %v", err)
	}
	payload := evs[0].Payload.(GameConfiguredPayload)
	if evs[0].Kind != EventGameConfigured || payload.PlayerCount != 3 || payload.WinningScore != 4000 {
		t.Fatalf("unexpected event: %+v", evs[0])
	}

	if _, err := svc.Configure(sess, 9, 4000); !errors.Is(err, domain.ErrInvalidPlayerCount) {
		t.Fatalf("err = %v, want ErrInvalidPlayerCount", err)
	}
}

func TestRollBankAndWin(t *testing.T) {
	svc := NewService(&fixedFaces{faces: []int{1, 1, 1, 2, 3, 4}})
	sess := svc.NewSession(2, 1000)
	if _, err := svc.StartGame(sess); err != nil {
		t.Fatalf("start game error: %v", err)
	}

	evs, err := svc.Roll(sess)
	if err != nil {
		t.Fatalf("roll error: %v", err)
	}
	if got := kinds(evs); len(got) != 2 || got[0] != EventRollStarted || got[1] != EventDiceRolled {
		t.Fatalf("roll events = %v", got)
	}
	rolled := evs[1].Payload.(DiceRolledPayload)
	if rolled.GameID != sess.GameID || len(rolled.Result.Options) != 1 {
		t.Fatalf("unexpected roll payload: %+v", rolled)
	}

	evs, err = svc.ToggleHold(sess, 0)
	if err != nil {
		t.Fatalf("toggle error: %v", err)
	}
	if held := evs[0].Payload.(HoldChangedPayload); held.Result.SelectedScore != 1000 {
		t.Fatalf("selected = %d, want 1000", held.Result.SelectedScore)
	}

	if evs, err = svc.Bank(sess); err != nil || len(evs) != 1 {
		t.Fatalf("bank events = %v, err = %v", kinds(evs), err)
	}

	evs, err = svc.EndTurn(sess)
	if err != nil {
		t.Fatalf("end turn error: %v", err)
	}
	if got := kinds(evs); len(got) != 2 || got[0] != EventTurnEnded || got[1] != EventGameEnded {
		t.Fatalf("end turn events = %v", got)
	}
	ended := evs[1].Payload.(GameEndedPayload)
	if ended.Winner != 0 || ended.WinnerScore != 1000 || ended.Status != "Player 1 wins with a score of 1000!" {
		t.Fatalf("unexpected game end: %+v", ended)
	}
}

func TestFarkleAdvance(t *testing.T) {
	svc := NewService(&fixedFaces{faces: []int{2, 3, 4, 6, 6, 2}})
	sess := svc.NewSession(2, 5000)
	svc.StartGame(sess)

	if _, err := svc.BeginRoll(sess); err != nil {
		t.Fatalf("begin roll error: %v", err)
	}
	evs, err := svc.CompleteRoll(sess)
	if err != nil {
		t.Fatalf("complete roll error: %v", err)
	}
	if !evs[0].Payload.(DiceRolledPayload).Result.Farkled {
		t.Fatal("expected a farkle")
	}

	evs, err = svc.AdvanceAfterFarkle(sess)
	if err != nil {
		t.Fatalf("advance error: %v", err)
	}
	ended := evs[0].Payload.(TurnEndedPayload)
	if !ended.Farkled || ended.Result.CurrentPlayer != 1 || ended.Result.Gained != 0 {
		t.Fatalf("unexpected turn end: %+v", ended)
	}
}

func TestStartGameRejectedWhileRolling(t *testing.T) {
	svc := NewService(domain.NewSource(7))
	sess := svc.NewSession(1, 5000)
	svc.StartGame(sess)
	svc.BeginRoll(sess)

	if _, err := svc.StartGame(sess); !errors.Is(err, domain.ErrRollInProgress) {
		t.Fatalf("err = %v, want ErrRollInProgress", err)
	}
}
