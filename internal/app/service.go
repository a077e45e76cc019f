package app

import (
	"time"

	"github.com/google/uuid"

	"farkle/internal/domain"
)

// Session is one hot-seat Farkle table.
type Session struct {
	// GameID is stamped on every started game; empty until the first start.
	GameID string
	Game   *domain.Game
}

// Service contains Farkle use-cases operating on domain state.
type Service struct {
	rng domain.Source
}

// NewService constructs a Service with the provided dice source or a randomly seeded default.
func NewService(rng domain.Source) *Service {
	if rng == nil {
		seed, err := domain.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		rng = domain.NewSource(seed)
	}
	return &Service{rng: rng}
}

// NewSession creates a table in setup with the given settings.
func (s *Service) NewSession(playerCount, winningScore int) *Session {
	return &Session{Game: domain.NewGame(playerCount, winningScore)}
}

// Configure changes player count and winning score before a game starts.
func (s *Service) Configure(sess *Session, playerCount, winningScore int) ([]Event, error) {
	if err := sess.Game.Configure(playerCount, winningScore); err != nil {
		return nil, err
	}
	g := sess.Game
	return []Event{{
		Kind: EventGameConfigured,
		Payload: GameConfiguredPayload{
			PlayerCount:  g.PlayerCount,
			WinningScore: g.WinningScore,
			Status:       g.Status,
		},
	}}, nil
}

// StartGame resets scores and starts a new game under a fresh ID.
func (s *Service) StartGame(sess *Session) ([]Event, error) {
	g := sess.Game
	if g.Phase == domain.PhasePlaying && g.Turn.Rolling {
		return nil, domain.ErrRollInProgress
	}
	g.StartNewGame()
	sess.GameID = uuid.NewString()

	return []Event{{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:        sess.GameID,
			PlayerCount:   g.PlayerCount,
			WinningScore:  g.WinningScore,
			CurrentPlayer: g.Current,
			Status:        g.Status,
		},
	}}, nil
}

// BeginRoll opens the roll animation window.
func (s *Service) BeginRoll(sess *Session) ([]Event, error) {
	if err := sess.Game.BeginRoll(); err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventRollStarted,
		Payload: RollStartedPayload{
			GameID: sess.GameID,
			Player: sess.Game.Current,
			Status: sess.Game.Status,
		},
	}}, nil
}

// CompleteRoll draws the dice of a roll opened by BeginRoll.
func (s *Service) CompleteRoll(sess *Session) ([]Event, error) {
	player := sess.Game.Current
	res, err := sess.Game.CompleteRoll(s.rng)
	if err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventDiceRolled,
		Payload: DiceRolledPayload{GameID: sess.GameID, Player: player, Result: res},
	}}, nil
}

// Roll begins and completes a roll in one step.
func (s *Service) Roll(sess *Session) ([]Event, error) {
	started, err := s.BeginRoll(sess)
	if err != nil {
		return nil, err
	}
	rolled, err := s.CompleteRoll(sess)
	if err != nil {
		return nil, err
	}
	return append(started, rolled...), nil
}

// ToggleHold selects or releases a die.
func (s *Service) ToggleHold(sess *Session, index int) ([]Event, error) {
	res, err := sess.Game.ToggleHold(index)
	if err != nil {
		return nil, err
	}
	return []Event{{
		Kind:    EventHoldChanged,
		Payload: HoldChangedPayload{GameID: sess.GameID, Player: sess.Game.Current, Result: res},
	}}, nil
}

// Bank saves the selected score. Banking that closes the turn also emits the turn outcome.
func (s *Service) Bank(sess *Session) ([]Event, error) {
	player := sess.Game.Current
	res, err := sess.Game.Bank()
	if err != nil {
		return nil, err
	}
	events := []Event{{
		Kind:    EventScoreBanked,
		Payload: ScoreBankedPayload{GameID: sess.GameID, Player: player, Result: res},
	}}
	if res.End != nil {
		events = append(events, s.turnEvents(sess, *res.End, false)...)
	}
	return events, nil
}

// EndTurn keeps the turn score and passes the dice.
func (s *Service) EndTurn(sess *Session) ([]Event, error) {
	res, err := sess.Game.EndTurn()
	if err != nil {
		return nil, err
	}
	return s.turnEvents(sess, res, false), nil
}

// AdvanceAfterFarkle closes a farkled turn.
func (s *Service) AdvanceAfterFarkle(sess *Session) ([]Event, error) {
	res, err := sess.Game.AdvanceAfterFarkle()
	if err != nil {
		return nil, err
	}
	return s.turnEvents(sess, res, true), nil
}

func (s *Service) turnEvents(sess *Session, res domain.EndTurnResult, farkled bool) []Event {
	events := []Event{{
		Kind:    EventTurnEnded,
		Payload: TurnEndedPayload{GameID: sess.GameID, Farkled: farkled, Result: res},
	}}
	if res.GameOver {
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				GameID:       sess.GameID,
				Winner:       res.Winner,
				WinnerScore:  res.PlayerScores[res.Winner],
				PlayerScores: res.PlayerScores,
				Status:       res.Status,
			},
		})
	}
	return events
}
