package app

import "farkle/internal/domain"

// EventKind identifies emitted game events for Nakama dispatch.
type EventKind string

const (
	EventGameConfigured EventKind = "game_configured"
	EventGameStarted    EventKind = "game_started"
	EventRollStarted    EventKind = "roll_started"
	EventDiceRolled     EventKind = "dice_rolled"
	EventHoldChanged    EventKind = "hold_changed"
	EventScoreBanked    EventKind = "score_banked"
	EventTurnEnded      EventKind = "turn_ended"
	EventGameEnded      EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameConfiguredPayload struct {
	PlayerCount  int
	WinningScore int
	Status       string
}

type GameStartedPayload struct {
	GameID        string
	PlayerCount   int
	WinningScore  int
	CurrentPlayer int
	Status        string
}

type RollStartedPayload struct {
	GameID string
	Player int
	Status string
}

type DiceRolledPayload struct {
	GameID string
	Player int
	Result domain.RollResult
}

type HoldChangedPayload struct {
	GameID string
	Player int
	Result domain.HoldResult
}

type ScoreBankedPayload struct {
	GameID string
	Player int
	Result domain.BankResult
}

type TurnEndedPayload struct {
	GameID  string
	Farkled bool // turn closed by a farkle with zero gain
	Result  domain.EndTurnResult
}

type GameEndedPayload struct {
	GameID       string
	Winner       int
	WinnerScore  int
	PlayerScores []int
	Status       string
}
