package domain

import "errors"

// Phase represents the lifecycle stage of a Farkle game.
type Phase string

const (
	// PhaseSetup is the pre-game state where player count and target can be changed.
	PhaseSetup Phase = "setup"
	// PhasePlaying is the active game state where dice are rolled and banked.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a player reached the winning score.
	PhaseEnded Phase = "ended"
)

const (
	MinPlayers          = 1
	MaxPlayers          = 6
	MinWinningScore     = 1000
	DefaultPlayerCount  = 1
	DefaultWinningScore = 10000

	// NoWinner marks a game without a winner yet.
	NoWinner = -1
)

// Rule violations. An action that returns one of these left the game unchanged.
var (
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameOver            = errors.New("game is over")
	ErrRollInProgress      = errors.New("dice are still rolling")
	ErrRollNotStarted      = errors.New("no roll in progress")
	ErrMustBankBeforeRoll  = errors.New("you must save a score before rolling again")
	ErrFarkled             = errors.New("turn is lost to a farkle")
	ErrNoFarkle            = errors.New("no farkle pending")
	ErrNotSelectable       = errors.New("die is not part of a scoring combination")
	ErrNothingSelected     = errors.New("no scoring dice selected")
	ErrNoTurnScore         = errors.New("no points to keep this turn")
	ErrConfigLocked        = errors.New("settings can only change before the game starts")
	ErrInvalidPlayerCount  = errors.New("player count must be between 1 and 6")
	ErrInvalidWinningScore = errors.New("winning score must be at least 1000")
)

var ruleViolations = []error{
	ErrGameNotStarted,
	ErrGameOver,
	ErrRollInProgress,
	ErrRollNotStarted,
	ErrMustBankBeforeRoll,
	ErrFarkled,
	ErrNoFarkle,
	ErrNotSelectable,
	ErrNothingSelected,
	ErrNoTurnScore,
	ErrConfigLocked,
	ErrInvalidPlayerCount,
	ErrInvalidWinningScore,
}

// IsRuleViolation reports whether err is a rejected action rather than a fault.
func IsRuleViolation(err error) bool {
	for _, target := range ruleViolations {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// RollResult is the outcome of a completed roll.
type RollResult struct {
	Values    [NumDice]int
	Rolled    []Die // dice drawn by this roll only
	Options   []ScoringOption
	Farkled   bool
	AllScored bool
	Status    string
}

// HoldResult is the outcome of toggling a die.
type HoldResult struct {
	Held          HeldMask
	SelectedScore int
	Status        string
}

// BankResult is the outcome of banking the selected dice.
type BankResult struct {
	TurnScore  int
	ActiveDice int
	Held       HeldMask
	HotDice    bool
	TurnEnded  bool
	End        *EndTurnResult // set when banking ended the turn
	Status     string
}

// EndTurnResult is the outcome of closing a turn.
type EndTurnResult struct {
	Player        int // player whose turn closed
	Gained        int
	PlayerScores  []int
	CurrentPlayer int
	GameOver      bool
	Winner        int // NoWinner unless GameOver
	Status        string
}
