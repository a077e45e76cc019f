package domain

import "fmt"

const (
	statusReady       = "Ready to start"
	statusGameStarted = "Game started! Player 1's turn"
	statusPlayerTurn  = "Player %d's turn"
	statusWinner      = "Player %d wins with a score of %d!"
	statusConfigured  = "%d players, playing to %d"
)

// Game owns the multi-player state and the current player's turn.
// It is not safe for concurrent use; callers serialize actions.
type Game struct {
	Phase        Phase
	PlayerCount  int
	WinningScore int
	PlayerScores []int
	Current      int
	Winner       int
	Turn         *Turn
	Status       string
}

// NewGame returns a game in setup with the given settings, falling back to defaults
// for values outside the accepted bounds.
func NewGame(playerCount, winningScore int) *Game {
	if validatePlayerCount(playerCount) != nil {
		playerCount = DefaultPlayerCount
	}
	if validateWinningScore(winningScore) != nil {
		winningScore = DefaultWinningScore
	}
	return &Game{
		Phase:        PhaseSetup,
		PlayerCount:  playerCount,
		WinningScore: winningScore,
		PlayerScores: make([]int, playerCount),
		Winner:       NoWinner,
		Turn:         NewTurn(),
		Status:       statusReady,
	}
}

// Configure changes the player count and winning score. It is rejected while a game is in
// progress. Each value is checked on its own; the first invalid one is returned and nothing
// changes. A new player count resets the score table. Configuring a finished game clears it
// back to setup.
func (g *Game) Configure(playerCount, winningScore int) error {
	if g.Phase == PhasePlaying {
		return ErrConfigLocked
	}
	if err := validatePlayerCount(playerCount); err != nil {
		return err
	}
	if err := validateWinningScore(winningScore); err != nil {
		return err
	}

	if g.Phase == PhaseEnded {
		g.Phase = PhaseSetup
		g.Winner = NoWinner
		g.PlayerScores = make([]int, playerCount)
	}
	if playerCount != g.PlayerCount || len(g.PlayerScores) != playerCount {
		g.PlayerScores = make([]int, playerCount)
	}
	g.PlayerCount = playerCount
	g.WinningScore = winningScore
	g.Status = fmt.Sprintf(statusConfigured, playerCount, winningScore)
	return nil
}

// StartNewGame zeroes every score, hands the dice to player 1 and starts play.
func (g *Game) StartNewGame() {
	g.Phase = PhasePlaying
	g.PlayerScores = make([]int, g.PlayerCount)
	g.Current = 0
	g.Winner = NoWinner
	g.Turn.Reset()
	g.Status = statusGameStarted
}

// BeginRoll opens the roll animation window. No dice change until CompleteRoll.
func (g *Game) BeginRoll() error {
	if err := g.checkPlaying(); err != nil {
		return err
	}
	if err := g.Turn.BeginRoll(); err != nil {
		return err
	}
	g.Status = statusRolling
	return nil
}

// CompleteRoll draws the dice for a roll opened by BeginRoll.
func (g *Game) CompleteRoll(src Source) (RollResult, error) {
	if err := g.checkPlaying(); err != nil {
		return RollResult{}, err
	}
	if !g.Turn.Rolling {
		return RollResult{}, ErrRollNotStarted
	}
	res := g.Turn.CompleteRoll(src)
	g.Status = res.Status
	return res, nil
}

// Roll begins and completes a roll in one step.
func (g *Game) Roll(src Source) (RollResult, error) {
	if err := g.BeginRoll(); err != nil {
		return RollResult{}, err
	}
	return g.CompleteRoll(src)
}

// ToggleHold selects or releases die slot i.
func (g *Game) ToggleHold(i int) (HoldResult, error) {
	if err := g.checkPlaying(); err != nil {
		return HoldResult{}, err
	}
	res, err := g.Turn.ToggleHold(i)
	if err != nil {
		return HoldResult{}, err
	}
	g.Status = res.Status
	return res, nil
}

// Bank saves the selected score. When no dice remain and the last roll did not fully
// score, the turn closes immediately and End carries the outcome.
func (g *Game) Bank() (BankResult, error) {
	if err := g.checkPlaying(); err != nil {
		return BankResult{}, err
	}
	res, err := g.Turn.Bank()
	if err != nil {
		return BankResult{}, err
	}
	if res.TurnEnded {
		end := g.finishTurn(g.Turn.Score)
		res.End = &end
		res.Status = end.Status
	}
	g.Status = res.Status
	return res, nil
}

// EndTurn keeps the turn score, adds it to the current player's total and passes the dice.
func (g *Game) EndTurn() (EndTurnResult, error) {
	if err := g.checkPlaying(); err != nil {
		return EndTurnResult{}, err
	}
	switch {
	case g.Turn.Rolling:
		return EndTurnResult{}, ErrRollInProgress
	case g.Turn.Farkled:
		return EndTurnResult{}, ErrFarkled
	case g.Turn.Score <= 0:
		return EndTurnResult{}, ErrNoTurnScore
	}
	return g.finishTurn(g.Turn.Score), nil
}

// AdvanceAfterFarkle closes a farkled turn with zero gain.
func (g *Game) AdvanceAfterFarkle() (EndTurnResult, error) {
	if err := g.checkPlaying(); err != nil {
		return EndTurnResult{}, err
	}
	if !g.Turn.Farkled {
		return EndTurnResult{}, ErrNoFarkle
	}
	return g.finishTurn(0), nil
}

func (g *Game) finishTurn(gained int) EndTurnResult {
	player := g.Current
	g.PlayerScores[player] += gained
	g.Turn.Reset()

	res := EndTurnResult{
		Player: player,
		Gained: gained,
		Winner: NoWinner,
	}

	if gained > 0 && g.PlayerScores[player] >= g.WinningScore {
		g.Phase = PhaseEnded
		g.Winner = player
		res.GameOver = true
		res.Winner = player
		g.Status = fmt.Sprintf(statusWinner, player+1, g.PlayerScores[player])
	} else {
		g.Current = (g.Current + 1) % g.PlayerCount
		g.Status = fmt.Sprintf(statusPlayerTurn, g.Current+1)
	}

	res.PlayerScores = append([]int(nil), g.PlayerScores...)
	res.CurrentPlayer = g.Current
	res.Status = g.Status
	return res
}

func (g *Game) checkPlaying() error {
	switch g.Phase {
	case PhasePlaying:
		return nil
	case PhaseEnded:
		return ErrGameOver
	default:
		return ErrGameNotStarted
	}
}

func validatePlayerCount(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return ErrInvalidPlayerCount
	}
	return nil
}

func validateWinningScore(score int) error {
	if score < MinWinningScore {
		return ErrInvalidWinningScore
	}
	return nil
}
