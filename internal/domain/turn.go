package domain

import "fmt"

const (
	statusSelectDice     = "Select dice to keep"
	statusAllCanScore    = "All dice can score! Select dice to keep"
	statusFarkle         = "Farkle! You lost all points for this turn"
	statusScoreSaved     = "Score saved, roll remaining dice"
	statusHotDice        = "All dice can score! You can roll all dice again"
	statusRolling        = "Rolling..."
	statusSelectionScore = "Selected dice are worth %d points"
)

// Turn is the mutable state of the current player's turn.
type Turn struct {
	Dice          DiceSet
	Held          HeldMask
	Score         int // points banked this turn
	Selected      int // value of the currently held dice
	Options       []ScoringOption
	LastRoll      []Die // dice drawn by the latest roll
	AllScored     bool  // every die of LastRoll is covered by an option
	Farkled       bool
	SavedThisRoll bool // a score was banked since the latest roll
	HasRolled     bool
	Rolling       bool
}

// NewTurn returns a turn ready for its first roll.
func NewTurn() *Turn {
	t := &Turn{}
	t.Reset()
	return t
}

// Reset clears the turn back to six unrolled dice.
func (t *Turn) Reset() {
	*t = Turn{Dice: NewDiceSet()}
}

// CanRoll reports whether a roll would currently be accepted.
func (t *Turn) CanRoll() bool {
	return t.checkRoll() == nil
}

func (t *Turn) checkRoll() error {
	switch {
	case t.Rolling:
		return ErrRollInProgress
	case t.Farkled:
		return ErrFarkled
	case t.HasRolled && !t.SavedThisRoll:
		return ErrMustBankBeforeRoll
	}
	return nil
}

// BeginRoll starts a roll. The dice are drawn by CompleteRoll.
func (t *Turn) BeginRoll() error {
	if err := t.checkRoll(); err != nil {
		return err
	}
	t.Rolling = true
	return nil
}

// CompleteRoll draws a face for every active, unheld slot and evaluates the new dice.
// An empty roll never counts as a farkle.
func (t *Turn) CompleteRoll(src Source) RollResult {
	t.Rolling = false
	t.HasRolled = true
	t.SavedThisRoll = false

	rolled := make([]Die, 0, t.Dice.Active)
	for i := 0; i < t.Dice.Active; i++ {
		if t.Held.Has(i) {
			continue
		}
		t.Dice.Values[i] = rollDie(src)
		rolled = append(rolled, Die{Index: i, Value: t.Dice.Values[i]})
	}

	t.LastRoll = rolled
	t.Options = Evaluate(rolled)
	t.AllScored = AllScored(rolled, t.Options)

	status := statusSelectDice
	if len(t.Options) == 0 && len(rolled) > 0 {
		t.Farkled = true
		t.Score = 0
		t.Selected = 0
		status = statusFarkle
	} else if t.AllScored {
		status = statusAllCanScore
	}

	return RollResult{
		Values:    t.Dice.Values,
		Rolled:    rolled,
		Options:   t.Options,
		Farkled:   t.Farkled,
		AllScored: t.AllScored,
		Status:    status,
	}
}

// ToggleHold holds or releases die slot i and recomputes the selected score.
func (t *Turn) ToggleHold(i int) (HoldResult, error) {
	if t.Rolling {
		return HoldResult{}, ErrRollInProgress
	}
	if t.Farkled {
		return HoldResult{}, ErrFarkled
	}
	if i < 0 || i >= t.Dice.Active {
		return HoldResult{}, ErrNotSelectable
	}

	held, ok := ResolveSelection(i, t.Options, t.Held)
	if !ok {
		return HoldResult{}, ErrNotSelectable
	}
	t.Held = held
	t.Selected = Score(t.HeldValues())

	return HoldResult{
		Held:          t.Held,
		SelectedScore: t.Selected,
		Status:        selectionStatus(t.Selected),
	}, nil
}

// HeldValues returns the faces of the held active dice.
func (t *Turn) HeldValues() []int {
	values := make([]int, 0, t.Held.Len())
	for i := 0; i < t.Dice.Active; i++ {
		if t.Held.Has(i) {
			values = append(values, t.Dice.Values[i])
		}
	}
	return values
}

// Bank moves the selected score into the turn score and takes the held dice out of play.
// When no dice remain and the whole last roll scored, all six dice come back (hot dice).
// When no dice remain otherwise, TurnEnded is set and the caller must close the turn.
func (t *Turn) Bank() (BankResult, error) {
	if t.Rolling {
		return BankResult{}, ErrRollInProgress
	}
	if t.Farkled {
		return BankResult{}, ErrFarkled
	}
	if t.Selected <= 0 {
		return BankResult{}, ErrNothingSelected
	}

	t.Score += t.Selected
	t.Selected = 0
	t.SavedThisRoll = true

	res := BankResult{}
	remaining := t.Dice.Active - t.Held.CountBelow(t.Dice.Active)
	switch {
	case remaining == 0 && t.AllScored:
		t.Dice.Clear()
		t.Held = 0
		res.HotDice = true
		res.Status = statusHotDice
	case remaining == 0:
		res.TurnEnded = true
	default:
		t.Dice.Compact(t.Held)
		t.Held = 0
		res.Status = statusScoreSaved
	}

	t.Options = nil
	t.LastRoll = nil
	t.AllScored = false

	res.TurnScore = t.Score
	res.ActiveDice = t.Dice.Active
	res.Held = t.Held
	return res, nil
}

// Selectable returns the slots the player may click: option dice plus held dice.
func (t *Turn) Selectable() HeldMask {
	return SelectableIndices(t.Options) | t.Held
}

func selectionStatus(score int) string {
	if score == 0 {
		return statusSelectDice
	}
	return fmt.Sprintf(statusSelectionScore, score)
}
