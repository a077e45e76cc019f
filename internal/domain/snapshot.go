package domain

// Snapshot is a read-only copy of the game for rendering.
type Snapshot struct {
	Phase         Phase
	PlayerCount   int
	WinningScore  int
	PlayerScores  []int
	CurrentPlayer int
	Winner        int

	Dice          [NumDice]int
	ActiveDice    int
	Held          []int
	Selectable    []int
	Options       []ScoringOption
	TurnScore     int
	SelectedScore int
	Farkled       bool
	AllScored     bool
	Rolling       bool
	CanRoll       bool

	Status string
}

// Snapshot copies the current state. Mutating the result does not affect the game.
func (g *Game) Snapshot() Snapshot {
	t := g.Turn
	options := make([]ScoringOption, len(t.Options))
	for i, opt := range t.Options {
		opt.Dice = append([]int(nil), opt.Dice...)
		options[i] = opt
	}

	return Snapshot{
		Phase:         g.Phase,
		PlayerCount:   g.PlayerCount,
		WinningScore:  g.WinningScore,
		PlayerScores:  append([]int(nil), g.PlayerScores...),
		CurrentPlayer: g.Current,
		Winner:        g.Winner,
		Dice:          t.Dice.Values,
		ActiveDice:    t.Dice.Active,
		Held:          t.Held.Indices(),
		Selectable:    t.Selectable().Indices(),
		Options:       options,
		TurnScore:     t.Score,
		SelectedScore: t.Selected,
		Farkled:       t.Farkled,
		AllScored:     t.AllScored,
		Rolling:       t.Rolling,
		CanRoll:       g.Phase == PhasePlaying && t.CanRoll(),
		Status:        g.Status,
	}
}
