package domain

// LabelPayload holds the values advertised in the match label.
type LabelPayload struct {
	Open  bool
	Game  string
	Phase string
}

// ComputeLabel derives the advertised label from game state.
// A session stays open to its host until a winner is decided.
func ComputeLabel(g *Game) LabelPayload {
	return LabelPayload{Open: g.Phase != PhaseEnded, Game: "farkle", Phase: string(g.Phase)}
}
