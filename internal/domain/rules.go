package domain

import "fmt"

// ScoringKind represents the type of scoring combination.
type ScoringKind int

const (
	Invalid ScoringKind = iota
	SingleOne
	SingleFive
	NOfAKind   // Three or more dice of the same value
	Straight   // 1 through 6 in a single roll
	ThreePairs // Three distinct pairs in a single roll
)

func (k ScoringKind) String() string {
	switch k {
	case SingleOne:
		return "SingleOne"
	case SingleFive:
		return "SingleFive"
	case NOfAKind:
		return "NOfAKind"
	case Straight:
		return "Straight"
	case ThreePairs:
		return "ThreePairs"
	default:
		return "Invalid"
	}
}

// IsGroupSelection reports whether dice of this kind must be held together.
// Grouped patterns only score as a whole; single 1s and 5s score individually.
func (k ScoringKind) IsGroupSelection() bool {
	switch k {
	case NOfAKind, Straight, ThreePairs:
		return true
	default:
		return false
	}
}

const (
	straightPoints   = 1500
	threePairsPoints = 1500
	singleOnePoints  = 100
	singleFivePoints = 50
)

// ScoringOption is one scoring combination found in a roll.
type ScoringOption struct {
	Kind   ScoringKind
	Value  int   // die face for NOfAKind, SingleOne and SingleFive; 0 otherwise
	Count  int   // number of dice consumed
	Points int
	Dice   []int // die slot indices consumed, ascending
}

// Label is the display name of the option, e.g. "Straight" or "3 of 4".
func (o ScoringOption) Label() string {
	switch o.Kind {
	case Straight:
		return "Straight"
	case ThreePairs:
		return "Three Pairs"
	case NOfAKind, SingleOne, SingleFive:
		return fmt.Sprintf("%d of %d", o.Count, o.Value)
	default:
		return "Invalid"
	}
}

// Contains reports whether the option consumes die slot i.
func (o ScoringOption) Contains(i int) bool {
	for _, idx := range o.Dice {
		if idx == i {
			return true
		}
	}
	return false
}

// Evaluate lists every scoring option in a freshly rolled set of dice.
// Straight and three pairs are whole-roll patterns: when one matches it is the only option.
// Otherwise it returns N-of-a-kind groups in face order followed by single 1s and 5s.
// An empty roll yields no options.
func Evaluate(roll []Die) []ScoringOption {
	if len(roll) == 0 {
		return nil
	}

	counts := countFaces(roll)
	if len(roll) == NumDice {
		if isStraight(counts) {
			return []ScoringOption{{Kind: Straight, Count: NumDice, Points: straightPoints, Dice: indicesOf(roll)}}
		}
		if isThreePairs(counts) {
			return []ScoringOption{{Kind: ThreePairs, Count: NumDice, Points: threePairsPoints, Dice: indicesOf(roll)}}
		}
	}

	var options []ScoringOption
	for face := 1; face <= NumSides; face++ {
		if counts[face] >= 3 {
			options = append(options, ScoringOption{
				Kind:   NOfAKind,
				Value:  face,
				Count:  counts[face],
				Points: nOfAKindPoints(face, counts[face]),
				Dice:   indicesWithFace(roll, face),
			})
		}
	}

	if n := counts[1]; n > 0 && n < 3 {
		options = append(options, ScoringOption{
			Kind:   SingleOne,
			Value:  1,
			Count:  n,
			Points: singleOnePoints * n,
			Dice:   indicesWithFace(roll, 1),
		})
	}
	if n := counts[5]; n > 0 && n < 3 {
		options = append(options, ScoringOption{
			Kind:   SingleFive,
			Value:  5,
			Count:  n,
			Points: singleFivePoints * n,
			Dice:   indicesWithFace(roll, 5),
		})
	}

	return options
}

// Score computes the point value of a set of held die faces, independent of which
// options were offered. Faces outside 1..6 are ignored.
func Score(values []int) int {
	var counts [NumSides + 1]int
	n := 0
	for _, v := range values {
		if v < 1 || v > NumSides {
			continue
		}
		counts[v]++
		n++
	}

	if n == NumDice {
		if isStraight(counts) {
			return straightPoints
		}
		if isThreePairs(counts) {
			return threePairsPoints
		}
	}

	total := 0
	for face := 1; face <= NumSides; face++ {
		switch c := counts[face]; {
		case c >= 3:
			total += nOfAKindPoints(face, c)
		case face == 1:
			total += singleOnePoints * c
		case face == 5:
			total += singleFivePoints * c
		}
	}
	return total
}

// AllScored reports whether every die in the roll is consumed by some option.
func AllScored(roll []Die, options []ScoringOption) bool {
	if len(roll) == 0 {
		return false
	}
	covered := SelectableIndices(options)
	for _, d := range roll {
		if !covered.Has(d.Index) {
			return false
		}
	}
	return true
}

// nOfAKindPoints doubles the three-of-a-kind base for every die past the third.
func nOfAKindPoints(face, count int) int {
	base := face * 100
	if face == 1 {
		base = 1000
	}
	return base << uint(count-3)
}

func countFaces(roll []Die) [NumSides + 1]int {
	var counts [NumSides + 1]int
	for _, d := range roll {
		if d.Value >= 1 && d.Value <= NumSides {
			counts[d.Value]++
		}
	}
	return counts
}

func isStraight(counts [NumSides + 1]int) bool {
	for face := 1; face <= NumSides; face++ {
		if counts[face] != 1 {
			return false
		}
	}
	return true
}

func isThreePairs(counts [NumSides + 1]int) bool {
	pairs := 0
	for face := 1; face <= NumSides; face++ {
		switch counts[face] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 3
}

func indicesOf(roll []Die) []int {
	out := make([]int, 0, len(roll))
	for _, d := range roll {
		out = append(out, d.Index)
	}
	return out
}

func indicesWithFace(roll []Die, face int) []int {
	var out []int
	for _, d := range roll {
		if d.Value == face {
			out = append(out, d.Index)
		}
	}
	return out
}
