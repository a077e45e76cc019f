package domain

import (
	"reflect"
	"testing"
)

func TestEvaluate(t *testing.T) {
	type want struct {
		kind   ScoringKind
		value  int
		count  int
		points int
		dice   []int
	}
	tests := []struct {
		name     string
		roll     []int
		expected []want
	}{
		{
			name:     "Straight",
			roll:     []int{3, 1, 2, 6, 5, 4},
			expected: []want{{kind: Straight, count: 6, points: 1500, dice: []int{0, 1, 2, 3, 4, 5}}},
		},
		{
			name:     "Three pairs with ones and fives",
			roll:     []int{1, 5, 3, 1, 5, 3},
			expected: []want{{kind: ThreePairs, count: 6, points: 1500, dice: []int{0, 1, 2, 3, 4, 5}}},
		},
		{
			name:     "Three ones",
			roll:     []int{1, 1, 1, 2, 3, 4},
			expected: []want{{kind: NOfAKind, value: 1, count: 3, points: 1000, dice: []int{0, 1, 2}}},
		},
		{
			name:     "Four ones",
			roll:     []int{1, 2, 1, 3, 1, 1},
			expected: []want{{kind: NOfAKind, value: 1, count: 4, points: 2000, dice: []int{0, 2, 4, 5}}},
		},
		{
			name:     "Five ones",
			roll:     []int{1, 1, 1, 1, 1, 2},
			expected: []want{{kind: NOfAKind, value: 1, count: 5, points: 4000, dice: []int{0, 1, 2, 3, 4}}},
		},
		{
			name:     "Six ones",
			roll:     []int{1, 1, 1, 1, 1, 1},
			expected: []want{{kind: NOfAKind, value: 1, count: 6, points: 8000, dice: []int{0, 1, 2, 3, 4, 5}}},
		},
		{
			name:     "Three fours",
			roll:     []int{4, 4, 2, 4, 3, 6},
			expected: []want{{kind: NOfAKind, value: 4, count: 3, points: 400, dice: []int{0, 1, 3}}},
		},
		{
			name:     "Four fours",
			roll:     []int{4, 4, 4, 4, 2, 6},
			expected: []want{{kind: NOfAKind, value: 4, count: 4, points: 800, dice: []int{0, 1, 2, 3}}},
		},
		{
			name:     "Four of a kind and a pair is not three pairs",
			roll:     []int{2, 2, 3, 2, 2, 3},
			expected: []want{{kind: NOfAKind, value: 2, count: 4, points: 400, dice: []int{0, 1, 3, 4}}},
		},
		{
			name: "Group then singles",
			roll: []int{5, 2, 1, 2, 6, 2},
			expected: []want{
				{kind: NOfAKind, value: 2, count: 3, points: 200, dice: []int{1, 3, 5}},
				{kind: SingleOne, value: 1, count: 1, points: 100, dice: []int{2}},
				{kind: SingleFive, value: 5, count: 1, points: 50, dice: []int{0}},
			},
		},
		{
			name: "Five dice cannot form a straight",
			roll: []int{1, 2, 3, 4, 5},
			expected: []want{
				{kind: SingleOne, value: 1, count: 1, points: 100, dice: []int{0}},
				{kind: SingleFive, value: 5, count: 1, points: 50, dice: []int{4}},
			},
		},
		{
			name: "Two fives",
			roll: []int{5, 5},
			expected: []want{
				{kind: SingleFive, value: 5, count: 2, points: 100, dice: []int{0, 1}},
			},
		},
		{
			name:     "Farkle",
			roll:     []int{2, 3, 4, 6, 6, 2},
			expected: nil,
		},
		{
			name:     "Empty roll",
			roll:     nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := Evaluate(rollOf(tt.roll...))
			if len(options) != len(tt.expected) {
				t.Fatalf("expected %d options, got %d: %+v", len(tt.expected), len(options), options)
			}
			for i, w := range tt.expected {
				got := options[i]
				if got.Kind != w.kind || got.Value != w.value || got.Count != w.count || got.Points != w.points {
					t.Errorf("option %d: got %+v, want %+v", i, got, w)
				}
				if !reflect.DeepEqual(got.Dice, w.dice) {
					t.Errorf("option %d dice: got %v, want %v", i, got.Dice, w.dice)
				}
			}
		})
	}
}

func TestEvaluateUsesRolledIndices(t *testing.T) {
	// Slots 0 and 1 were held; only slots 2..4 were rolled.
	roll := []Die{{Index: 2, Value: 3}, {Index: 3, Value: 3}, {Index: 4, Value: 3}}
	options := Evaluate(roll)
	if len(options) != 1 || !reflect.DeepEqual(options[0].Dice, []int{2, 3, 4}) {
		t.Fatalf("unexpected options: %+v", options)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{name: "Nothing", values: nil, want: 0},
		{name: "Single one", values: []int{1}, want: 100},
		{name: "Two fives", values: []int{5, 5}, want: 100},
		{name: "Non scoring faces", values: []int{2, 3, 4, 6}, want: 0},
		{name: "Straight", values: []int{6, 5, 4, 3, 2, 1}, want: 1500},
		{name: "Three pairs", values: []int{1, 1, 5, 5, 6, 6}, want: 1500},
		{name: "Three ones and a five", values: []int{1, 1, 1, 5}, want: 1050},
		{name: "Five sixes", values: []int{6, 6, 6, 6, 6}, want: 2400},
		{name: "Out of range faces ignored", values: []int{0, 7, 1}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.values); got != tt.want {
				t.Errorf("Score(%v) = %d, want %d", tt.values, got, tt.want)
			}
		})
	}
}

// Every roll of one to six dice: the accumulator over the dice of any option, and over the
// dice of all options together, matches the evaluator's points.
func TestScoreMatchesEvaluate(t *testing.T) {
	for n := 1; n <= NumDice; n++ {
		faces := make([]int, n)
		for i := range faces {
			faces[i] = 1
		}
		for {
			roll := rollOf(faces...)
			options := Evaluate(roll)

			total := 0
			var all []int
			for _, opt := range options {
				values := make([]int, 0, len(opt.Dice))
				for _, idx := range opt.Dice {
					values = append(values, faces[idx])
				}
				if got := Score(values); got != opt.Points {
					t.Fatalf("roll %v option %s: Score = %d, want %d", faces, opt.Label(), got, opt.Points)
				}
				total += opt.Points
				all = append(all, values...)
			}
			if got := Score(all); got != total {
				t.Fatalf("roll %v: Score over all options = %d, want %d", faces, got, total)
			}

			if !nextFaces(faces) {
				break
			}
		}
	}
}

func nextFaces(faces []int) bool {
	for i := range faces {
		if faces[i] < NumSides {
			faces[i]++
			return true
		}
		faces[i] = 1
	}
	return false
}

func TestAllScored(t *testing.T) {
	tests := []struct {
		name string
		roll []int
		want bool
	}{
		{name: "Straight", roll: []int{1, 2, 3, 4, 5, 6}, want: true},
		{name: "Ones and fives", roll: []int{1, 5, 5}, want: true},
		{name: "Triple and single", roll: []int{3, 3, 3, 1}, want: true},
		{name: "Stray die", roll: []int{1, 5, 2}, want: false},
		{name: "Farkle", roll: []int{2, 3, 4, 6, 6, 2}, want: false},
		{name: "Empty", roll: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll := rollOf(tt.roll...)
			if got := AllScored(roll, Evaluate(roll)); got != tt.want {
				t.Errorf("AllScored(%v) = %v, want %v", tt.roll, got, tt.want)
			}
		})
	}
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		opt  ScoringOption
		want string
	}{
		{ScoringOption{Kind: Straight}, "Straight"},
		{ScoringOption{Kind: ThreePairs}, "Three Pairs"},
		{ScoringOption{Kind: NOfAKind, Value: 4, Count: 3}, "3 of 4"},
		{ScoringOption{Kind: SingleOne, Value: 1, Count: 2}, "2 of 1"},
		{ScoringOption{Kind: SingleFive, Value: 5, Count: 1}, "1 of 5"},
	}
	for _, tt := range tests {
		if got := tt.opt.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
