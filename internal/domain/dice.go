package domain

import "math/bits"

// NumDice is the number of die slots on the table.
const NumDice = 6

// NumSides is the number of faces on each die.
const NumSides = 6

// Die is a single die slot. Value 0 means unrolled or removed from play.
type Die struct {
	Index int
	Value int
}

// DiceSet is the fixed row of six die slots. Only the first Active slots are in play.
type DiceSet struct {
	Values [NumDice]int
	Active int
}

// NewDiceSet returns a fresh set with all six slots active and unrolled.
func NewDiceSet() DiceSet {
	return DiceSet{Active: NumDice}
}

// Compact removes the held slots from play, shifting the remaining active dice to the
// front and zeroing the slots that fall out of play.
func (d *DiceSet) Compact(held HeldMask) {
	next := 0
	for i := 0; i < d.Active; i++ {
		if held.Has(i) {
			continue
		}
		d.Values[next] = d.Values[i]
		next++
	}
	for i := next; i < NumDice; i++ {
		d.Values[i] = 0
	}
	d.Active = next
}

// Clear resets every slot to unrolled and makes all six dice active again.
func (d *DiceSet) Clear() {
	d.Values = [NumDice]int{}
	d.Active = NumDice
}

// HeldMask is the set of die slots selected for banking, one bit per slot.
type HeldMask uint8

// Has reports whether slot i is held.
func (m HeldMask) Has(i int) bool {
	if i < 0 || i >= NumDice {
		return false
	}
	return m&(1<<uint(i)) != 0
}

// With returns the mask with slot i held.
func (m HeldMask) With(i int) HeldMask {
	if i < 0 || i >= NumDice {
		return m
	}
	return m | 1<<uint(i)
}

// Without returns the mask with slot i released.
func (m HeldMask) Without(i int) HeldMask {
	if i < 0 || i >= NumDice {
		return m
	}
	return m &^ (1 << uint(i))
}

// Len returns the number of held slots.
func (m HeldMask) Len() int {
	return bits.OnesCount8(uint8(m))
}

// CountBelow returns how many held slots have an index lower than n.
func (m HeldMask) CountBelow(n int) int {
	count := 0
	for i := 0; i < n && i < NumDice; i++ {
		if m.Has(i) {
			count++
		}
	}
	return count
}

// Indices lists the held slots in ascending order.
func (m HeldMask) Indices() []int {
	out := make([]int, 0, m.Len())
	for i := 0; i < NumDice; i++ {
		if m.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// MaskOf builds a mask from slot indices, ignoring anything out of range.
func MaskOf(indices ...int) HeldMask {
	var m HeldMask
	for _, i := range indices {
		m = m.With(i)
	}
	return m
}
