package domain

// SelectableIndices returns every die slot that appears in at least one option.
func SelectableIndices(options []ScoringOption) HeldMask {
	var m HeldMask
	for _, opt := range options {
		m |= MaskOf(opt.Dice...)
	}
	return m
}

// ResolveSelection applies a click on die slot clicked and returns the new held mask.
//
// Clicking a held die releases only that die, even when it was held as part of a group.
// Clicking an unheld die holds the whole option for grouped kinds, or just the die for
// single 1s and 5s. Clicking a die that is neither held nor part of any option changes
// nothing; ok is false in that case.
func ResolveSelection(clicked int, options []ScoringOption, held HeldMask) (next HeldMask, ok bool) {
	if held.Has(clicked) {
		return held.Without(clicked), true
	}

	opt, found := optionContaining(options, clicked)
	if !found {
		return held, false
	}

	if !opt.Kind.IsGroupSelection() {
		return held.With(clicked), true
	}
	return held | MaskOf(opt.Dice...), true
}

func optionContaining(options []ScoringOption, i int) (ScoringOption, bool) {
	for _, opt := range options {
		if opt.Contains(i) {
			return opt, true
		}
	}
	return ScoringOption{}, false
}
