package calc

import "strconv"

// displayValue reads the display as a number, degrading to 0 when the
// display is not a clean numeric literal (e.g. "Error").
func (s State) displayValue() float64 {
	v, err := strconv.ParseFloat(s.Display, 64)
	if err != nil {
		return 0
	}
	return v
}

// MemoryAdd adds the displayed value to the memory register.
func (s State) MemoryAdd() State {
	s.Memory += s.displayValue()
	return s
}

// MemorySubtract subtracts the displayed value from the memory register.
func (s State) MemorySubtract() State {
	s.Memory -= s.displayValue()
	return s
}

// MemoryRecall inserts the memory register as a literal operand,
// regardless of any pending error state.
func (s State) MemoryRecall() State {
	s.HasError = false
	return s.insertValue(s.Memory)
}

// MemoryClear zeroes the memory register.
func (s State) MemoryClear() State {
	s.Memory = 0
	return s
}
