package calc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// functionFragments maps a function key to the expression fragment it
// appends. Fragments ending in "(" open a call and put the state into
// waiting-for-operand; the postfix fragments ("^2", "^3", "!", "/100")
// and the bare power operator do not.
var functionFragments = map[string]string{
	"sin":       "sin(",
	"cos":       "cos(",
	"tan":       "tan(",
	"asin":      "asin(",
	"acos":      "acos(",
	"atan":      "atan(",
	"ln":        "log(",
	"log":       "log10(",
	"sqrt":      "sqrt(",
	"cbrt":      "cbrt(",
	"square":    "^2",
	"cube":      "^3",
	"pow":       "^",
	"exp":       "exp(",
	"pow10":     "10^(",
	"inv":       "1/(",
	"factorial": "!",
	"percent":   "/100",
	"nthroot":   "nthRoot(",
}

// IsFunctionKey reports whether name is a known function key.
func IsFunctionKey(name string) bool {
	_, ok := functionFragments[name]
	return ok
}

// canonicalOperator translates display glyphs to evaluator tokens.
// Parentheses and already-canonical operators pass through.
func canonicalOperator(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	case "−":
		return "-"
	default:
		return op
	}
}

// InsertDigit appends a digit. A fresh operand (waiting flag, display
// "0", or error recovery) replaces the display; otherwise the digit
// extends the current token.
func (s State) InsertDigit(d string) State {
	if s.WaitingForOperand || s.Display == "0" || s.HasError {
		s.Display = d
	} else {
		s.Display += d
	}
	s.Expression += d
	s.WaitingForOperand = false
	s.HasError = false
	return s
}

// InsertOperator appends a binary operator or parenthesis token.
// Operators put the state into waiting-for-operand; parentheses do not.
// No validation of the preceding token is done here: a malformed stream
// surfaces as an evaluation failure later.
func (s State) InsertOperator(op string) State {
	s = s.clearError()
	tok := canonicalOperator(op)
	s.Expression += tok
	if tok != "(" && tok != ")" {
		s.WaitingForOperand = true
	}
	return s
}

// InsertDecimal starts "0." for a fresh operand, extends the current
// token with "." when it has none yet, and is silently ignored when the
// token already carries a decimal point.
func (s State) InsertDecimal() State {
	if s.WaitingForOperand || s.HasError {
		s.Display = "0."
		s.Expression += "0."
		s.WaitingForOperand = false
		s.HasError = false
		return s
	}
	if strings.Contains(s.Display, ".") {
		return s
	}
	s.Display += "."
	s.Expression += "."
	return s
}

// InsertConstant inserts π or e. The display shows the numeric literal
// for immediate feedback; the expression keeps the symbolic token, which
// the evaluation pipeline substitutes later.
func (s State) InsertConstant(name string) State {
	var lit string
	switch name {
	case "π":
		lit = piLiteral
	case "e":
		lit = eLiteral
	default:
		return s
	}
	s.Display = lit
	s.Expression += name
	s.WaitingForOperand = false
	s.HasError = false
	return s
}

// InsertAnswer inserts the previous answer as a literal operand.
func (s State) InsertAnswer() State {
	return s.insertValue(s.PreviousAnswer)
}

// InsertRandom inserts an externally drawn uniform [0,1) value as a
// literal operand. The caller owns the randomness source.
func (s State) InsertRandom(v float64) State {
	return s.insertValue(v)
}

// insertValue writes the same plain decimal token to both display and
// expression. The token never uses exponent form so the expression stays
// parseable by the evaluator.
func (s State) insertValue(v float64) State {
	tok := strconv.FormatFloat(v, 'f', -1, 64)
	s.Display = tok
	s.Expression += tok
	s.WaitingForOperand = false
	s.HasError = false
	return s
}

// ApplyFunction appends the fragment for a function key. Unknown keys
// leave the state untouched.
func (s State) ApplyFunction(name string) State {
	frag, ok := functionFragments[name]
	if !ok {
		return s
	}
	s = s.clearError()
	s.Expression += frag
	s.WaitingForOperand = strings.HasSuffix(frag, "(")
	return s
}

// ToggleSign flips a leading minus on the display. The expression is not
// rewritten: the sign change is visual only and a later evaluation of
// the untouched token stream ignores it. Kept for compatibility with the
// original behaviour.
func (s State) ToggleSign() State {
	if s.Display == "0" || s.HasError {
		return s
	}
	if strings.HasPrefix(s.Display, "-") {
		s.Display = s.Display[1:]
	} else {
		s.Display = "-" + s.Display
	}
	return s
}

// Backspace drops the last entered character from both buffers. From an
// error state or an already-empty display it resets the entry instead.
func (s State) Backspace() State {
	if s.HasError || s.Display == "0" {
		s.Display = "0"
		s.Expression = ""
		s.HasError = false
		return s
	}
	s.Expression = trimLastRune(s.Expression)
	if utf8.RuneCountInString(s.Display) <= 1 {
		s.Display = "0"
	} else {
		s.Display = trimLastRune(s.Display)
	}
	return s
}

// ClearAll returns the initial state. Memory, angle mode, and the answer
// register are reset along with the entry buffers.
func (s State) ClearAll() State {
	return NewState()
}

// ToggleAngleMode flips between degrees and radians without touching the
// entry buffers.
func (s State) ToggleAngleMode() State {
	if s.AngleMode == Degrees {
		s.AngleMode = Radians
	} else {
		s.AngleMode = Degrees
	}
	return s
}

// trimLastRune drops the final rune; the expression can hold multi-byte
// tokens like π.
func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
