package calc

import (
	"strings"
	"testing"
)

func TestInsertDigitsKeepDisplayAndExpressionEqual(t *testing.T) {
	s := NewState()
	for _, d := range []string{"1", "2", "3"} {
		s = s.InsertDigit(d)
	}
	s = s.InsertDecimal()
	for _, d := range []string{"4", "5"} {
		s = s.InsertDigit(d)
	}

	if s.Display != "123.45" {
		t.Fatalf("expected display %q, got %q", "123.45", s.Display)
	}
	if s.Expression != s.Display {
		t.Fatalf("expected expression to match display, got %q vs %q", s.Expression, s.Display)
	}
	if strings.Count(s.Display, ".") != 1 {
		t.Fatalf("expected exactly one decimal point, got %q", s.Display)
	}
}

func TestInsertDigitStartsNewOperandAfterOperator(t *testing.T) {
	s := NewState().InsertDigit("1").InsertOperator("+")

	if !s.WaitingForOperand {
		t.Fatal("expected waiting-for-operand after operator")
	}

	s = s.InsertDigit("2")
	if s.Display != "2" {
		t.Fatalf("expected display %q, got %q", "2", s.Display)
	}
	if s.Expression != "1+2" {
		t.Fatalf("expected expression %q, got %q", "1+2", s.Expression)
	}
	if s.WaitingForOperand {
		t.Fatal("expected waiting-for-operand cleared by digit entry")
	}
}

func TestInsertOperatorTranslatesGlyphs(t *testing.T) {
	tests := []struct {
		op      string
		token   string
		waiting bool
	}{
		{op: "+", token: "+", waiting: true},
		{op: "−", token: "-", waiting: true},
		{op: "×", token: "*", waiting: true},
		{op: "÷", token: "/", waiting: true},
		{op: "*", token: "*", waiting: true},
		{op: "(", token: "(", waiting: false},
		{op: ")", token: ")", waiting: false},
	}

	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			s := NewState().InsertDigit("5").InsertOperator(tc.op)
			if got := strings.TrimPrefix(s.Expression, "5"); got != tc.token {
				t.Fatalf("expected token %q, got %q", tc.token, got)
			}
			if s.WaitingForOperand != tc.waiting {
				t.Fatalf("expected waiting=%t, got %t", tc.waiting, s.WaitingForOperand)
			}
		})
	}
}

func TestInsertOperatorDoesNotValidatePrecedingToken(t *testing.T) {
	s := NewState().InsertDigit("1").InsertOperator("+").InsertOperator("*")
	if s.Expression != "1+*" {
		t.Fatalf("expected expression %q, got %q", "1+*", s.Expression)
	}
}

func TestInsertDecimalStartsNewTokenWhenWaiting(t *testing.T) {
	s := NewState().InsertDigit("1").InsertOperator("+").InsertDecimal()

	if s.Display != "0." {
		t.Fatalf("expected display %q, got %q", "0.", s.Display)
	}
	if s.Expression != "1+0." {
		t.Fatalf("expected expression %q, got %q", "1+0.", s.Expression)
	}
}

func TestInsertDecimalIgnoredWhenAlreadyPresent(t *testing.T) {
	s := NewState().InsertDigit("1").InsertDecimal().InsertDigit("5")
	before := s
	s = s.InsertDecimal()
	if s != before {
		t.Fatalf("expected second decimal to be a no-op, got %+v", s)
	}
}

func TestInsertConstantShowsLiteralKeepsSymbol(t *testing.T) {
	s := NewState().InsertConstant("π")
	if s.Display != "3.141592653589793" {
		t.Fatalf("expected pi literal display, got %q", s.Display)
	}
	if s.Expression != "π" {
		t.Fatalf("expected symbolic expression %q, got %q", "π", s.Expression)
	}

	s = NewState().InsertConstant("e")
	if s.Display != "2.718281828459045" {
		t.Fatalf("expected e literal display, got %q", s.Display)
	}
	if s.Expression != "e" {
		t.Fatalf("expected symbolic expression %q, got %q", "e", s.Expression)
	}
}

func TestApplyFunctionFragments(t *testing.T) {
	tests := []struct {
		key      string
		fragment string
		waiting  bool
	}{
		{key: "sin", fragment: "sin(", waiting: true},
		{key: "asin", fragment: "asin(", waiting: true},
		{key: "ln", fragment: "log(", waiting: true},
		{key: "log", fragment: "log10(", waiting: true},
		{key: "sqrt", fragment: "sqrt(", waiting: true},
		{key: "cbrt", fragment: "cbrt(", waiting: true},
		{key: "square", fragment: "^2", waiting: false},
		{key: "cube", fragment: "^3", waiting: false},
		{key: "pow", fragment: "^", waiting: false},
		{key: "exp", fragment: "exp(", waiting: true},
		{key: "pow10", fragment: "10^(", waiting: true},
		{key: "inv", fragment: "1/(", waiting: true},
		{key: "factorial", fragment: "!", waiting: false},
		{key: "percent", fragment: "/100", waiting: false},
		{key: "nthroot", fragment: "nthRoot(", waiting: true},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			s := NewState().ApplyFunction(tc.key)
			if s.Expression != tc.fragment {
				t.Fatalf("expected fragment %q, got %q", tc.fragment, s.Expression)
			}
			if s.WaitingForOperand != tc.waiting {
				t.Fatalf("expected waiting=%t, got %t", tc.waiting, s.WaitingForOperand)
			}
		})
	}
}

func TestApplyFunctionUnknownKeyIsNoOp(t *testing.T) {
	s := NewState().InsertDigit("5")
	if got := s.ApplyFunction("nope"); got != s {
		t.Fatalf("expected unknown function key to be a no-op, got %+v", got)
	}
}

// ToggleSign only rewrites the display; the expression keeps the
// unsigned token, so a later evaluation ignores the toggled sign. This
// pins the inherited behaviour rather than endorsing it.
func TestToggleSignLeavesExpressionUnchanged(t *testing.T) {
	s := NewState().InsertDigit("5").ToggleSign()

	if s.Display != "-5" {
		t.Fatalf("expected display %q, got %q", "-5", s.Display)
	}
	if s.Expression != "5" {
		t.Fatalf("expected expression to stay %q, got %q", "5", s.Expression)
	}

	s = s.ToggleSign()
	if s.Display != "5" {
		t.Fatalf("expected display back to %q, got %q", "5", s.Display)
	}
}

func TestToggleSignNoOpOnZero(t *testing.T) {
	s := NewState()
	if got := s.ToggleSign(); got != s {
		t.Fatalf("expected toggle on zero to be a no-op, got %+v", got)
	}
}

func TestBackspaceRoundTrip(t *testing.T) {
	s := NewState().InsertDigit("5").Backspace()

	if s.Display != "0" {
		t.Fatalf("expected display %q, got %q", "0", s.Display)
	}
	if s.Expression != "" {
		t.Fatalf("expected empty expression, got %q", s.Expression)
	}
}

func TestBackspaceDropsMultiByteToken(t *testing.T) {
	s := NewState().InsertConstant("π").Backspace()
	if s.Expression != "" {
		t.Fatalf("expected π removed from expression, got %q", s.Expression)
	}
}

func TestBackspaceClearsErrorState(t *testing.T) {
	s := NewState()
	s.Display = ErrorDisplay
	s.HasError = true

	s = s.Backspace()
	if s.HasError || s.Display != "0" || s.Expression != "" {
		t.Fatalf("expected reset state, got %+v", s)
	}
}

func TestClearAllResetsEverything(t *testing.T) {
	s := NewState().InsertDigit("7").MemoryAdd().ToggleAngleMode()
	s.PreviousAnswer = 42

	s = s.ClearAll()
	if s != NewState() {
		t.Fatalf("expected initial state after clear, got %+v", s)
	}
}

func TestToggleAngleModeFlips(t *testing.T) {
	s := NewState()
	if s.AngleMode != Degrees {
		t.Fatalf("expected initial mode DEG, got %q", s.AngleMode)
	}

	s = s.ToggleAngleMode()
	if s.AngleMode != Radians {
		t.Fatalf("expected RAD after toggle, got %q", s.AngleMode)
	}

	s = s.ToggleAngleMode()
	if s.AngleMode != Degrees {
		t.Fatalf("expected DEG after second toggle, got %q", s.AngleMode)
	}
}

func TestInsertAnswerAndRandomUsePlainTokens(t *testing.T) {
	s := NewState()
	s.PreviousAnswer = 12.5

	s = s.InsertAnswer()
	if s.Display != "12.5" || s.Expression != "12.5" {
		t.Fatalf("expected answer token in both buffers, got display=%q expression=%q", s.Display, s.Expression)
	}

	s = NewState().InsertRandom(0.25)
	if s.Display != "0.25" || s.Expression != "0.25" {
		t.Fatalf("expected random token in both buffers, got display=%q expression=%q", s.Display, s.Expression)
	}
}

func TestErrorRecoveryOnNextEvent(t *testing.T) {
	errState := NewState()
	errState.Display = ErrorDisplay
	errState.HasError = true

	t.Run("digit", func(t *testing.T) {
		s := errState.InsertDigit("3")
		if s.HasError || s.Display != "3" || s.Expression != "3" {
			t.Fatalf("expected recovered state with digit applied, got %+v", s)
		}
	})

	t.Run("operator", func(t *testing.T) {
		s := errState.InsertOperator("+")
		if s.HasError || s.Display != "0" || s.Expression != "+" {
			t.Fatalf("expected recovered state with operator applied, got %+v", s)
		}
	})

	t.Run("decimal", func(t *testing.T) {
		s := errState.InsertDecimal()
		if s.HasError || s.Display != "0." || s.Expression != "0." {
			t.Fatalf("expected recovered state with decimal applied, got %+v", s)
		}
	})

	t.Run("function", func(t *testing.T) {
		s := errState.ApplyFunction("sin")
		if s.HasError || s.Display != "0" || s.Expression != "sin(" {
			t.Fatalf("expected recovered state with fragment applied, got %+v", s)
		}
	})

	t.Run("toggle sign stays", func(t *testing.T) {
		s := errState.ToggleSign()
		if !s.HasError || s.Display != ErrorDisplay {
			t.Fatalf("expected toggle sign to ignore error state, got %+v", s)
		}
	})
}
