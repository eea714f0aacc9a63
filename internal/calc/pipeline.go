package calc

import (
	"math"
	"strings"
)

// Numeric literals substituted for the symbolic constant tokens. The
// same literals back the display feedback in InsertConstant.
const (
	piLiteral = "3.141592653589793"
	eLiteral  = "2.718281828459045"
)

// Evaluator is the opaque evaluation capability: infix notation with
// standard precedence, parentheses, unary minus, and the function set
// emitted by ApplyFunction. Any parse or domain failure is a single
// generic error.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// degreeRewriter wraps trig calls for degree mode: direct calls
// pre-multiply their argument by π/180, inverse calls post-multiply
// their result by 180/π. The inverse patterns are listed first so
// "asin(" is never split into "a" + "sin(". Rewriting is a context-free
// single pass over the text: nested trig calls each get wrapped
// independently, which is a known limitation inherited from the original
// behaviour.
var degreeRewriter = strings.NewReplacer(
	"asin(", "(180/"+piLiteral+")*asin(",
	"acos(", "(180/"+piLiteral+")*acos(",
	"atan(", "(180/"+piLiteral+")*atan(",
	"sin(", "sin(("+piLiteral+"/180)*",
	"cos(", "cos(("+piLiteral+"/180)*",
	"tan(", "tan(("+piLiteral+"/180)*",
)

// substituteConstants replaces π everywhere and a bare e unless the next
// byte is a digit (scientific-notation guard) or 'x' (keeps "exp("
// intact). An 'e' directly followed by an explicit exponent sign is
// still substituted; tokens inserted by the assembler never use that
// form.
func substituteConstants(expr string) string {
	expr = strings.ReplaceAll(expr, "π", piLiteral)
	if !strings.Contains(expr, "e") {
		return expr
	}

	var b strings.Builder
	b.Grow(len(expr))
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c != 'e' {
			b.WriteByte(c)
			continue
		}
		var next byte
		if i+1 < len(expr) {
			next = expr[i+1]
		}
		if (next >= '0' && next <= '9') || next == 'x' {
			b.WriteByte(c)
			continue
		}
		b.WriteString(eLiteral)
	}
	return b.String()
}

// Evaluate runs the pipeline: constant substitution, angle-mode
// rewriting, delegation to the evaluator, result formatting, and
// register updates. An empty expression is a no-op. On failure the
// display shows the error literal, the offending expression is
// discarded, and the answer register keeps its previous value.
func (s State) Evaluate(ev Evaluator) State {
	if s.Expression == "" {
		return s
	}

	expr := substituteConstants(s.Expression)
	if s.AngleMode == Degrees {
		expr = degreeRewriter.Replace(expr)
	}

	result, err := ev.Evaluate(expr)
	if err != nil || math.IsNaN(result) || math.IsInf(result, 0) {
		s.Display = ErrorDisplay
		s.Expression = ""
		s.WaitingForOperand = false
		s.HasError = true
		return s
	}

	s.Display = FormatNumber(result)
	s.PreviousAnswer = result
	s.Expression = ""
	s.WaitingForOperand = true
	s.HasError = false
	return s
}
