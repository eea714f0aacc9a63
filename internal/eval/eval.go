// Package eval implements the infix expression evaluator backing the
// calculator pipeline: decimal numbers, the binary operators + - * /,
// right-associative ^, postfix !, unary minus, parentheses, and the
// scientific function set (sin, cos, tan, asin, acos, atan, log, log10,
// sqrt, cbrt, exp, nthRoot).
//
// Lexing, parsing, and evaluation are fused into a single
// precedence-climbing pass; the package keeps no state between calls.
package eval

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Evaluator evaluates infix expressions. The zero value is ready to use.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate parses and evaluates expr. Every failure mode — malformed
// input, unknown tokens, unmatched parentheses, bad arity, domain
// violations, and non-finite results — comes back as a generic error.
func (e *Evaluator) Evaluate(expr string) (float64, error) {
	toks, err := lex(expr)
	if err != nil {
		return 0, err
	}

	p := &parser{toks: toks}
	v, err := p.expression(0)
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, fmt.Errorf("unexpected %s after expression", p.peek())
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("result is not finite")
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Lexer
// ---------------------------------------------------------------------------

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokBang
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	num  float64
	name string
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of expression"
	case tokNumber:
		return fmt.Sprintf("number %g", t.num)
	case tokIdent:
		return fmt.Sprintf("identifier %q", t.name)
	default:
		return fmt.Sprintf("token %q", t.name)
	}
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			// Optional exponent part, e.g. 1e-5.
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && isDigit(src[j]) {
					i = j
					for i < len(src) && isDigit(src[i]) {
						i++
					}
				}
			}
			v, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("malformed number %q", src[start:i])
			}
			toks = append(toks, token{kind: tokNumber, num: v})
		case isLetter(c):
			start := i
			for i < len(src) && (isLetter(src[i]) || isDigit(src[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, name: src[start:i]})
		default:
			kind, ok := operatorKinds[c]
			if !ok {
				return nil, fmt.Errorf("unexpected character %q", c)
			}
			toks = append(toks, token{kind: kind, name: string(c)})
			i++
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

var operatorKinds = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'^': tokCaret,
	'!': tokBang,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

// ---------------------------------------------------------------------------
// Parser / evaluator
// ---------------------------------------------------------------------------

// Binding powers. Unary minus sits below ^ so -2^2 is -(2^2); postfix !
// binds tightest.
const (
	bpAdd     = 10
	bpMul     = 20
	bpUnary   = 25
	bpPow     = 30
	bpPostfix = 40
)

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func binaryBP(k tokenKind) int {
	switch k {
	case tokPlus, tokMinus:
		return bpAdd
	case tokStar, tokSlash:
		return bpMul
	case tokCaret:
		return bpPow
	default:
		return 0
	}
}

func (p *parser) expression(minBP int) (float64, error) {
	lhs, err := p.prefix()
	if err != nil {
		return 0, err
	}

	for {
		t := p.peek()
		switch t.kind {
		case tokBang:
			if bpPostfix < minBP {
				return lhs, nil
			}
			p.next()
			lhs, err = factorial(lhs)
			if err != nil {
				return 0, err
			}
		case tokPlus, tokMinus, tokStar, tokSlash, tokCaret:
			bp := binaryBP(t.kind)
			if bp < minBP {
				return lhs, nil
			}
			p.next()
			nextMin := bp + 1
			if t.kind == tokCaret {
				// Right-associative.
				nextMin = bp
			}
			rhs, err := p.expression(nextMin)
			if err != nil {
				return 0, err
			}
			lhs = applyBinary(t.kind, lhs, rhs)
		default:
			return lhs, nil
		}
	}
}

func (p *parser) prefix() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokMinus:
		v, err := p.expression(bpUnary)
		return -v, err
	case tokLParen:
		v, err := p.expression(0)
		if err != nil {
			return 0, err
		}
		if t := p.next(); t.kind != tokRParen {
			return 0, fmt.Errorf("expected closing parenthesis, got %s", t)
		}
		return v, nil
	case tokIdent:
		return p.call(t.name)
	default:
		return 0, fmt.Errorf("unexpected %s", t)
	}
}

func (p *parser) call(name string) (float64, error) {
	fn, ok := functions[name]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", name)
	}
	if open := p.next(); open.kind != tokLParen {
		return 0, fmt.Errorf("expected argument list for %q, got %s", name, open)
	}

	var args []float64
	if p.peek().kind != tokRParen {
		for {
			v, err := p.expression(0)
			if err != nil {
				return 0, err
			}
			args = append(args, v)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if t := p.next(); t.kind != tokRParen {
		return 0, fmt.Errorf("unclosed argument list for %q, got %s", name, t)
	}
	return fn(name, args)
}

func applyBinary(k tokenKind, a, b float64) float64 {
	switch k {
	case tokPlus:
		return a + b
	case tokMinus:
		return a - b
	case tokStar:
		return a * b
	case tokSlash:
		// Division by zero yields a non-finite value caught at the top.
		return a / b
	default:
		return math.Pow(a, b)
	}
}

// factorial extends to non-integers via the gamma function. Values whose
// gamma is undefined or overflows are errors.
func factorial(v float64) (float64, error) {
	r := math.Gamma(v + 1)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("factorial undefined for %g", v)
	}
	return r, nil
}

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

type evalFunc func(name string, args []float64) (float64, error)

func unary(f func(float64) float64) evalFunc {
	return func(name string, args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s takes 1 argument, got %d", name, len(args))
		}
		return f(args[0]), nil
	}
}

var functions = map[string]evalFunc{
	"sin":     unary(math.Sin),
	"cos":     unary(math.Cos),
	"tan":     unary(math.Tan),
	"asin":    unary(math.Asin),
	"acos":    unary(math.Acos),
	"atan":    unary(math.Atan),
	"log":     unary(math.Log),
	"log10":   unary(math.Log10),
	"sqrt":    unary(math.Sqrt),
	"cbrt":    unary(math.Cbrt),
	"exp":     unary(math.Exp),
	"nthRoot": nthRoot,
}

// nthRoot returns the n-th root of x, defaulting n to 2. Odd integer
// roots of negative numbers are real; the rest fall out as NaN and are
// rejected at the top.
func nthRoot(name string, args []float64) (float64, error) {
	var x, n float64
	switch len(args) {
	case 1:
		x, n = args[0], 2
	case 2:
		x, n = args[0], args[1]
	default:
		return 0, fmt.Errorf("%s takes 1 or 2 arguments, got %d", name, len(args))
	}
	if n == 0 {
		return 0, fmt.Errorf("%s undefined for root 0", name)
	}
	if x < 0 && n == math.Trunc(n) && math.Mod(n, 2) != 0 {
		return -math.Pow(-x, 1/n), nil
	}
	return math.Pow(x, 1/n), nil
}
