// Package calc implements the calculator core: a state record, pure
// reducer operations that assemble an expression from discrete input
// events, a memory register, and the evaluation pipeline that turns the
// assembled expression into a formatted result.
//
// The package performs no I/O and holds no global state; the hosting
// shell owns the single State instance per session and applies one
// event at a time.
package calc

// AngleMode selects the unit trig functions operate in. It only affects
// the rewriting step of the evaluation pipeline, never the assembled
// expression itself.
type AngleMode string

const (
	Degrees AngleMode = "DEG"
	Radians AngleMode = "RAD"
)

// State is the complete calculator state. Display is what the user sees:
// always a numeric literal, "0", or the literal "Error". Expression is
// the raw token stream handed to the evaluator.
type State struct {
	Display           string
	Expression        string
	Memory            float64
	AngleMode         AngleMode
	PreviousAnswer    float64
	WaitingForOperand bool
	HasError          bool
}

// NewState returns the initial state: display "0", empty expression,
// degree mode, zeroed registers.
func NewState() State {
	return State{
		Display:   "0",
		AngleMode: Degrees,
	}
}

// Snapshot is the read-only view handed to external collaborators
// (renderers, API clients). Expression is shown verbatim; Display is the
// canonical value the renderer formats.
type Snapshot struct {
	Display    string    `json:"display"`
	Expression string    `json:"expression"`
	AngleMode  AngleMode `json:"angle_mode"`
	Memory     float64   `json:"memory"`
}

// Snapshot returns the external view of the state.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Display:    s.Display,
		Expression: s.Expression,
		AngleMode:  s.AngleMode,
		Memory:     s.Memory,
	}
}

// clearError implements the implicit recovery step: an error state
// carries no expression, so recovering only means restoring the display
// before the triggering event applies its own effect.
func (s State) clearError() State {
	if !s.HasError {
		return s
	}
	s.Display = "0"
	s.HasError = false
	return s
}
