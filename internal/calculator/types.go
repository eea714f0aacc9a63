package calculator

import "scicalc-api/internal/calc"

// Event types accepted by POST /calculator/sessions/{id}/events.
const (
	EventDigit           = "digit"
	EventOperator        = "operator"
	EventDecimal         = "decimal"
	EventConstant        = "constant"
	EventFunction        = "function"
	EventToggleSign      = "toggle_sign"
	EventBackspace       = "backspace"
	EventClearAll        = "clear"
	EventToggleAngleMode = "toggle_angle_mode"
	EventEvaluate        = "evaluate"
	EventInsertAnswer    = "insert_answer"
	EventRandom          = "random"
	EventMemoryAdd       = "memory_add"
	EventMemorySubtract  = "memory_subtract"
	EventMemoryRecall    = "memory_recall"
	EventMemoryClear     = "memory_clear"
)

// EventRequest is the JSON body for the event endpoint. Value carries
// the payload for digit, operator, constant, and function events and is
// ignored elsewhere.
type EventRequest struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// KeyRequest is the JSON body for the key-binding endpoint.
type KeyRequest struct {
	Key string `json:"key"`
}

// SessionResponse is the JSON response for all session endpoints: the
// session id plus the read-only state snapshot.
type SessionResponse struct {
	SessionID  string         `json:"session_id"`
	Display    string         `json:"display"`
	Expression string         `json:"expression"`
	AngleMode  calc.AngleMode `json:"angle_mode"`
	Memory     float64        `json:"memory"`
	RequestID  string         `json:"request_id"`
}

func sessionResponse(id string, snap calc.Snapshot, requestID string) SessionResponse {
	return SessionResponse{
		SessionID:  id,
		Display:    snap.Display,
		Expression: snap.Expression,
		AngleMode:  snap.AngleMode,
		Memory:     snap.Memory,
		RequestID:  requestID,
	}
}
