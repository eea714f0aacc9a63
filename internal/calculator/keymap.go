package calculator

// MapKey translates a physical key name (in the browser KeyboardEvent
// vocabulary) into an input event. The second return value reports
// whether the key is bound.
func MapKey(key string) (EventRequest, bool) {
	switch key {
	case "Enter", "=":
		return EventRequest{Type: EventEvaluate}, true
	case "Escape":
		return EventRequest{Type: EventClearAll}, true
	case "Backspace":
		return EventRequest{Type: EventBackspace}, true
	case ".":
		return EventRequest{Type: EventDecimal}, true
	case "+", "-", "*", "/", "(", ")":
		return EventRequest{Type: EventOperator, Value: key}, true
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return EventRequest{Type: EventDigit, Value: key}, true
	}
	return EventRequest{}, false
}
