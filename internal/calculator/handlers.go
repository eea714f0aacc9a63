package calculator

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"scicalc-api/internal/calc"
	"scicalc-api/internal/eval"
	"scicalc-api/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Package-wide collaborators: the session registry and the expression
// evaluator handed to the evaluation pipeline.
var (
	store     = NewStore()
	evaluator = eval.New()
)

// ---------------------------------------------------------------------------
// Handlers — session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	sess := store.Create()
	sessionsCounter.Add(ctx, 1)

	span.SetAttributes(attribute.String("calculator.session_id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", requestID),
	)

	writeSession(w, http.StatusCreated, sessionResponse(sess.ID, sess.Snapshot(), requestID))
}

// GetSession handles GET /calculator/sessions/{id}
func GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(
			attribute.String("calculator.session_id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	sess, ok := store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "get_session", "session not found", fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	writeSession(w, http.StatusOK, sessionResponse(sess.ID, sess.Snapshot(), requestID))
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(
			attribute.String("calculator.session_id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if !store.Delete(id) {
		observability.RecordError(ctx, span, logger, errorCounter, "delete_session", "session not found", fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}
	sessionsCounter.Add(ctx, -1)

	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handlers — event dispatch
// ---------------------------------------------------------------------------

// DispatchEvent handles POST /calculator/sessions/{id}/events
func DispatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	var ev EventRequest
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		ctx, span := tracer.Start(ctx, "calculator.event.decode")
		defer span.End()
		observability.RecordError(ctx, span, logger, errorCounter, "event", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	handleEvent(w, r, ev)
}

// PressKey handles POST /calculator/sessions/{id}/keys — the keyboard
// binding surface. The key is translated to an input event and then
// follows the same path as DispatchEvent.
func PressKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctx, span := tracer.Start(ctx, "calculator.key.decode")
		defer span.End()
		observability.RecordError(ctx, span, logger, errorCounter, "key", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	ev, ok := MapKey(req.Key)
	if !ok {
		ctx, span := tracer.Start(ctx, "calculator.key.map")
		defer span.End()
		observability.RecordError(ctx, span, logger, errorCounter, "key", "unbound key", fmt.Errorf("no binding for key %q", req.Key), http.StatusBadRequest, w)
		return
	}

	handleEvent(w, r, ev)
}

// handleEvent is the shared implementation for event and key dispatch:
// child span per event, input validation, the state transition under the
// session lock, metrics, and trace-correlated logging. Calculator errors
// (a failed evaluation) are state, not HTTP errors: the response is
// still 200 with the error display in the snapshot.
func handleEvent(w http.ResponseWriter, r *http.Request, ev EventRequest) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.event.%s", ev.Type),
		trace.WithAttributes(
			attribute.String("calculator.session_id", id),
			attribute.String("calculator.event", ev.Type),
			attribute.String("calculator.event_value", ev.Value),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	sess, ok := store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, ev.Type, "session not found", fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}

	transition, err := transitionFor(ev)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, ev.Type, "invalid event", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	state := sess.Apply(transition)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("event", ev.Type))
	eventsCounter.Add(ctx, 1, attrs)

	if ev.Type == EventEvaluate {
		evalHistogram.Record(ctx, elapsed, attrs)
		if state.HasError {
			span.AddEvent("evaluation.failed")
		} else {
			resultGauge.Record(ctx, state.PreviousAnswer, attrs)
			span.AddEvent("evaluation.complete", trace.WithAttributes(
				attribute.Float64("result", state.PreviousAnswer),
				attribute.Float64("duration_ms", elapsed),
			))
		}
	}

	span.SetAttributes(
		attribute.String("calculator.display", state.Display),
		attribute.String("calculator.expression", state.Expression),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator event applied",
		zap.String("session_id", id),
		zap.String("event", ev.Type),
		zap.String("value", ev.Value),
		zap.String("display", state.Display),
		zap.Bool("has_error", state.HasError),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	writeSession(w, http.StatusOK, sessionResponse(sess.ID, state.Snapshot(), requestID))
}

// transitionFor validates an event and returns the reducer to apply.
func transitionFor(ev EventRequest) (func(calc.State) calc.State, error) {
	switch ev.Type {
	case EventDigit:
		if len(ev.Value) != 1 || ev.Value[0] < '0' || ev.Value[0] > '9' {
			return nil, fmt.Errorf("invalid digit %q", ev.Value)
		}
		return func(s calc.State) calc.State { return s.InsertDigit(ev.Value) }, nil
	case EventOperator:
		switch ev.Value {
		case "+", "-", "*", "/", "(", ")", "×", "÷", "−":
			return func(s calc.State) calc.State { return s.InsertOperator(ev.Value) }, nil
		}
		return nil, fmt.Errorf("invalid operator %q", ev.Value)
	case EventDecimal:
		return calc.State.InsertDecimal, nil
	case EventConstant:
		name := ev.Value
		if name == "pi" {
			name = "π"
		}
		if name != "π" && name != "e" {
			return nil, fmt.Errorf("unknown constant %q", ev.Value)
		}
		return func(s calc.State) calc.State { return s.InsertConstant(name) }, nil
	case EventFunction:
		if !calc.IsFunctionKey(ev.Value) {
			return nil, fmt.Errorf("unknown function %q", ev.Value)
		}
		return func(s calc.State) calc.State { return s.ApplyFunction(ev.Value) }, nil
	case EventToggleSign:
		return calc.State.ToggleSign, nil
	case EventBackspace:
		return calc.State.Backspace, nil
	case EventClearAll:
		return calc.State.ClearAll, nil
	case EventToggleAngleMode:
		return calc.State.ToggleAngleMode, nil
	case EventEvaluate:
		return func(s calc.State) calc.State { return s.Evaluate(evaluator) }, nil
	case EventInsertAnswer:
		return calc.State.InsertAnswer, nil
	case EventRandom:
		return func(s calc.State) calc.State { return s.InsertRandom(rand.Float64()) }, nil
	case EventMemoryAdd:
		return calc.State.MemoryAdd, nil
	case EventMemorySubtract:
		return calc.State.MemorySubtract, nil
	case EventMemoryRecall:
		return calc.State.MemoryRecall, nil
	case EventMemoryClear:
		return calc.State.MemoryClear, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", ev.Type)
	}
}

func writeSession(w http.ResponseWriter, status int, resp SessionResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
