package orchestration

import (
	"errors"
	"fmt"
)

var (
	// ErrGuardrailTripwire marks a run aborted by a guardrail.
	ErrGuardrailTripwire = errors.New("guardrail tripwire triggered")
	// ErrToolNotFound marks a tool-call request for a tool the active
	// agent does not declare.
	ErrToolNotFound = errors.New("tool not found")
	// ErrUndeclaredHandoff marks a handoff to a target outside the active
	// agent's declared handoff set.
	ErrUndeclaredHandoff = errors.New("undeclared handoff target")
	// ErrMaxTurnsExceeded marks a run that hit the turn ceiling.
	ErrMaxTurnsExceeded = errors.New("maximum turns exceeded")
	// ErrMaxHandoffDepthExceeded marks a run that hit the handoff or
	// nested-run depth ceiling.
	ErrMaxHandoffDepthExceeded = errors.New("maximum handoff depth exceeded")
	// ErrInvalidOutputSchema marks a final answer that does not match the
	// agent's declared output type.
	ErrInvalidOutputSchema = errors.New("final output does not match declared schema")
)

// GuardrailPhase tells which guardrail set tripped.
type GuardrailPhase string

const (
	InputPhase  GuardrailPhase = "input"
	OutputPhase GuardrailPhase = "output"
)

// TripwireError is the abort signal raised when a guardrail trips.
// Expected control flow, not a bug: the caller decides presentation.
type TripwireError struct {
	// Guardrail is the name of the tripped guardrail.
	Guardrail string
	// Phase is the guardrail phase that tripped.
	Phase GuardrailPhase
	// Info is the guardrail's diagnostic payload.
	Info any
}

func (e *TripwireError) Error() string {
	return fmt.Sprintf("%s guardrail %q: %s", e.Phase, e.Guardrail, ErrGuardrailTripwire)
}

func (e *TripwireError) Unwrap() error {
	return ErrGuardrailTripwire
}

// RoutingError reports a wiring bug in the agent graph: a tool or handoff
// target the model asked for that the active agent does not declare.
type RoutingError struct {
	// Agent is the active agent when the request was made.
	Agent string
	// Target is the requested tool or handoff tool name.
	Target string
	kind   error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("agent %q: %s: %q", e.Agent, e.kind, e.Target)
}

func (e *RoutingError) Unwrap() error {
	return e.kind
}

// LimitError reports an exhausted run limit.
type LimitError struct {
	Max  int
	kind error
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s (max %d)", e.kind, e.Max)
}

func (e *LimitError) Unwrap() error {
	return e.kind
}

// OutputSchemaError reports a final answer violating the agent's declared
// output type. Fatal: the contract with the caller is broken.
type OutputSchemaError struct {
	Agent string
	Cause error
}

func (e *OutputSchemaError) Error() string {
	return fmt.Sprintf("agent %q: %s: %s", e.Agent, ErrInvalidOutputSchema, e.Cause)
}

func (e *OutputSchemaError) Unwrap() error {
	return ErrInvalidOutputSchema
}
