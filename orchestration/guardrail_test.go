package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/bububa/agent-orchestra/components"
)

func passGuardrail(name string) Guardrail {
	return NewGuardrail(name, func(ctx context.Context, rc *components.RunContext, value string) (*GuardrailOutput, error) {
		return &GuardrailOutput{}, nil
	})
}

func tripGuardrail(name string, info any) Guardrail {
	return NewGuardrail(name, func(ctx context.Context, rc *components.RunContext, value string) (*GuardrailOutput, error) {
		return &GuardrailOutput{Info: info, TripwireTriggered: true}, nil
	})
}

func TestEvaluateGuardrailsPass(t *testing.T) {
	rc := components.NewRunContext(nil)
	guardrails := []Guardrail{passGuardrail("a"), passGuardrail("b")}
	if err := evaluateGuardrails(context.Background(), rc, guardrails, "input", InputPhase); err != nil {
		t.Fatal(err)
	}
}

func TestEvaluateGuardrailsTripwire(t *testing.T) {
	rc := components.NewRunContext(nil)
	guardrails := []Guardrail{passGuardrail("a"), tripGuardrail("b", "blocked")}
	err := evaluateGuardrails(context.Background(), rc, guardrails, "input", OutputPhase)
	if err == nil {
		t.Fatal("expect tripwire")
	}
	var trip *TripwireError
	if !errors.As(err, &trip) {
		t.Fatalf("expect *TripwireError, got %T", err)
	}
	if trip.Guardrail != "b" || trip.Phase != OutputPhase || trip.Info != "blocked" {
		t.Errorf("wrong tripwire payload: %+v", trip)
	}
	if !errors.Is(err, ErrGuardrailTripwire) {
		t.Error("tripwire should match ErrGuardrailTripwire")
	}
}

// Guardrails report in declaration order even though they run concurrently.
func TestEvaluateGuardrailsDeterministicOrder(t *testing.T) {
	rc := components.NewRunContext(nil)
	guardrails := []Guardrail{tripGuardrail("first", 1), tripGuardrail("second", 2)}
	for i := 0; i < 20; i++ {
		err := evaluateGuardrails(context.Background(), rc, guardrails, "x", InputPhase)
		var trip *TripwireError
		if !errors.As(err, &trip) {
			t.Fatalf("expect *TripwireError, got %T", err)
		}
		if trip.Guardrail != "first" {
			t.Fatalf("iteration %d: expect first guardrail reported, got %q", i, trip.Guardrail)
		}
	}
}

func TestEvaluateGuardrailsCheckError(t *testing.T) {
	rc := components.NewRunContext(nil)
	boom := errors.New("boom")
	guardrails := []Guardrail{
		NewGuardrail("broken", func(ctx context.Context, rc *components.RunContext, value string) (*GuardrailOutput, error) {
			return nil, boom
		}),
	}
	if err := evaluateGuardrails(context.Background(), rc, guardrails, "x", InputPhase); !errors.Is(err, boom) {
		t.Errorf("expect check error to propagate, got %v", err)
	}
}
