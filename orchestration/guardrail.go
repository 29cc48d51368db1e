package orchestration

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bububa/agent-orchestra/components"
)

// GuardrailOutput is the outcome of one guardrail check.
type GuardrailOutput struct {
	// Info carries arbitrary diagnostic data from the check.
	Info any `json:"info,omitempty"`
	// TripwireTriggered aborts the run when true.
	TripwireTriggered bool `json:"tripwire_triggered"`
}

// GuardrailFunc checks an input or pending output. Checks must not depend
// on each other's outcomes; they may run a nested agent run sharing rc.
type GuardrailFunc func(ctx context.Context, rc *components.RunContext, value string) (*GuardrailOutput, error)

// Guardrail is a named pre/post check that can abort a run via its
// tripwire flag.
type Guardrail struct {
	name  string
	check GuardrailFunc
}

// NewGuardrail returns a named guardrail.
func NewGuardrail(name string, check GuardrailFunc) Guardrail {
	return Guardrail{
		name:  name,
		check: check,
	}
}

func (g Guardrail) Name() string {
	return g.name
}

// evaluateGuardrails runs every guardrail against value. Checks run
// concurrently since they are independent; outcomes are scanned in
// declaration order so tripwire reporting stays deterministic.
func evaluateGuardrails(ctx context.Context, rc *components.RunContext, guardrails []Guardrail, value string, phase GuardrailPhase) error {
	if len(guardrails) == 0 {
		return nil
	}
	outputs := make([]*GuardrailOutput, len(guardrails))
	grp, grpCtx := errgroup.WithContext(ctx)
	for idx, g := range guardrails {
		grp.Go(func() error {
			out, err := g.check(grpCtx, rc, value)
			if err != nil {
				return err
			}
			outputs[idx] = out
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	for idx, out := range outputs {
		if out != nil && out.TripwireTriggered {
			return &TripwireError{
				Guardrail: guardrails[idx].name,
				Phase:     phase,
				Info:      out.Info,
			}
		}
	}
	return nil
}
