package orchestration

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/schema"
	"github.com/bububa/agent-orchestra/tools"
)

const (
	// DefaultMaxTurns bounds model turns within one run.
	DefaultMaxTurns = 10
	// DefaultMaxHandoffDepth bounds handoff chains and nested-run depth,
	// guarding against cyclic handoff graphs.
	DefaultMaxHandoffDepth = 25
)

// ErrInvokerRequired is returned when neither the runner nor the active
// agent carries a model invoker.
var ErrInvokerRequired = errors.New("model invoker is required")

// RunResult is the terminal output of a successful run.
type RunResult struct {
	// FinalOutput is the final textual answer.
	FinalOutput string `json:"final_output"`
	// StructuredOutput is the schema-validated answer when the producing
	// agent declares an output type; a pointer to that type.
	StructuredOutput any `json:"structured_output,omitempty"`
	// LastAgent is the agent that produced the final answer.
	LastAgent string `json:"last_agent"`
	// History is the full run history.
	History []components.Message `json:"history"`
	// Usage is the accumulated token usage of the run.
	Usage components.LLMUsage `json:"usage"`
}

// Runner drives the turn-by-turn loop over an agent graph: guardrails,
// model turns, tool dispatch and handoff transfer. The zero value is not
// usable; construct with NewRunner.
type Runner struct {
	invoker         Invoker
	model           string
	maxTurns        int
	maxHandoffDepth int
	tieBreak        TieBreak
	inputFilter     HandoffInputFilter
}

type RunnerOption func(r *Runner)

// WithDefaultInvoker sets the model invoker used by agents without one.
func WithDefaultInvoker(invoker Invoker) RunnerOption {
	return func(r *Runner) {
		r.invoker = invoker
	}
}

// WithModelOverride forces a model identifier for every agent in the run.
func WithModelOverride(model string) RunnerOption {
	return func(r *Runner) {
		r.model = model
	}
}

func WithMaxTurns(n int) RunnerOption {
	return func(r *Runner) {
		r.maxTurns = n
	}
}

func WithMaxHandoffDepth(n int) RunnerOption {
	return func(r *Runner) {
		r.maxHandoffDepth = n
	}
}

// WithTieBreak sets the precedence between a simultaneous final answer
// and handoff in one model response. Handoff wins by default.
func WithTieBreak(tie TieBreak) RunnerOption {
	return func(r *Runner) {
		r.tieBreak = tie
	}
}

// WithHandoffInputFilter sets a global history filter applied on every
// handoff that has no filter of its own.
func WithHandoffInputFilter(fn HandoffInputFilter) RunnerOption {
	return func(r *Runner) {
		r.inputFilter = fn
	}
}

// NewRunner returns a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	ret := &Runner{
		maxTurns:        DefaultMaxTurns,
		maxHandoffDepth: DefaultMaxHandoffDepth,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Run executes the agent graph from a starting agent with a fresh
// RunContext.
func (r *Runner) Run(ctx context.Context, agent *Agent, input string) (*RunResult, error) {
	return r.RunWithContext(ctx, components.NewRunContext(nil), agent, input)
}

// RunWithContext executes the agent graph, sharing rc with guardrail
// checks, tool executions and nested sub-runs. Passing an outer run's
// context from inside a guardrail makes the nested run share its usage
// accounting and depth budget while keeping an isolated history.
func (r *Runner) RunWithContext(ctx context.Context, rc *components.RunContext, agent *Agent, input string) (*RunResult, error) {
	if err := ValidateGraph(agent); err != nil {
		return nil, err
	}
	if rc == nil {
		rc = components.NewRunContext(nil)
	}
	if depth := rc.EnterRun(); depth > r.maxHandoffDepth {
		rc.LeaveRun()
		return nil, &LimitError{Max: r.maxHandoffDepth, kind: ErrMaxHandoffDepthExceeded}
	}
	defer rc.LeaveRun()
	if fn := agent.startHook; fn != nil {
		fn(ctx, agent, input)
	}
	result, err := r.runLoop(ctx, rc, agent, input)
	if err != nil {
		if fn := agent.errorHook; fn != nil {
			fn(ctx, agent, err)
		}
		return nil, err
	}
	if fn := agent.endHook; fn != nil {
		fn(ctx, agent, result)
	}
	return result, nil
}

func (r *Runner) runLoop(ctx context.Context, rc *components.RunContext, start *Agent, input string) (*RunResult, error) {
	memory := components.NewMemory()
	memory.NewTurn()
	memory.NewMessage(components.UserRole, schema.NewString(input))
	// Input guardrails run before any model call; a trip means the model
	// invoker and tool executor are never reached.
	if err := evaluateGuardrails(ctx, rc, start.inputGuardrails, input, InputPhase); err != nil {
		return nil, err
	}
	active := start
	handoffs := 0
	for turn := 0; turn < r.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		invoker := active.invoker
		if invoker == nil {
			invoker = r.invoker
		}
		if invoker == nil {
			return nil, ErrInvokerRequired
		}
		req := &Request{
			Instructions: active.instructions,
			Model:        r.resolveModel(active),
			Temperature:  active.temperature,
			MaxTokens:    active.maxTokens,
			Tools:        active.toolDescriptors(),
			Handoffs:     active.handoffDescriptors(),
			History:      memory.History(),
			TieBreak:     r.tieBreak,
		}
		decision, err := invoker.Invoke(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp := decision.Response; resp != nil {
			rc.AddUsage(resp.Usage)
		}
		memory.NewTurn()
		if msg := decision.Message; msg != nil {
			memory.Append(msg)
		}
		switch decision.Kind {
		case DecisionHandoff:
			h, ok := active.handoffByTool(decision.HandoffTool)
			if !ok {
				return nil, &RoutingError{Agent: active.name, Target: decision.HandoffTool, kind: ErrUndeclaredHandoff}
			}
			if handoffs++; handoffs > r.maxHandoffDepth {
				return nil, &LimitError{Max: r.maxHandoffDepth, kind: ErrMaxHandoffDepthExceeded}
			}
			if fn := h.onHandoff; fn != nil {
				if err := fn(ctx, rc, decision.HandoffArgs); err != nil {
					return nil, err
				}
			}
			filter := h.inputFilter
			if filter == nil {
				filter = r.inputFilter
			}
			if filter != nil {
				history, err := filter(ctx, rc, memory.History())
				if err != nil {
					return nil, err
				}
				memory.SetHistory(history)
			}
			// The target agent receives the accumulated context; control
			// never returns to the source agent within this run.
			active = h.target
		case DecisionToolCalls:
			if len(decision.ToolCalls) == 0 {
				// no-op continuation; still consumes a turn so a model
				// that never progresses hits the turn ceiling
				continue
			}
			results, err := r.dispatchTools(ctx, rc, active, decision.ToolCalls)
			if err != nil {
				return nil, err
			}
			memory.Append(results...)
		default:
			finalOutput := decision.FinalAnswer
			var structured any
			if t := active.outputType; t != nil {
				v, err := schema.Decode(t, []byte(finalOutput))
				if err != nil {
					return nil, &OutputSchemaError{Agent: active.name, Cause: err}
				}
				structured = v
			}
			// Output guardrails run only once a final answer exists with
			// no pending handoff; a trip discards the answer.
			if err := evaluateGuardrails(ctx, rc, active.outputGuardrails, finalOutput, OutputPhase); err != nil {
				return nil, err
			}
			return &RunResult{
				FinalOutput:      finalOutput,
				StructuredOutput: structured,
				LastAgent:        active.name,
				History:          memory.History(),
				Usage:            rc.Usage(),
			}, nil
		}
	}
	return nil, &LimitError{Max: r.maxTurns, kind: ErrMaxTurnsExceeded}
}

// dispatchTools fans tool calls out concurrently and re-attaches results
// in request order. Execution and validation failures are recoverable:
// they come back as error result turns for the model to adapt to. Only an
// unknown tool name is fatal.
func (r *Runner) dispatchTools(ctx context.Context, rc *components.RunContext, active *Agent, calls []components.ToolCall) ([]*components.Message, error) {
	results := make([]*components.Message, len(calls))
	grp, grpCtx := errgroup.WithContext(ctx)
	for idx, call := range calls {
		t, ok := tools.Find(active.tools, call.Name)
		if !ok {
			return nil, &RoutingError{Agent: active.name, Target: call.Name, kind: ErrToolNotFound}
		}
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}
			output, err := t.Execute(grpCtx, rc, call.Arguments)
			if err != nil {
				results[idx] = components.NewToolResultMessage(call.ID, call.Name, schema.NewString("error: "+err.Error()), true)
				return nil
			}
			results[idx] = components.NewToolResultMessage(call.ID, call.Name, schema.NewString(output), false)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) resolveModel(a *Agent) string {
	if r.model != "" {
		return r.model
	}
	return a.model
}

// Run executes an agent graph with a throwaway runner.
func Run(ctx context.Context, agent *Agent, input string, opts ...RunnerOption) (*RunResult, error) {
	return NewRunner(opts...).Run(ctx, agent, input)
}
