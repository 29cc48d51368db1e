package orchestration

import (
	"context"
	"fmt"
	"reflect"

	"github.com/bububa/agent-orchestra/tools"
)

// Config represents general agent configuration
type Config struct {
	// name is Agent name presentation, unique within a run graph
	name string
	// instructions is the agent system prompt
	instructions string
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
	// invoker overrides the runner's model invoker for this agent
	invoker Invoker
	// tools the agent may call, in declaration order
	tools []tools.Tool
	// inputGuardrails run against the run input before any model call
	inputGuardrails []Guardrail
	// outputGuardrails run against the final answer before it is returned
	outputGuardrails []Guardrail
	// handoffs are the agents this agent may transfer control to
	handoffs []Handoff
	// outputType, when set, declares a structured final output schema
	outputType reflect.Type
}

// Agent is a named configuration bundling instructions, a model target,
// tools, guardrails and handoff targets. Immutable once constructed; the
// run loop references it, never copies it.
type Agent struct {
	Config
	startHook func(ctx context.Context, agent *Agent, input string)
	endHook   func(ctx context.Context, agent *Agent, result *RunResult)
	errorHook func(ctx context.Context, agent *Agent, err error)
}

// NewAgent initializes an Agent
func NewAgent(name string, options ...Option) *Agent {
	ret := new(Agent)
	ret.name = name
	for _, opt := range options {
		opt(&ret.Config)
	}
	return ret
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Instructions() string {
	return a.instructions
}

func (a *Agent) Model() string {
	return a.model
}

func (a *Agent) Tools() []tools.Tool {
	return a.tools
}

func (a *Agent) Handoffs() []Handoff {
	return a.handoffs
}

func (a *Agent) InputGuardrails() []Guardrail {
	return a.inputGuardrails
}

func (a *Agent) OutputGuardrails() []Guardrail {
	return a.outputGuardrails
}

func (a *Agent) OutputType() reflect.Type {
	return a.outputType
}

func (a *Agent) SetStartHook(fn func(context.Context, *Agent, string)) {
	a.startHook = fn
}

func (a *Agent) SetEndHook(fn func(context.Context, *Agent, *RunResult)) {
	a.endHook = fn
}

func (a *Agent) SetErrorHook(fn func(context.Context, *Agent, error)) {
	a.errorHook = fn
}

// handoffByTool returns the handoff edge whose transfer function matches name.
func (a *Agent) handoffByTool(name string) (Handoff, bool) {
	for _, h := range a.handoffs {
		if h.toolName == name {
			return h, true
		}
	}
	return Handoff{}, false
}

// toolDescriptors builds the model-facing descriptors for the agent's tools.
func (a *Agent) toolDescriptors() []ToolDescriptor {
	if len(a.tools) == 0 {
		return nil
	}
	ret := make([]ToolDescriptor, 0, len(a.tools))
	for _, t := range a.tools {
		ret = append(ret, ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.InputSchema(),
		})
	}
	return ret
}

// handoffDescriptors builds the transfer function descriptors.
func (a *Agent) handoffDescriptors() []ToolDescriptor {
	if len(a.handoffs) == 0 {
		return nil
	}
	ret := make([]ToolDescriptor, 0, len(a.handoffs))
	for _, h := range a.handoffs {
		ret = append(ret, h.Descriptor())
	}
	return ret
}

// ValidateGraph walks the agent graph reachable from root and rejects
// wiring bugs before a run starts: duplicate agent names, nil handoff
// targets and duplicate tool names within one agent. The runtime check on
// dynamically requested targets still applies during the run.
func ValidateGraph(root *Agent) error {
	if root == nil {
		return fmt.Errorf("agent graph: nil root agent")
	}
	seen := make(map[*Agent]struct{})
	names := make(map[string]*Agent)
	var walk func(a *Agent) error
	walk = func(a *Agent) error {
		if _, ok := seen[a]; ok {
			return nil
		}
		seen[a] = struct{}{}
		if a.name == "" {
			return fmt.Errorf("agent graph: agent with empty name")
		}
		if prev, ok := names[a.name]; ok && prev != a {
			return fmt.Errorf("agent graph: duplicate agent name %q", a.name)
		}
		names[a.name] = a
		toolNames := make(map[string]struct{}, len(a.tools))
		for _, t := range a.tools {
			if _, ok := toolNames[t.Name()]; ok {
				return fmt.Errorf("agent graph: agent %q declares duplicate tool %q", a.name, t.Name())
			}
			toolNames[t.Name()] = struct{}{}
		}
		for _, h := range a.handoffs {
			if h.target == nil {
				return fmt.Errorf("agent graph: agent %q has a handoff with nil target", a.name)
			}
			if err := walk(h.target); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}
