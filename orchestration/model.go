package orchestration

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/schema"
)

func stringSchema(s string) schema.Schema {
	if s == "" {
		return nil
	}
	return schema.NewString(s)
}

// ToolDescriptor describes one callable function to a model provider.
type ToolDescriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// Request is everything an Invoker needs for one model turn.
type Request struct {
	// Instructions is the active agent's system prompt.
	Instructions string
	// Model is the resolved model identifier.
	Model string
	// Temperature for response generation, typically ranging from 0 to 1.
	Temperature float32
	// MaxTokens Maximum number of tokens allowed in the response
	MaxTokens int
	// Tools are the active agent's tool descriptors.
	Tools []ToolDescriptor
	// Handoffs are the active agent's handoff edges, exposed to the model
	// as transfer functions.
	Handoffs []ToolDescriptor
	// History is the conversation so far.
	History []components.Message
	// TieBreak is the runner's final-vs-handoff precedence; invokers pass
	// it to Classify.
	TieBreak TieBreak
}

// DecisionKind classifies a model turn outcome.
type DecisionKind int

const (
	// DecisionFinal is a final textual answer.
	DecisionFinal DecisionKind = iota
	// DecisionToolCalls is a request to execute one or more tools.
	DecisionToolCalls
	// DecisionHandoff is a request to transfer the run to another agent.
	DecisionHandoff
)

// Decision is the provider-neutral outcome of one model turn: exactly one
// of a final answer, a tool-call batch, or a handoff request.
type Decision struct {
	Kind DecisionKind
	// FinalAnswer is set for DecisionFinal.
	FinalAnswer string
	// ToolCalls is set for DecisionToolCalls.
	ToolCalls []components.ToolCall
	// HandoffTool is the transfer function name for DecisionHandoff.
	HandoffTool string
	// HandoffArgs is the raw transfer payload for DecisionHandoff.
	HandoffArgs json.RawMessage
	// Message is the assistant turn to append to the run history.
	Message *components.Message
	// Response carries provider response metadata and usage.
	Response *components.LLMResponse
}

// Invoker sends one conversation turn to a model and returns its decision.
// Implementations live under orchestration/providers.
type Invoker interface {
	Invoke(ctx context.Context, req *Request) (*Decision, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, req *Request) (*Decision, error)

func (f InvokerFunc) Invoke(ctx context.Context, req *Request) (*Decision, error) {
	return f(ctx, req)
}

// TieBreak picks the decision when a model response carries both a final
// answer and a handoff request.
type TieBreak int

const (
	// TiePreferHandoff treats the handoff as the agent's intended action.
	TiePreferHandoff TieBreak = iota
	// TiePreferFinal keeps the textual answer and drops the handoff.
	TiePreferFinal
)

// Classify turns a raw provider response (text plus tool calls) into a
// Decision. Tool calls whose names match a declared handoff transfer
// function become a handoff request; the first such call wins. A response
// carrying both text and a handoff resolves per tie.
func Classify(req *Request, content string, calls []components.ToolCall, tie TieBreak) *Decision {
	handoffNames := make(map[string]struct{}, len(req.Handoffs))
	for _, h := range req.Handoffs {
		handoffNames[h.Name] = struct{}{}
	}
	var (
		handoffCall *components.ToolCall
		toolCalls   []components.ToolCall
	)
	for idx, call := range calls {
		if _, ok := handoffNames[call.Name]; ok {
			if handoffCall == nil {
				handoffCall = &calls[idx]
			}
			continue
		}
		toolCalls = append(toolCalls, call)
	}
	msg := components.NewToolCallMessage(stringSchema(content), calls)
	switch {
	case handoffCall != nil && (tie == TiePreferHandoff || content == "" || len(toolCalls) > 0):
		return &Decision{
			Kind:        DecisionHandoff,
			HandoffTool: handoffCall.Name,
			HandoffArgs: handoffCall.Arguments,
			Message:     msg,
		}
	case len(toolCalls) > 0:
		return &Decision{
			Kind:      DecisionToolCalls,
			ToolCalls: toolCalls,
			Message:   msg,
		}
	default:
		return &Decision{
			Kind:        DecisionFinal,
			FinalAnswer: content,
			Message:     msg,
		}
	}
}
