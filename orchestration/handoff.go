package orchestration

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/bububa/agent-orchestra/components"
)

// HandoffInputFilter transforms the run history handed to the target
// agent. The default hands over the full prior context unchanged.
type HandoffInputFilter func(ctx context.Context, rc *components.RunContext, history []components.Message) ([]components.Message, error)

// Handoff is a directed edge from a source agent to a target agent. It is
// exposed to the model as a transfer function; once taken, control does
// not return to the source agent within the same run.
type Handoff struct {
	target          *Agent
	toolName        string
	toolDescription string
	inputFilter     HandoffInputFilter
	onHandoff       func(ctx context.Context, rc *components.RunContext, args json.RawMessage) error
}

// NewHandoff returns a handoff edge to target.
func NewHandoff(target *Agent, opts ...HandoffOption) Handoff {
	ret := Handoff{target: target}
	for _, opt := range opts {
		opt(&ret)
	}
	if ret.toolName == "" && target != nil {
		ret.toolName = "transfer_to_" + snakeCase(target.Name())
	}
	if ret.toolDescription == "" && target != nil {
		ret.toolDescription = "Transfer the conversation to the " + target.Name() + " agent."
	}
	return ret
}

type HandoffOption func(h *Handoff)

// WithToolName overrides the transfer function name shown to the model.
func WithToolName(name string) HandoffOption {
	return func(h *Handoff) {
		h.toolName = name
	}
}

// WithToolDescription overrides the transfer function description.
func WithToolDescription(desc string) HandoffOption {
	return func(h *Handoff) {
		h.toolDescription = desc
	}
}

// WithInputFilter transforms the history handed to the target agent.
func WithInputFilter(fn HandoffInputFilter) HandoffOption {
	return func(h *Handoff) {
		h.inputFilter = fn
	}
}

// WithOnHandoff registers a callback invoked when the handoff is taken.
func WithOnHandoff(fn func(context.Context, *components.RunContext, json.RawMessage) error) HandoffOption {
	return func(h *Handoff) {
		h.onHandoff = fn
	}
}

// Target returns the target agent.
func (h Handoff) Target() *Agent {
	return h.target
}

// ToolName returns the transfer function name shown to the model.
func (h Handoff) ToolName() string {
	return h.toolName
}

// ToolDescription returns the transfer function description.
func (h Handoff) ToolDescription() string {
	return h.toolDescription
}

// Descriptor returns the transfer function descriptor for the model.
// Transfer functions take no arguments.
func (h Handoff) Descriptor() ToolDescriptor {
	return ToolDescriptor{
		Name:        h.toolName,
		Description: h.toolDescription,
		Parameters: &jsonschema.Schema{
			Type:                 "object",
			AdditionalProperties: jsonschema.FalseSchema,
		},
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r == ' ' || r == '-':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
