package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/schema"
)

// Handler executes a tool with a validated, typed input.
type Handler[I schema.Schema] func(ctx context.Context, rc *components.RunContext, input *I) (string, error)

// Func adapts a typed handler into a Tool. The input schema is reflected
// from I's jsonschema tags; raw payloads are unmarshaled and checked
// against I's validate tags before the handler runs.
type Func[I schema.Schema] struct {
	Config
	handler     Handler[I]
	inputSchema *jsonschema.Schema
}

// NewFunc returns a Tool backed by a typed handler.
func NewFunc[I schema.Schema](handler Handler[I], opts ...Option) *Func[I] {
	ret := &Func[I]{
		handler: handler,
	}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	var zero I
	ret.inputSchema = schema.Generate(zero)
	return ret
}

var _ Tool = (*Func[schema.Base])(nil)

// InputSchema returns the reflected JSON schema for the tool input.
func (t *Func[I]) InputSchema() *jsonschema.Schema {
	return t.inputSchema
}

// Execute validates the raw payload and runs the handler.
func (t *Func[I]) Execute(ctx context.Context, rc *components.RunContext, raw json.RawMessage) (string, error) {
	input := new(I)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, input); err != nil {
			return "", &schema.ValidationError{Fields: []schema.FieldError{{Field: "$", Tag: "json", Param: err.Error()}}}
		}
	}
	if err := schema.Validate(input); err != nil {
		return "", err
	}
	if fn := t.startHook; fn != nil {
		fn(ctx, t, input)
	}
	output, err := t.handler(ctx, rc, input)
	if err != nil {
		if fn := t.errorHook; fn != nil {
			fn(ctx, t, input, err)
		}
		return "", err
	}
	if fn := t.endHook; fn != nil {
		fn(ctx, t, input, output)
	}
	return output, nil
}
