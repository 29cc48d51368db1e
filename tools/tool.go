package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/bububa/agent-orchestra/components"
)

// Tool is a schema-validated capability the model may invoke mid-run.
// Execute receives the raw argument payload as emitted by the model;
// implementations validate it before running.
type Tool interface {
	Name() string
	Description() string
	InputSchema() *jsonschema.Schema
	Execute(ctx context.Context, rc *components.RunContext, raw json.RawMessage) (string, error)
}

// Find looks a tool up by name within a tool set.
func Find(list []Tool, name string) (Tool, bool) {
	for _, t := range list {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}
