package weather

import (
	"context"
	"fmt"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/schema"
	"github.com/bububa/agent-orchestra/tools"
)

// Input Tool for fetching the current weather conditions of a location.
type Input struct {
	schema.Base
	// Location City or place to fetch the current weather for
	Location string `json:"location" jsonschema:"title=location,description=City or place to fetch the current weather for. For example 'Paris'." validate:"required"`
}

func NewInput(location string) *Input {
	return &Input{
		Location: location,
	}
}

// Provider resolves current conditions for a location. Swap in a real
// forecast API client in production; the default reports sunny skies.
type Provider func(ctx context.Context, location string) (string, error)

func defaultProvider(_ context.Context, location string) (string, error) {
	return fmt.Sprintf("The weather in %s is sunny with a temperature of 22°C.", location), nil
}

// New returns the get_weather tool.
func New(opts ...tools.Option) *tools.Func[Input] {
	return NewWithProvider(defaultProvider, opts...)
}

// NewWithProvider returns the get_weather tool backed by a custom provider.
func NewWithProvider(provider Provider, opts ...tools.Option) *tools.Func[Input] {
	defaults := []tools.Option{
		tools.WithName("get_weather"),
		tools.WithDescription("Get the current weather conditions for a location."),
	}
	return tools.NewFunc(func(ctx context.Context, rc *components.RunContext, input *Input) (string, error) {
		return provider(ctx, input.Location)
	}, append(defaults, opts...)...)
}
