package orchestration

import (
	"reflect"

	"github.com/bububa/agent-orchestra/tools"
)

type Option func(c *Config)

func WithInstructions(instructions string) Option {
	return func(c *Config) {
		c.instructions = instructions
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

// WithInvoker overrides the runner's model invoker for this agent.
func WithInvoker(invoker Invoker) Option {
	return func(c *Config) {
		c.invoker = invoker
	}
}

func WithTools(list ...tools.Tool) Option {
	return func(c *Config) {
		c.tools = append(c.tools, list...)
	}
}

func WithInputGuardrails(list ...Guardrail) Option {
	return func(c *Config) {
		c.inputGuardrails = append(c.inputGuardrails, list...)
	}
}

func WithOutputGuardrails(list ...Guardrail) Option {
	return func(c *Config) {
		c.outputGuardrails = append(c.outputGuardrails, list...)
	}
}

func WithHandoffs(list ...Handoff) Option {
	return func(c *Config) {
		c.handoffs = append(c.handoffs, list...)
	}
}

// WithOutputType declares a structured output schema for the agent's
// final answer. v is a sample value of the schema type.
func WithOutputType(v any) Option {
	return func(c *Config) {
		t := reflect.TypeOf(v)
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		c.outputType = t
	}
}
