package tools

import "context"

// Config class for tools within the framework
type Config struct {
	// name the default name of the tool
	name string
	// description the default description of the tool
	description string
	// hooks observe tool execution
	startHook func(ctx context.Context, tool Tool, input any)
	endHook   func(ctx context.Context, tool Tool, input any, output any)
	errorHook func(ctx context.Context, tool Tool, input any, err error)
}

func (c *Config) SetName(v string) {
	c.name = v
}

func (c Config) Name() string {
	return c.name
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}

func (c *Config) SetStartHook(fn func(context.Context, Tool, any)) {
	c.startHook = fn
}

func (c *Config) SetEndHook(fn func(context.Context, Tool, any, any)) {
	c.endHook = fn
}

func (c *Config) SetErrorHook(fn func(context.Context, Tool, any, error)) {
	c.errorHook = fn
}
