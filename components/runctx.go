package components

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// RunContext is the mutable state shared by one top-level run: every
// guardrail check, tool execution and nested sub-run of the run sees the
// same instance. Exactly one is created per top-level run.
type RunContext struct {
	id    string
	state any
	kv    map[string]any
	mtx   sync.RWMutex
	// usage accumulates token usage across all model turns of the run,
	// nested runs included.
	inputTokens  atomic.Int64
	outputTokens atomic.Int64
	// depth counts currently active nested runs sharing this context.
	depth atomic.Int32
}

// NewRunContext returns a RunContext with caller state attached.
func NewRunContext(state any) *RunContext {
	return &RunContext{
		id:    uuid.NewString(),
		state: state,
		kv:    make(map[string]any),
	}
}

// ID returns the run ID.
func (c *RunContext) ID() string {
	return c.id
}

// State returns the caller state bound at run start.
func (c *RunContext) State() any {
	return c.state
}

// Set stores a keyed value on the context.
func (c *RunContext) Set(key string, value any) {
	c.mtx.Lock()
	c.kv[key] = value
	c.mtx.Unlock()
}

// Get retrieves a keyed value from the context.
func (c *RunContext) Get(key string) (any, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	v, ok := c.kv[key]
	return v, ok
}

// AddUsage accumulates token usage from one model turn.
func (c *RunContext) AddUsage(u *LLMUsage) {
	if u == nil {
		return
	}
	c.inputTokens.Add(u.InputTokens)
	c.outputTokens.Add(u.OutputTokens)
}

// Usage returns the accumulated token usage for the whole run.
func (c *RunContext) Usage() LLMUsage {
	return LLMUsage{
		InputTokens:  c.inputTokens.Load(),
		OutputTokens: c.outputTokens.Load(),
	}
}

// EnterRun marks entry into a (possibly nested) run and returns the new
// nesting depth.
func (c *RunContext) EnterRun() int {
	return int(c.depth.Inc())
}

// LeaveRun marks exit from a run.
func (c *RunContext) LeaveRun() {
	c.depth.Dec()
}
