package components

import (
	"sync"

	"github.com/bububa/agent-orchestra/schema"
)

// Memory manages the message history for one agent run.
// Append-only while a run is in flight; threadsafe.
type Memory struct {
	//	history is a list of messages representing the run history.
	history []Message
	//	turnID is the ID of the current turn.
	turnID string
	// mtx sync lock
	mtx *sync.RWMutex
}

// NewMemory initializes the Memory with an empty history.
func NewMemory() *Memory {
	return &Memory{
		history: make([]Message, 0, 16),
		mtx:     new(sync.RWMutex),
	}
}

// TurnID returns the current turn ID
func (m *Memory) TurnID() string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.turnID
}

// NewTurn initializes a new turn by generating a random turn ID.
func (m *Memory) NewTurn() *Memory {
	m.mtx.Lock()
	m.turnID = NewTurnID()
	m.mtx.Unlock()
	return m
}

// NewMessage appends a message to the run history.
func (m *Memory) NewMessage(role MessageRole, content schema.Schema) *Message {
	msg := NewMessage(role, content)
	m.Append(msg)
	return msg
}

// Append appends a prebuilt message to the run history, stamping it with
// the current turn ID.
func (m *Memory) Append(msgs ...*Message) {
	m.mtx.Lock()
	for _, msg := range msgs {
		msg.SetTurnID(m.turnID)
		m.history = append(m.history, *msg)
	}
	m.mtx.Unlock()
}

// History retrieves a snapshot copy of the run history.
func (m *Memory) History() []Message {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	ret := make([]Message, len(m.history))
	copy(ret, m.history)
	return ret
}

// SetHistory replaces the history with a copy of the given messages.
// Used by handoff input filters; the run loop itself only appends.
func (m *Memory) SetHistory(history []Message) *Memory {
	m.mtx.Lock()
	m.history = make([]Message, len(history))
	copy(m.history, history)
	m.mtx.Unlock()
	return m
}

// MessageCount returns the number of messages in the run history.
func (m *Memory) MessageCount() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.history)
}
