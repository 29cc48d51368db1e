package components

import (
	"testing"

	"github.com/bububa/agent-orchestra/schema"
)

func TestMemoryAppendOnly(t *testing.T) {
	m := NewMemory()
	m.NewTurn()
	m.NewMessage(UserRole, schema.NewString("hi"))
	before := m.History()
	m.NewTurn()
	m.NewMessage(AssistantRole, schema.NewString("hello"))
	after := m.History()
	if len(after) != len(before)+1 {
		t.Fatalf("expect %d messages, got %d", len(before)+1, len(after))
	}
	for i, msg := range before {
		if after[i].StringifiedContent() != msg.StringifiedContent() || after[i].Role() != msg.Role() {
			t.Errorf("message %d altered after append", i)
		}
	}
}

func TestMemoryTurnID(t *testing.T) {
	m := NewMemory()
	m.NewTurn()
	first := m.NewMessage(UserRole, schema.NewString("a"))
	if first.TurnID() == "" {
		t.Error("message missing turn ID")
	}
	m.NewTurn()
	second := m.NewMessage(AssistantRole, schema.NewString("b"))
	if first.TurnID() == second.TurnID() {
		t.Error("expect distinct turn IDs")
	}
}

func TestMemoryHistorySnapshot(t *testing.T) {
	m := NewMemory()
	m.NewTurn()
	m.NewMessage(UserRole, schema.NewString("a"))
	snap := m.History()
	m.NewMessage(AssistantRole, schema.NewString("b"))
	if len(snap) != 1 {
		t.Errorf("snapshot grew with memory: %d", len(snap))
	}
}

func TestRunContextUsage(t *testing.T) {
	rc := NewRunContext(nil)
	rc.AddUsage(&LLMUsage{InputTokens: 10, OutputTokens: 5})
	rc.AddUsage(&LLMUsage{InputTokens: 1, OutputTokens: 2})
	u := rc.Usage()
	if u.InputTokens != 11 || u.OutputTokens != 7 {
		t.Errorf("usage accumulation wrong: %+v", u)
	}
	if rc.ID() == "" {
		t.Error("missing run ID")
	}
}

func TestRunContextDepth(t *testing.T) {
	rc := NewRunContext(nil)
	if d := rc.EnterRun(); d != 1 {
		t.Errorf("expect depth 1, got %d", d)
	}
	if d := rc.EnterRun(); d != 2 {
		t.Errorf("expect depth 2, got %d", d)
	}
	rc.LeaveRun()
	rc.LeaveRun()
	if d := rc.EnterRun(); d != 1 {
		t.Errorf("expect depth 1 after leave, got %d", d)
	}
}
