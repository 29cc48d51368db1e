package orchestration

import (
	"strings"
	"testing"
)

func TestHandoffToolName(t *testing.T) {
	target := NewAgent("Forecast Agent")
	h := NewHandoff(target)
	if h.ToolName() != "transfer_to_forecast_agent" {
		t.Errorf("unexpected transfer name %q", h.ToolName())
	}
	h = NewHandoff(target, WithToolName("escalate"))
	if h.ToolName() != "escalate" {
		t.Errorf("override ignored: %q", h.ToolName())
	}
}

func TestHandoffDescriptor(t *testing.T) {
	h := NewHandoff(NewAgent("forecaster"))
	d := h.Descriptor()
	if d.Name != "transfer_to_forecaster" {
		t.Errorf("unexpected descriptor name %q", d.Name)
	}
	if d.Parameters == nil || d.Parameters.Type != "object" {
		t.Error("transfer functions declare an empty object schema")
	}
	if !strings.Contains(d.Description, "forecaster") {
		t.Errorf("description should mention the target: %q", d.Description)
	}
}

func TestValidateGraph(t *testing.T) {
	c := NewAgent("c")
	b := NewAgent("b", WithHandoffs(NewHandoff(c)))
	a := NewAgent("a", WithHandoffs(NewHandoff(b)))
	if err := ValidateGraph(a); err != nil {
		t.Fatal(err)
	}
}

func TestValidateGraphCycle(t *testing.T) {
	a := NewAgent("a")
	b := NewAgent("b", WithHandoffs(NewHandoff(a)))
	a.handoffs = append(a.handoffs, NewHandoff(b))
	// cycles are legal wiring; the run loop bounds them at runtime
	if err := ValidateGraph(a); err != nil {
		t.Fatal(err)
	}
}

func TestValidateGraphRejectsNilTarget(t *testing.T) {
	a := NewAgent("a", WithHandoffs(Handoff{}))
	if err := ValidateGraph(a); err == nil {
		t.Error("expect error for nil handoff target")
	}
}

func TestValidateGraphRejectsDuplicateNames(t *testing.T) {
	b1 := NewAgent("b")
	b2 := NewAgent("b")
	a := NewAgent("a", WithHandoffs(NewHandoff(b1), NewHandoff(b2)))
	if err := ValidateGraph(a); err == nil {
		t.Error("expect error for duplicate agent names")
	}
}

func TestValidateGraphRejectsNilRoot(t *testing.T) {
	if err := ValidateGraph(nil); err == nil {
		t.Error("expect error for nil root")
	}
}
