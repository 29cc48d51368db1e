package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/schema"
)

type echoInput struct {
	schema.Base
	Text string `json:"text" jsonschema:"title=text" validate:"required"`
}

func newEchoTool(opts ...Option) *Func[echoInput] {
	defaults := []Option{WithName("echo"), WithDescription("Echo the input text.")}
	return NewFunc(func(ctx context.Context, rc *components.RunContext, input *echoInput) (string, error) {
		return input.Text, nil
	}, append(defaults, opts...)...)
}

func TestFuncExecute(t *testing.T) {
	tool := newEchoTool()
	rc := components.NewRunContext(nil)
	out, err := tool.Execute(context.Background(), rc, json.RawMessage(`{"text":"hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	if out != "hi" {
		t.Errorf("expect hi, got %q", out)
	}
}

func TestFuncValidation(t *testing.T) {
	tool := newEchoTool()
	rc := components.NewRunContext(nil)
	_, err := tool.Execute(context.Background(), rc, json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expect validation error for missing text")
	}
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expect *schema.ValidationError, got %T", err)
	}
	if _, err := tool.Execute(context.Background(), rc, json.RawMessage(`garbage`)); err == nil {
		t.Error("expect error for malformed payload")
	}
}

func TestFuncInputSchema(t *testing.T) {
	tool := newEchoTool()
	s := tool.InputSchema()
	if s == nil || s.Type != "object" {
		t.Fatalf("unexpected schema: %+v", s)
	}
	if _, ok := s.Properties.Get("text"); !ok {
		t.Error("missing text property")
	}
}

func TestFuncHooks(t *testing.T) {
	var started, ended bool
	tool := newEchoTool(
		WithStartHook(func(ctx context.Context, tool Tool, input any) { started = true }),
		WithEndHook(func(ctx context.Context, tool Tool, input, output any) { ended = true }),
	)
	rc := components.NewRunContext(nil)
	if _, err := tool.Execute(context.Background(), rc, json.RawMessage(`{"text":"x"}`)); err != nil {
		t.Fatal(err)
	}
	if !started || !ended {
		t.Errorf("hooks not invoked: start=%v end=%v", started, ended)
	}
}

func TestFind(t *testing.T) {
	list := []Tool{newEchoTool()}
	if _, ok := Find(list, "echo"); !ok {
		t.Error("echo not found")
	}
	if _, ok := Find(list, "missing"); ok {
		t.Error("unexpected hit for missing tool")
	}
}
