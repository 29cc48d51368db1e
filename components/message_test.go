package components

import (
	"bytes"
	"encoding/json"
	"testing"

	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/agent-orchestra/schema"
)

func TestMessageMarshaler(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	dec := json.NewDecoder(&buf)
	msg := NewMessage(UserRole, schema.NewString("test string schema"))
	if err := enc.Encode(msg); err != nil {
		t.Fatal(err)
	}
	var decodeMsg Message
	if err := dec.Decode(&decodeMsg); err != nil {
		t.Fatal(err)
	}
	if decodeMsg.StringifiedContent() != msg.StringifiedContent() {
		t.Errorf("string match error, expect:%s, got:%s", msg.StringifiedContent(), decodeMsg.StringifiedContent())
	}
}

func TestToolResultMessageMarshaler(t *testing.T) {
	msg := NewToolResultMessage("call_1", "get_weather", schema.NewString("sunny"), false)
	bs, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	var decodeMsg Message
	if err := json.Unmarshal(bs, &decodeMsg); err != nil {
		t.Fatal(err)
	}
	if decodeMsg.ToolCallID() != "call_1" || decodeMsg.ToolName() != "get_weather" {
		t.Errorf("tool result fields lost: %+v", decodeMsg)
	}
}

func TestMessageToOpenAI(t *testing.T) {
	msg := NewToolCallMessage(nil, []ToolCall{
		{ID: "call_1", Name: "get_weather", Arguments: json.RawMessage(`{"location":"Paris"}`)},
	})
	v := new(openai.ChatCompletionMessage)
	msg.ToOpenAI(v)
	if v.Role != AssistantRole {
		t.Errorf("expect assistant role, got %s", v.Role)
	}
	if len(v.ToolCalls) != 1 || v.ToolCalls[0].Function.Name != "get_weather" {
		t.Errorf("tool call conversion failed: %+v", v.ToolCalls)
	}
	result := NewToolResultMessage("call_1", "get_weather", schema.NewString("sunny"), false)
	v = new(openai.ChatCompletionMessage)
	result.ToOpenAI(v)
	if v.Role != ToolRole || v.ToolCallID != "call_1" || v.Content != "sunny" {
		t.Errorf("tool result conversion failed: %+v", v)
	}
}

func TestMessageToAnthropic(t *testing.T) {
	result := NewToolResultMessage("call_1", "get_weather", schema.NewString("sunny"), true)
	v := new(anthropic.Message)
	result.ToAnthropic(v)
	if v.Role != anthropic.RoleUser {
		t.Errorf("tool results go back as user messages, got %s", v.Role)
	}
	if len(v.Content) != 1 {
		t.Fatalf("expect a single tool_result block, got %d", len(v.Content))
	}
}

func TestMessageToCohere(t *testing.T) {
	msg := NewMessage(AssistantRole, schema.NewString("hello"))
	v := new(cohere.Message)
	msg.ToCohere(v)
	if v.Role != "CHATBOT" || v.Chatbot == nil || v.Chatbot.Message != "hello" {
		t.Errorf("cohere conversion failed: %+v", v)
	}
}
