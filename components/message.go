package components

import (
	"encoding/json"

	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/agent-orchestra/schema"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// ToolCall is a model-requested invocation of a named tool with a raw
// JSON argument payload.
type ToolCall struct {
	// ID is the provider-assigned call ID, echoed back in the result turn.
	ID string `json:"id"`
	// Name is the tool name within the active agent's tool set.
	Name string `json:"name"`
	// Arguments is the raw, not yet validated argument payload.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Message  Represents a single turn in the run history.
type Message struct {
	content schema.Schema
	// role is the role of the message sender (e.g., 'user', 'system', 'tool')
	role MessageRole
	//	turnID is Unique identifier for the turn this message belongs to.
	turnID string
	// toolCalls holds the model's tool-call requests for an assistant turn.
	toolCalls []ToolCall
	// toolCallID links a tool-result turn back to its originating call.
	toolCallID string
	// toolName is the tool that produced a tool-result turn.
	toolName string
	// toolError marks a tool-result turn that reports an execution failure.
	toolError bool
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// NewToolCallMessage returns an assistant turn carrying tool-call requests.
func NewToolCallMessage(content schema.Schema, calls []ToolCall) *Message {
	return &Message{
		role:      AssistantRole,
		content:   content,
		toolCalls: calls,
	}
}

// NewToolResultMessage returns a tool turn carrying one call's result.
func NewToolResultMessage(callID string, toolName string, content schema.Schema, isError bool) *Message {
	return &Message{
		role:       ToolRole,
		content:    content,
		toolCallID: callID,
		toolName:   toolName,
		toolError:  isError,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// Attachement returns message attachement
func (m Message) Attachement() *schema.Attachement {
	if m.content == nil {
		return nil
	}
	return m.content.Attachement()
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// ToolCalls returns the tool-call requests of an assistant turn.
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToolCallID returns the originating call ID of a tool-result turn.
func (m Message) ToolCallID() string {
	return m.toolCallID
}

// ToolName returns the tool name of a tool-result turn.
func (m Message) ToolName() string {
	return m.toolName
}

// IsToolError reports whether a tool-result turn carries an execution failure.
func (m Message) IsToolError() bool {
	return m.toolError
}

// StringifiedContent returns message content as plain text.
func (m Message) StringifiedContent() string {
	if m.content == nil {
		return ""
	}
	return schema.Stringify(m.content)
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = m.StringifiedContent()
	switch m.role {
	case AssistantRole:
		if l := len(m.toolCalls); l > 0 {
			dist.ToolCalls = make([]openai.ToolCall, 0, l)
			for _, call := range m.toolCalls {
				dist.ToolCalls = append(dist.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: string(call.Arguments),
					},
				})
			}
		}
	case ToolRole:
		dist.ToolCallID = m.toolCallID
		dist.Name = m.toolName
	default:
		if attachement := m.Attachement(); attachement != nil && len(attachement.ImageURLs) > 0 {
			dist.Content = ""
			dist.MultiContent = make([]openai.ChatMessagePart, 0, len(attachement.ImageURLs)+1)
			dist.MultiContent = append(dist.MultiContent, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: schema.Stringify(m.content),
			})
			for _, imageURL := range attachement.ImageURLs {
				dist.MultiContent = append(dist.MultiContent, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: imageURL,
					},
				})
			}
		}
	}
}

// ToAnthropic convert message to anthropic Message.
// Tool-result turns become user messages carrying a tool_result block,
// which is how the messages API expects them back.
func (m Message) ToAnthropic(dist *anthropic.Message) {
	switch m.role {
	case AssistantRole:
		dist.Role = anthropic.RoleAssistant
		contents := make([]anthropic.MessageContent, 0, len(m.toolCalls)+1)
		if text := m.StringifiedContent(); text != "" {
			contents = append(contents, anthropic.NewTextMessageContent(text))
		}
		for _, call := range m.toolCalls {
			contents = append(contents, anthropic.NewToolUseMessageContent(call.ID, call.Name, []byte(call.Arguments)))
		}
		dist.Content = contents
	case ToolRole:
		dist.Role = anthropic.RoleUser
		dist.Content = []anthropic.MessageContent{
			anthropic.NewToolResultMessageContent(m.toolCallID, m.StringifiedContent(), m.toolError),
		}
	default:
		dist.Role = anthropic.RoleUser
		dist.Content = []anthropic.MessageContent{anthropic.NewTextMessageContent(m.StringifiedContent())}
	}
}

// ToCohere convert message to cohere Message
func (m Message) ToCohere(dist *cohere.Message) {
	switch m.role {
	case SystemRole:
		dist.Role = "SYSTEM"
		dist.System = &cohere.ChatMessage{
			Message: m.StringifiedContent(),
		}
	case AssistantRole, ToolRole:
		dist.Role = "CHATBOT"
		dist.Chatbot = &cohere.ChatMessage{
			Message: m.StringifiedContent(),
		}
	default:
		dist.Role = "USER"
		dist.User = &cohere.ChatMessage{
			Message: m.StringifiedContent(),
		}
	}
}

type messagePayload struct {
	Role       MessageRole     `json:"role"`
	Content    json.RawMessage `json:"content,omitempty"`
	TurnID     string          `json:"turn_id,omitempty"`
	ToolCalls  []ToolCall      `json:"tool_calls,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	ToolName   string          `json:"tool_name,omitempty"`
	ToolError  bool            `json:"tool_error,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (m Message) MarshalJSON() ([]byte, error) {
	payload := messagePayload{
		Role:       m.role,
		TurnID:     m.turnID,
		ToolCalls:  m.toolCalls,
		ToolCallID: m.toolCallID,
		ToolName:   m.toolName,
		ToolError:  m.toolError,
	}
	if m.content != nil {
		bs, err := json.Marshal(m.StringifiedContent())
		if err != nil {
			return nil, err
		}
		payload.Content = bs
	}
	return json.Marshal(payload)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Message) UnmarshalJSON(bs []byte) error {
	var payload messagePayload
	if err := json.Unmarshal(bs, &payload); err != nil {
		return err
	}
	m.role = payload.Role
	m.turnID = payload.TurnID
	m.toolCalls = payload.ToolCalls
	m.toolCallID = payload.ToolCallID
	m.toolName = payload.ToolName
	m.toolError = payload.ToolError
	if len(payload.Content) > 0 {
		var text string
		if err := json.Unmarshal(payload.Content, &text); err != nil {
			return err
		}
		m.content = schema.NewString(text)
	}
	return nil
}
