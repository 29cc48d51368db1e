package gemini

import (
	"context"
	"encoding/json"
	"errors"

	gemini "github.com/google/generative-ai-go/genai"
	"github.com/invopop/jsonschema"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/orchestration"
)

// Invoker talks to the Gemini API, exposing tools and handoff transfer
// functions as function declarations.
type Invoker struct {
	client *gemini.Client
}

var _ orchestration.Invoker = (*Invoker)(nil)

// New returns an Invoker around an existing client.
func New(client *gemini.Client) *Invoker {
	return &Invoker{client: client}
}

// Invoke sends one conversation turn and classifies the response.
func (p *Invoker) Invoke(ctx context.Context, req *orchestration.Request) (*orchestration.Decision, error) {
	model := p.client.GenerativeModel(req.Model)
	if req.Instructions != "" {
		model.SystemInstruction = &gemini.Content{
			Parts: []gemini.Part{gemini.Text(req.Instructions)},
		}
	}
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	declarations := make([]*gemini.FunctionDeclaration, 0, len(req.Tools)+len(req.Handoffs))
	for _, t := range req.Tools {
		declarations = append(declarations, functionDeclaration(t))
	}
	for _, h := range req.Handoffs {
		declarations = append(declarations, functionDeclaration(h))
	}
	if len(declarations) > 0 {
		model.Tools = []*gemini.Tool{{FunctionDeclarations: declarations}}
	}
	contents, last, err := historyContents(req.History)
	if err != nil {
		return nil, err
	}
	session := model.StartChat()
	session.History = contents
	res, err := session.SendMessage(ctx, last...)
	if err != nil {
		return nil, err
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, errors.New("gemini: empty candidates")
	}
	var (
		content string
		calls   []components.ToolCall
	)
	for _, part := range res.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case gemini.Text:
			content += string(v)
		case gemini.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				return nil, err
			}
			calls = append(calls, components.ToolCall{
				ID:        v.Name,
				Name:      v.Name,
				Arguments: args,
			})
		}
	}
	decision := orchestration.Classify(req, content, calls, req.TieBreak)
	decision.Response = new(components.LLMResponse)
	decision.Response.FromGemini(res)
	return decision, nil
}

// historyContents converts the run history into chat contents plus the
// parts of the latest message, which the chat session sends itself.
func historyContents(history []components.Message) ([]*gemini.Content, []gemini.Part, error) {
	contents := make([]*gemini.Content, 0, len(history))
	for _, msg := range history {
		c, err := toContent(msg)
		if err != nil {
			return nil, nil, err
		}
		contents = append(contents, c)
	}
	if len(contents) == 0 {
		return nil, nil, errors.New("gemini: empty history")
	}
	last := contents[len(contents)-1]
	return contents[:len(contents)-1], last.Parts, nil
}

func toContent(msg components.Message) (*gemini.Content, error) {
	switch msg.Role() {
	case components.AssistantRole:
		parts := make([]gemini.Part, 0, len(msg.ToolCalls())+1)
		if text := msg.StringifiedContent(); text != "" {
			parts = append(parts, gemini.Text(text))
		}
		for _, call := range msg.ToolCalls() {
			args := make(map[string]any)
			if len(call.Arguments) > 0 {
				if err := json.Unmarshal(call.Arguments, &args); err != nil {
					return nil, err
				}
			}
			parts = append(parts, gemini.FunctionCall{Name: call.Name, Args: args})
		}
		return &gemini.Content{Role: "model", Parts: parts}, nil
	case components.ToolRole:
		return &gemini.Content{
			Role: "user",
			Parts: []gemini.Part{gemini.FunctionResponse{
				Name:     msg.ToolName(),
				Response: map[string]any{"result": msg.StringifiedContent()},
			}},
		}, nil
	default:
		return &gemini.Content{
			Role:  "user",
			Parts: []gemini.Part{gemini.Text(msg.StringifiedContent())},
		}, nil
	}
}

func functionDeclaration(t orchestration.ToolDescriptor) *gemini.FunctionDeclaration {
	return &gemini.FunctionDeclaration{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  toGeminiSchema(t.Parameters),
	}
}

// toGeminiSchema maps a reflected JSON schema onto the subset the Gemini
// API models natively.
func toGeminiSchema(s *jsonschema.Schema) *gemini.Schema {
	if s == nil {
		return nil
	}
	ret := &gemini.Schema{
		Description: s.Description,
	}
	switch s.Type {
	case "object":
		ret.Type = gemini.TypeObject
		if s.Properties != nil {
			ret.Properties = make(map[string]*gemini.Schema, s.Properties.Len())
			for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
				ret.Properties[pair.Key] = toGeminiSchema(pair.Value)
			}
		}
		ret.Required = s.Required
	case "array":
		ret.Type = gemini.TypeArray
		ret.Items = toGeminiSchema(s.Items)
	case "string":
		ret.Type = gemini.TypeString
		for _, v := range s.Enum {
			if str, ok := v.(string); ok {
				ret.Enum = append(ret.Enum, str)
			}
		}
	case "integer":
		ret.Type = gemini.TypeInteger
	case "number":
		ret.Type = gemini.TypeNumber
	case "boolean":
		ret.Type = gemini.TypeBoolean
	}
	return ret
}
