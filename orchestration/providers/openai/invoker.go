package openai

import (
	"context"
	"encoding/json"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/orchestration"
)

// Invoker talks to the OpenAI chat completions API, exposing tools and
// handoff transfer functions as function tools.
type Invoker struct {
	client *openai.Client
}

var _ orchestration.Invoker = (*Invoker)(nil)

// New returns an Invoker configured from a provider config.
func New(cfg components.ProviderConfig) *Invoker {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return NewWithClient(openai.NewClientWithConfig(conf))
}

// NewWithClient returns an Invoker around an existing client.
func NewWithClient(clt *openai.Client) *Invoker {
	return &Invoker{client: clt}
}

// Invoke sends one conversation turn and classifies the response.
func (p *Invoker) Invoke(ctx context.Context, req *orchestration.Request) (*orchestration.Decision, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               req.Model,
		Temperature:         req.Temperature,
		MaxCompletionTokens: req.MaxTokens,
	}
	if req.Instructions != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.Instructions,
		})
	}
	for _, msg := range req.History {
		v := new(openai.ChatCompletionMessage)
		msg.ToOpenAI(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	for _, t := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, toolDefinition(t))
	}
	for _, h := range req.Handoffs {
		chatReq.Tools = append(chatReq.Tools, toolDefinition(h))
	}
	res, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	if len(res.Choices) == 0 {
		return nil, errors.New("openai: empty completion choices")
	}
	msg := res.Choices[0].Message
	calls := make([]components.ToolCall, 0, len(msg.ToolCalls))
	for _, call := range msg.ToolCalls {
		calls = append(calls, components.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}
	decision := orchestration.Classify(req, msg.Content, calls, req.TieBreak)
	decision.Response = new(components.LLMResponse)
	decision.Response.FromOpenAI(&res)
	return decision, nil
}

func toolDefinition(t orchestration.ToolDescriptor) openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		},
	}
}
