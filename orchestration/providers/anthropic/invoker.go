package anthropic

import (
	"context"
	"encoding/json"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/bububa/agent-orchestra/components"
	"github.com/bububa/agent-orchestra/orchestration"
)

// defaultMaxTokens applies when the agent does not set one; the messages
// API requires a positive value.
const defaultMaxTokens = 4096

// Invoker talks to the Anthropic messages API, exposing tools and handoff
// transfer functions as tool definitions.
type Invoker struct {
	client *anthropic.Client
}

var _ orchestration.Invoker = (*Invoker)(nil)

// New returns an Invoker configured from a provider config.
func New(cfg components.ProviderConfig) *Invoker {
	clientOpts := make([]anthropic.ClientOption, 0, 1)
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	return NewWithClient(anthropic.NewClient(cfg.APIKey, clientOpts...))
}

// NewWithClient returns an Invoker around an existing client.
func NewWithClient(clt *anthropic.Client) *Invoker {
	return &Invoker{client: clt}
}

// Invoke sends one conversation turn and classifies the response.
func (p *Invoker) Invoke(ctx context.Context, req *orchestration.Request) (*orchestration.Decision, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	chatReq := anthropic.MessagesRequest{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		System:    req.Instructions,
	}
	if req.Temperature > 0 {
		temperature := req.Temperature
		chatReq.Temperature = &temperature
	}
	for _, msg := range req.History {
		v := new(anthropic.Message)
		msg.ToAnthropic(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	for _, t := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, toolDefinition(t))
	}
	for _, h := range req.Handoffs {
		chatReq.Tools = append(chatReq.Tools, toolDefinition(h))
	}
	res, err := p.client.CreateMessages(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	var (
		content string
		calls   []components.ToolCall
	)
	for _, block := range res.Content {
		switch block.Type {
		case anthropic.MessagesContentTypeText:
			if block.Text != nil {
				content += *block.Text
			}
		case anthropic.MessagesContentTypeToolUse:
			if tu := block.MessageContentToolUse; tu != nil {
				calls = append(calls, components.ToolCall{
					ID:        tu.ID,
					Name:      tu.Name,
					Arguments: json.RawMessage(tu.Input),
				})
			}
		}
	}
	decision := orchestration.Classify(req, content, calls, req.TieBreak)
	decision.Response = new(components.LLMResponse)
	decision.Response.FromAnthropic(&res)
	return decision, nil
}

func toolDefinition(t orchestration.ToolDescriptor) anthropic.ToolDefinition {
	return anthropic.ToolDefinition{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.Parameters,
	}
}
