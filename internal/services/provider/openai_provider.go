// File: internal/services/provider/openai_provider.go
package provider

import (
	"context"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const consultationSystemPrompt = `You are a careful medical information assistant.
- Provide general health information and self-care guidance only.
- Never state a definitive diagnosis and never give specific medication dosages.
- Encourage the user to consult a qualified healthcare provider.
- Be concise, structured, and empathetic.`

// OpenAIAdapter talks to any OpenAI-compatible completion endpoint. Each
// configured provider gets its own adapter with its own key, base URL, and
// model.
type OpenAIAdapter struct {
	cfg    ProviderConfig
	client *openai.Client
}

func NewOpenAIAdapter(cfg ProviderConfig) (*OpenAIAdapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIAdapter{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

func (a *OpenAIAdapter) Generate(ctx context.Context, message string, consultCtx map[string]string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(consultCtx)},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return "", NewCallError(a.cfg.ID, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ProviderError{Type: ErrTypeEmpty, ProviderID: a.cfg.ID, Operation: "generate", Message: "empty completion response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck lists models, which is cheap and exercises auth plus transport
// without burning completion tokens.
func (a *OpenAIAdapter) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return NewCallError(a.cfg.ID, "model listing failed", err)
	}
	return nil
}

// buildSystemPrompt folds the opaque consultation context into the system
// prompt in a stable order.
func buildSystemPrompt(consultCtx map[string]string) string {
	if len(consultCtx) == 0 {
		return consultationSystemPrompt
	}

	keys := make([]string, 0, len(consultCtx))
	for k := range consultCtx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(consultationSystemPrompt)
	b.WriteString("\n\nBackground supplied by the care platform:\n")
	for _, k := range keys {
		b.WriteString("- ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(consultCtx[k])
		b.WriteString("\n")
	}
	return b.String()
}
