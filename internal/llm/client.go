// Package llm wraps the chat-completion API used to generate conversational
// replies. The provider is OpenAI-compatible; the base URL and model come
// from configuration so hosted open models work without code changes.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/types"
)

// ClientInterface is the completion surface consumed by the chat service.
type ClientInterface interface {
	Complete(ctx context.Context, systemPrompt string, turns []types.ChatMessage) (string, error)
}

type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

var _ ClientInterface = (*Client)(nil)

// NewClient builds a completion client. baseURL selects the provider's
// OpenAI-compatible endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   512,
		temperature: 0.4,
	}
}

// Complete runs one chat completion over the system prompt and conversation
// turns and returns the assistant's reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt string, turns []types.ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range turns {
		role := openai.ChatMessageRoleUser
		switch turn.Role {
		case types.ChatRoleAssistant:
			role = openai.ChatMessageRoleAssistant
		case types.ChatRoleSystem:
			role = openai.ChatMessageRoleSystem
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	logger.GetLogger().Debugw("Chat completion succeeded",
		"model", c.model,
		"promptTokens", resp.Usage.PromptTokens,
		"completionTokens", resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}
