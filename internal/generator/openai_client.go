package generator

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient generates text through the OpenAI chat completions API.
type OpenAIClient struct {
	model   string
	baseURL string
}

func NewOpenAIClient(model string, baseURL string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIClient{model: model, baseURL: baseURL}
}

func (c *OpenAIClient) Generate(ctx context.Context, req GenerateRequest) (*LLMResponse, error) {
	// The credential arrives per call, so the SDK client is built per call too.
	config := openai.DefaultConfig(req.APIKey)
	if c.baseURL != "" {
		config.BaseURL = c.baseURL
	}
	client := openai.NewClientWithConfig(config)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai API: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      resp.Choices[0].Message.Content,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
