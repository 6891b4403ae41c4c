package generator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// LLMClient is the text-generation capability every provider satisfies.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*LLMResponse, error)
}

// GenerateRequest carries one prompt and its output budget. APIKey is passed
// through to the provider unexamined.
type GenerateRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	APIKey      string
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderCLI       = "cli"
	ProviderMock      = "mock"
)

// ProviderConfig selects and configures an LLMClient.
type ProviderConfig struct {
	Provider       string
	AnthropicModel string
	OpenAIModel    string
	CLIPath        string
	// BaseURL overrides the provider endpoint; empty uses the SDK default.
	BaseURL string
}

// NewClient builds the LLMClient named by cfg.Provider.
func NewClient(cfg ProviderConfig) (LLMClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderAnthropic:
		log.Println("[generator] using Anthropic API:", cfg.AnthropicModel)
		return NewAPIClient(cfg.AnthropicModel, cfg.BaseURL), nil
	case ProviderOpenAI:
		log.Println("[generator] using OpenAI API:", cfg.OpenAIModel)
		return NewOpenAIClient(cfg.OpenAIModel, cfg.BaseURL), nil
	case ProviderCLI:
		log.Println("[generator] using Claude CLI at", cfg.CLIPath)
		return NewCLIClient(cfg.CLIPath), nil
	case ProviderMock:
		log.Println("[generator] using mock data")
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// ── APIClient: Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string, baseURL string) *APIClient {
	opts := []option.RequestOption{
		// Retries belong to the quiz generator; one Generate call is one billable request.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, req GenerateRequest) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: param.NewOpt(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	message, err := c.client.Messages.New(ctx, params, option.WithAPIKey(req.APIKey))
	if err != nil {
		return nil, fmt.Errorf("anthropic API: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}
