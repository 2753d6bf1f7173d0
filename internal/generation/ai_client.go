package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"gameforge-server/internal/config"
)

// TextGenerator produces narrative text for a system/user prompt pair.
// Implementations wrap a specific model provider.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewTextGenerator selects the provider configured by AI_PROVIDER.
func NewTextGenerator(cfg *config.Config, logger *zap.Logger) (TextGenerator, error) {
	switch cfg.AIProvider {
	case "openai":
		return newOpenAIClient(cfg, logger), nil
	case "ollama":
		return newOllamaClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.AIProvider)
	}
}

// openAIClient talks to any OpenAI-compatible chat completion endpoint,
// including OpenRouter.
type openAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger
}

var _ TextGenerator = (*openAIClient)(nil)

func newOpenAIClient(cfg *config.Config, logger *zap.Logger) *openAIClient {
	clientConfig := openai.DefaultConfig(cfg.AIAPIKey)
	if cfg.AIBaseURL != "" {
		clientConfig.BaseURL = cfg.AIBaseURL
	}
	return &openAIClient{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.AIModel,
		maxTokens: cfg.AIMaxTokens,
		timeout:   cfg.AITimeout,
		logger:    logger.Named("OpenAIClient"),
	}
}

func (c *openAIClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	observeTextGeneration("openai", time.Since(start), err)
	if err != nil {
		c.logger.Warn("Chat completion request failed", zap.String("model", c.model), zap.Error(err))
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("Chat completion succeeded",
		zap.String("model", c.model),
		zap.Int("responseLength", len(text)),
		zap.Duration("duration", time.Since(start)))
	return text, nil
}

// ollamaClient talks to a local Ollama server.
type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ TextGenerator = (*ollamaClient)(nil)

func newOllamaClient(cfg *config.Config, logger *zap.Logger) (*ollamaClient, error) {
	baseURL, err := url.Parse(cfg.AIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL %q: %w", cfg.AIBaseURL, err)
	}
	return &ollamaClient{
		client:  api.NewClient(baseURL, http.DefaultClient),
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("OllamaClient"),
	}, nil
}

func (c *ollamaClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	req := &api.ChatRequest{
		Model:  c.model,
		Stream: &stream,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	var sb strings.Builder
	start := time.Now()
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	observeTextGeneration("ollama", time.Since(start), err)
	if err != nil {
		c.logger.Warn("Ollama chat request failed", zap.String("model", c.model), zap.Error(err))
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}

	text := strings.TrimSpace(sb.String())
	c.logger.Debug("Ollama chat succeeded",
		zap.String("model", c.model),
		zap.Int("responseLength", len(text)),
		zap.Duration("duration", time.Since(start)))
	return text, nil
}
