package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

var ErrNotConfigured = errors.New("openai api key is not configured")

type OpenAIClient struct {
	cfg    OpenAIConfig
	client openai.Client
}

func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(config.apiKey),
		option.WithRequestTimeout(config.timeout),
		option.WithMaxRetries(1),
	}
	if config.baseURL != "" {
		opts = append(opts, option.WithBaseURL(config.baseURL))
	}
	return &OpenAIClient{
		cfg:    config,
		client: openai.NewClient(opts...),
	}
}

// GenerateJSON sends one system and one user message and asks the model for
// a JSON object. The raw reply text is returned unparsed.
func (c *OpenAIClient) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	if !c.cfg.Enabled() {
		return "", ErrNotConfigured
	}

	chatCompletion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.cfg.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxCompletionTokens: param.Opt[int64]{Value: c.cfg.maxTokens},
		N:                   param.Opt[int64]{Value: 1},
		Temperature:         param.Opt[float64]{Value: 0.7},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("err requesting chat completion, %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	choice := chatCompletion.Choices[0]
	slog.Debug("chat completion finished", "model", chatCompletion.Model,
		"finishReason", choice.FinishReason, "totalTokens", chatCompletion.Usage.TotalTokens)
	if choice.FinishReason == "length" {
		return "", errors.New("reply was cut off at the token limit")
	}
	return choice.Message.Content, nil
}
