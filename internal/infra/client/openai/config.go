package ai

import (
	"time"

	"github.com/Builder-Lawyers/site-builder/pkg/env"
)

type OpenAIConfig struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int64
	timeout   time.Duration
}

func NewOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		apiKey:    env.GetEnv("OPENAI_KEY", ""),
		baseURL:   env.GetEnv("OPENAI_BASE_URL", ""),
		model:     env.GetEnv("OPENAI_MODEL", "gpt-4o-mini"),
		maxTokens: int64(env.GetEnvInt("OPENAI_TOKENS", 4000)),
		timeout:   env.GetEnvDuration("OPENAI_TIMEOUT", 60*time.Second),
	}
}

func (c OpenAIConfig) Enabled() bool {
	return c.apiKey != ""
}
