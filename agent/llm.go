package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"deckgen/config"
)

// Completer is the single contract every pipeline stage has on the LLM:
// prompt text in, completion text out. Implementations are fallible,
// latency-bearing and non-deterministic; callers must repair or fall back
// rather than trust the shape of the response.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLMClient is the eino-backed Completer used in production.
type LLMClient struct {
	chatModel model.BaseChatModel
	detailed  bool
	log       func(string)
}

// NewLLMClient builds a chat model from the configured provider. "OpenAI" and
// "OpenAI-Compatible" both go through the OpenAI client; compatible providers
// differ only in BaseURL.
func NewLLMClient(cfg config.Config, logFunc func(string)) (*LLMClient, error) {
	if cfg.APIKey == "" && cfg.LLMProvider != "OpenAI-Compatible" {
		return nil, fmt.Errorf("API key not configured, set DECKGEN_API_KEY or the config file")
	}

	modelCfg := &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.ModelName,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelCfg.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(context.Background(), modelCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &LLMClient{
		chatModel: chatModel,
		detailed:  cfg.DetailedLog,
		log:       logFunc,
	}, nil
}

func (c *LLMClient) logf(format string, args ...interface{}) {
	if c.log != nil {
		c.log(fmt.Sprintf(format, args...))
	}
}

// Complete sends a system+user message pair and returns the completion text.
func (c *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	msgs := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	if c.detailed {
		c.logf("[LLM] request: %s", user)
	}

	resp, err := c.chatModel.Generate(ctx, msgs)
	if err != nil {
		c.logf("[LLM] call failed: %v", err)
		return "", err
	}

	if c.detailed {
		c.logf("[LLM] response: %s", resp.Content)
	}
	return resp.Content, nil
}
