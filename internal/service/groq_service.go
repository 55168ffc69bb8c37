package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codewithlokesh/intrvu-backend/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// GroqService calls Groq's OpenAI-compatible chat-completions API.
type GroqService struct {
	APIKey string
	Model  string
	client *resty.Client
}

var _ ChatModel = (*GroqService)(nil)

func NewGroqService() *GroqService {
	cfg := config.LoadGroqConfig()
	return &GroqService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: resty.New(),
	}
}

func (s *GroqService) Complete(ctx context.Context, system, user string, opts ChatOptions) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": user},
			},
			"temperature": opts.Temperature,
			"max_tokens":  opts.MaxTokens,
		}).
		Post(groqEndpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("groq API error: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	return strings.TrimSpace(content), nil
}
