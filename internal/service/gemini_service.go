package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codewithlokesh/intrvu-backend/internal/config"
	"google.golang.org/genai"
)

// GeminiService is the alternative completion backend, selected with
// LLM_PROVIDER=gemini. One attempt per call, same as GroqService.
type GeminiService struct {
	Client *genai.Client
	Model  string
}

var _ ChatModel = (*GeminiService)(nil)

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	cfg := config.LoadGeminiConfig()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiService{Client: client, Model: cfg.Model}, nil
}

func (s *GeminiService) Complete(ctx context.Context, system, user string, opts ChatOptions) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens:   int32(opts.MaxTokens),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(user), genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Text()), nil
}
