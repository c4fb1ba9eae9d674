package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"clarityhire/internal/config"
)

// GeminiService is the structured-extraction client: bounded text in, one
// JSON draft object out. No streaming, no state across calls.
type GeminiService interface {
	ExtractResumeDraft(ctx context.Context, text string) (map[string]interface{}, error)
}

type geminiService struct {
	client        *genai.Client
	modelName     string
	timeout       time.Duration
	maxInputChars int
	promptBuilder *PromptBuilder
}

func NewGeminiService(cfg config.GeminiConfig) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:        client,
		modelName:     cfg.Model,
		timeout:       cfg.Timeout,
		maxInputChars: cfg.MaxInputChars,
		promptBuilder: NewPromptBuilder(),
	}, nil
}

// ExtractResumeDraft implements GeminiService. The input text is truncated
// to the configured character budget and each call carries an explicit
// timeout; cancelling ctx cancels the in-flight call.
func (g *geminiService) ExtractResumeDraft(ctx context.Context, text string) (map[string]interface{}, error) {
	if len(text) > g.maxInputChars {
		text = text[:g.maxInputChars]
	}

	prompt := g.promptBuilder.BuildResumeExtractionPrompt(text)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := float32(0)
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(callCtx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction: %w", err)
	}

	if resp == nil {
		return nil, fmt.Errorf("no response generated (nil response)")
	}

	body := resp.Text()
	if body == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	jsonStr := extractJSON(body)

	var draft map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &draft); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}

	return draft, nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
