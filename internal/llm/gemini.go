package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/sharad-mishra/universal-price-tool/internal/model"
)

// Gemini implements TextGenerator on the Google Generative AI SDK.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    zerolog.Logger
}

// NewGemini creates a Gemini client for the given model name.
func NewGemini(ctx context.Context, apiKey, modelName string, log zerolog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    log.With().Str("component", "gemini").Str("model", modelName).Logger(),
	}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini: %w: empty response", model.ErrUpstream)
	}
	return sb.String(), nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// classifyError wraps SDK errors with the sentinel matching their retry class.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini: %w: %s", model.MapHTTPStatusToError(apiErr.Code), apiErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini: %w: %v", model.ErrTimeout, err)
	}
	// Some transport paths surface status codes only in the message text.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"):
		return fmt.Errorf("gemini: %w: %v", model.ErrRateLimit, err)
	case strings.Contains(msg, "503"):
		return fmt.Errorf("gemini: %w: %v", model.ErrServiceUnavailable, err)
	}
	return fmt.Errorf("gemini: %w: %v", model.ErrUpstream, err)
}
