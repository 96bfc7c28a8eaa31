package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/retetar/backend/config"
)

// GeminiService calls the Gemini generateContent endpoint. Each generation is
// a single synchronous request with a bounded timeout; failures are never
// retried here.
type GeminiService struct {
	apiKey string
	apiURL string
	client *resty.Client
	logger *zap.Logger
}

// NewGeminiService creates a new GeminiService instance
func NewGeminiService(cfg *config.Config, logger *zap.Logger) *GeminiService {
	client := resty.New().
		SetTimeout(cfg.GeminiTimeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)

	return &GeminiService{
		apiKey: cfg.GeminiAPIKey,
		apiURL: cfg.GeminiAPIURL,
		client: client,
		logger: logger,
	}
}

// Configured reports whether a credential is available.
func (s *GeminiService) Configured() bool {
	return s.apiKey != ""
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// GenerateCompletion sends the prompt and returns the generated text. The
// text is taken from the first candidate's first content part; when that
// envelope shape is absent the raw body is returned instead so the normalizer
// can still take a shot at it.
func (s *GeminiService) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-goog-api-key", s.apiKey).
		SetBody(body).
		Post(s.apiURL)
	if err != nil {
		s.logger.Warn("gemini call error", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("gemini response",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode() != http.StatusOK {
		s.logger.Warn("gemini call failed", zap.Int("status", resp.StatusCode()),
			zap.String("body_preview", preview(resp.String())))
		return "", fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode())
	}

	var envelope struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(resp.Body(), &envelope); err == nil &&
		len(envelope.Candidates) > 0 && len(envelope.Candidates[0].Content.Parts) > 0 {
		return envelope.Candidates[0].Content.Parts[0].Text, nil
	}

	// Envelope shape missing; hand the whole body to the caller.
	return resp.String(), nil
}

func preview(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
