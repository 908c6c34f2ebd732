package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/domain/review"
	"github.com/motoworld/storefront/internal/infrastructure/config"
)

// OpenAISummarizer implements review.Summarizer against an
// OpenAI-compatible chat completions endpoint. With no API key
// configured it reports itself disabled and callers fall back to the
// rule-based summary.
type OpenAISummarizer struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewOpenAISummarizer creates a summarizer from configuration
func NewOpenAISummarizer(cfg config.AIConfig, logger *zap.Logger) *OpenAISummarizer {
	return &OpenAISummarizer{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Enabled reports whether the service is configured
func (s *OpenAISummarizer) Enabled() bool {
	return s.apiKey != ""
}

const systemPrompt = "You summarize customer product reviews for an online motorcycle gear store. " +
	"Write a concise, balanced summary in two or three sentences covering what customers " +
	"like and dislike. Do not invent details that are not in the reviews."

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Summarize sends the most recent reviews to the completion endpoint
// and returns the generated summary text.
func (s *OpenAISummarizer) Summarize(ctx context.Context, productName string, reviews []review.Review) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("summarizer is not configured")
	}
	if len(reviews) == 0 {
		return "", fmt.Errorf("no reviews to summarize")
	}

	if len(reviews) > review.MaxPromptReviews {
		reviews = reviews[:review.MaxPromptReviews]
	}

	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(productName, reviews)},
		},
		Temperature: 0.3,
		MaxTokens:   300,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		s.logger.Warn("summary generation failed",
			zap.Int("status", resp.StatusCode),
			zap.String("model", s.model),
		)
		return "", fmt.Errorf("summary service returned %d: %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("summary service returned no choices")
	}

	summary := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("summary service returned empty content")
	}
	return summary, nil
}

// buildPrompt renders the reviews into the user message
func buildPrompt(productName string, reviews []review.Review) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n\nReviews:\n", productName)
	for i, r := range reviews {
		fmt.Fprintf(&b, "%d. (%d/5)", i+1, r.Rating)
		if r.Title != "" {
			fmt.Fprintf(&b, " %s:", r.Title)
		}
		fmt.Fprintf(&b, " %s\n", r.Comment)
	}
	b.WriteString("\nSummarize these reviews.")
	return b.String()
}

var _ review.Summarizer = (*OpenAISummarizer)(nil)
