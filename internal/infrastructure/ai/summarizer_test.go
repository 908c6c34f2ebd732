package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/domain/review"
	"github.com/motoworld/storefront/internal/infrastructure/config"
)

func testReviews(t *testing.T, n int) []review.Review {
	t.Helper()
	reviews := make([]review.Review, 0, n)
	for i := 0; i < n; i++ {
		r, err := review.NewReview(uuid.New(), uuid.New(), 4, "Good gear", "Does exactly what it promises")
		require.NoError(t, err)
		reviews = append(reviews, *r)
	}
	return reviews
}

func TestOpenAISummarizer_Enabled(t *testing.T) {
	disabled := NewOpenAISummarizer(config.AIConfig{}, zap.NewNop())
	assert.False(t, disabled.Enabled())

	enabled := NewOpenAISummarizer(config.AIConfig{APIKey: "sk-test"}, zap.NewNop())
	assert.True(t, enabled.Enabled())
}

func TestOpenAISummarizer_Summarize(t *testing.T) {
	t.Run("returns generated summary", func(t *testing.T) {
		var gotAuth string
		var gotBody chatRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": "Riders praise the fit and finish."}},
				},
			})
		}))
		defer srv.Close()

		s := NewOpenAISummarizer(config.AIConfig{
			APIKey:  "sk-test",
			BaseURL: srv.URL,
			Model:   "gpt-4o-mini",
			Timeout: 5 * time.Second,
		}, zap.NewNop())

		summary, err := s.Summarize(context.Background(), "Touring Jacket", testReviews(t, 3))
		require.NoError(t, err)
		assert.Equal(t, "Riders praise the fit and finish.", summary)
		assert.Equal(t, "Bearer sk-test", gotAuth)
		assert.Equal(t, "gpt-4o-mini", gotBody.Model)
		assert.Contains(t, gotBody.Messages[1].Content, "Touring Jacket")
	})

	t.Run("caps the number of reviews in the prompt", func(t *testing.T) {
		var gotBody chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": "ok"}},
				},
			})
		}))
		defer srv.Close()

		s := NewOpenAISummarizer(config.AIConfig{
			APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o-mini", Timeout: 5 * time.Second,
		}, zap.NewNop())

		_, err := s.Summarize(context.Background(), "Gloves", testReviews(t, review.MaxPromptReviews+10))
		require.NoError(t, err)
		// one numbered line per review, capped
		assert.Contains(t, gotBody.Messages[1].Content, "20. (4/5)")
		assert.NotContains(t, gotBody.Messages[1].Content, "21. (4/5)")
	})

	t.Run("surfaces service errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "rate limited", "type": "rate_limit"},
			})
		}))
		defer srv.Close()

		s := NewOpenAISummarizer(config.AIConfig{
			APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o-mini", Timeout: 5 * time.Second,
		}, zap.NewNop())

		_, err := s.Summarize(context.Background(), "Boots", testReviews(t, 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("fails fast when not configured", func(t *testing.T) {
		s := NewOpenAISummarizer(config.AIConfig{}, zap.NewNop())
		_, err := s.Summarize(context.Background(), "Boots", testReviews(t, 1))
		assert.Error(t, err)
	})
}
