// Package llm wraps the Gemini API behind a rate-limited helper with
// deterministic fallbacks. Callers treat an ErrUnavailable the same as any
// other generation failure: degrade to the rule-based text, never fail the
// request.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"app/config"
)

// ErrUnavailable means no API key is configured, so no call was attempted.
var ErrUnavailable = errors.New("llm: no API key configured")

const modelName = "gemini-1.5-flash"

var (
	limiterOnce sync.Once
	limiter     *rate.Limiter
)

// callLimiter is a token bucket shared by every outbound Gemini call.
func callLimiter() *rate.Limiter {
	limiterOnce.Do(func() {
		rpm := config.AppConfig.LLMRequestsPerMinute
		if rpm <= 0 {
			rpm = 30
		}
		limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	})
	return limiter
}

// Generate sends a system+user prompt pair to Gemini and returns the text
// reply. Calls are rate limited; the client is created per call, matching
// how the rest of the codebase talks to Google APIs.
func Generate(ctx context.Context, system, user string) (string, error) {
	apiKey := config.AppConfig.GeminiAPIKey
	if apiKey == "" {
		return "", ErrUnavailable
	}

	if err := callLimiter().Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return flattenResponse(resp)
}

func flattenResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content received from AI")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content received from AI")
	}
	return b.String(), nil
}

// ExtractJSON pulls the outermost JSON object out of a model reply that may
// be wrapped in markdown or prose.
func ExtractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
