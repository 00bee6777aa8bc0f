package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/ports"
)

// GroqGenerator produces product summaries via the Groq chat completions
// API in JSON mode.
type GroqGenerator struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewGroqGenerator creates a generator for the given model.
func NewGroqGenerator(apiKey, model, baseURL string) ports.SummaryGenerator {
	return &GroqGenerator{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
	}
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// modelOutput is the JSON object the model is instructed to return.
type modelOutput struct {
	EnhancedTitle       string `json:"enhancedTitle"`
	EnhancedDescription string `json:"enhancedDescription"`
}

const systemPrompt = "You are an e-commerce copywriter. Given a product title and description, " +
	"return a JSON object with exactly two fields: \"enhancedTitle\", a punchier version of the " +
	"title under 70 characters, and \"enhancedDescription\", a compelling 2-3 sentence product " +
	"description. Return only the JSON object."

// Generate makes one completion call. The enhanced description is mandatory;
// a missing enhanced title falls back to the input title.
func (g *GroqGenerator) Generate(ctx context.Context, title, description string) (*domain.GeneratedSummary, error) {
	reqBody := chatCompletionRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Title: %s\nDescription: %s", title, description)},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	}
	reqBody.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &domain.GenerationError{Reason: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.GenerationError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &domain.GenerationError{Reason: "completion request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GenerationError{Reason: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.GenerationError{
			Reason: "completion request",
			Err:    fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody),
		}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, &domain.GenerationError{Reason: "decode response", Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &domain.GenerationError{Reason: "empty completion"}
	}

	var out modelOutput
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &out); err != nil {
		return nil, &domain.GenerationError{Reason: "malformed model output", Err: err}
	}
	if out.EnhancedDescription == "" {
		return nil, &domain.GenerationError{Reason: "model output missing enhanced description"}
	}
	if out.EnhancedTitle == "" {
		out.EnhancedTitle = title
	}

	return &domain.GeneratedSummary{
		EnhancedTitle:       out.EnhancedTitle,
		EnhancedDescription: out.EnhancedDescription,
		OriginalTitle:       title,
		OriginalDescription: description,
	}, nil
}
