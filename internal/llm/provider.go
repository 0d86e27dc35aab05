package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	temperature = 0.7
	maxTokens   = 4000
)

// Message is a single chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Provider is a client for one OpenAI-compatible chat-completions endpoint.
type Provider struct {
	Name         string
	URL          string
	Model        string
	SystemPrompt string

	apiKey string
	client *http.Client
}

// NewProvider creates a provider client with a bounded request timeout.
// systemPrompt is used when the caller does not supply one.
func NewProvider(name, url, apiKey, model, systemPrompt string, timeout time.Duration) *Provider {
	return &Provider{
		Name:         name,
		URL:          url,
		Model:        model,
		SystemPrompt: systemPrompt,
		apiKey:       apiKey,
		client:       &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the provider has credentials and can be called.
func (p *Provider) Configured() bool {
	return p.apiKey != ""
}

// Complete sends prompt to the provider and returns the generated text.
// When contextText is non-empty it is prepended to the prompt so the model
// answers against the supplied document excerpt.
func (p *Provider) Complete(ctx context.Context, prompt, contextText, systemPrompt string) (string, error) {
	if systemPrompt == "" {
		systemPrompt = p.SystemPrompt
	}
	content := prompt
	if contextText != "" {
		content = fmt.Sprintf("Context from PDF: %s\n\nQuestion: %s", contextText, prompt)
	}

	body, err := json.Marshal(chatRequest{
		Model: p.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: content},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", p.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: build request: %w", p.Name, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%s: unexpected status %d: %s", p.Name, resp.StatusCode, detail)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", p.Name, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%s: response contained no choices", p.Name)
	}
	return parsed.Choices[0].Message.Content, nil
}
