package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Generation parameters, matching the production tuning.
const (
	temperature = 0.2
	maxTokens   = 1024
	topP        = 1
)

// User-facing failure messages per category.
const (
	msgRateLimited = "Too many requests. Please slow down and try again in a moment."
	msgTimeout     = "Server is busy. Please try again."
	msgAuth        = "LLM connection error. Please contact support."
	msgUnknown     = "Unable to generate response."
)

// GroqClient is a Completer backed by Groq's OpenAI-compatible chat
// completion endpoint.
type GroqClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewGroqClient builds a client for the given API key, base URL and model.
func NewGroqClient(apiKey, baseURL, model string, timeout time.Duration) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &GroqClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Complete sends the message sequence and returns the raw reply text.
func (g *GroqClient) Complete(ctx context.Context, messages []Message) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}

	if len(rsp.Choices) == 0 || rsp.Choices[0].Message.Content == "" {
		return "", &UpstreamError{Category: CategoryUnknown, Message: msgUnknown, Err: errors.New("empty completion")}
	}

	return rsp.Choices[0].Message.Content, nil
}

// classify maps transport and API errors onto the upstream taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Category: CategoryTimeout, Message: msgTimeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return &UpstreamError{Category: CategoryRateLimited, Message: msgRateLimited, Err: err}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &UpstreamError{Category: CategoryAuth, Message: msgAuth, Err: err}
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return &UpstreamError{Category: CategoryTimeout, Message: msgTimeout, Err: err}
		}
	}

	return &UpstreamError{Category: CategoryUnknown, Message: msgUnknown, Err: fmt.Errorf("create chat completion: %w", err)}
}
