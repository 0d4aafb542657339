package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"antisocial-agent/internal/domain"
	"antisocial-agent/internal/integrations/paramstore"
)

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1/"
	DefaultModel       = "llama-3.1-8b-instant"
	DefaultTimeout     = 30 * time.Second
	DefaultTemperature = 0.7
)

var (
	// ErrMissingCredential is returned when no provider API key is configured.
	ErrMissingCredential error = &configError{msg: "llm: provider API key not configured"}
	// ErrTimeout is returned when a completion exceeds the configured bound.
	ErrTimeout error = &timeoutError{msg: "llm: completion timed out"}
)

type configError struct{ msg string }

func (e *configError) Error() string { return e.msg }

// ConfigurationError marks the error as a setup problem rather than a
// transport failure.
func (e *configError) ConfigurationError() bool { return true }

type timeoutError struct{ msg string }

func (e *timeoutError) Error() string { return e.msg }

func (e *timeoutError) Timeout() bool { return true }

// CredentialSource resolves the provider API key from an external secret
// store. *paramstore.Client satisfies it.
type CredentialSource interface {
	Token(ctx context.Context, name string) (string, error)
}

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("llm: unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client issues single, non-retried chat completions against an
// OpenAI-compatible endpoint.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client

	apiKey         string
	credentials    CredentialSource
	credentialName string

	keyMu       sync.Mutex
	resolvedKey string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/") + "/"
		}
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model = strings.TrimSpace(model); model != "" {
			c.model = model
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIKey sets a static API key. It takes precedence over a credential source.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithCredentialSource resolves the API key from src on the first completion
// that needs it. Only a successful lookup is cached; a failed one is retried
// on the next call.
func WithCredentialSource(src CredentialSource, name string) Option {
	return func(c *Client) {
		c.credentials = src
		c.credentialName = strings.TrimSpace(name)
	}
}

// NewClient creates a Client. A missing credential is not an error here; it
// surfaces as ErrMissingCredential on the first call to Complete.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		timeout:     DefaultTimeout,
		httpClient:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.credentials != nil && c.credentialName == "" {
		return nil, errors.New("llm: credential parameter name must not be empty")
	}
	return c, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

func (c *Client) resolveAPIKey(ctx context.Context) (string, error) {
	if c.apiKey != "" {
		return c.apiKey, nil
	}
	if c.credentials == nil {
		return "", ErrMissingCredential
	}

	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	if c.resolvedKey != "" {
		return c.resolvedKey, nil
	}
	key, err := c.credentials.Token(ctx, c.credentialName)
	if err != nil {
		if errors.Is(err, paramstore.ErrNotFound) || errors.Is(err, paramstore.ErrEmptyToken) {
			return "", fmt.Errorf("%w: %w", ErrMissingCredential, err)
		}
		return "", fmt.Errorf("llm: resolve credential %q: %w", c.credentialName, err)
	}
	if key = strings.TrimSpace(key); key == "" {
		return "", ErrMissingCredential
	}
	c.resolvedKey = key
	return key, nil
}

// Complete sends messages and returns the first choice's content verbatim.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (string, error) {
	apiKey, err := c.resolveAPIKey(ctx)
	if err != nil {
		return "", err
	}
	if maxTokens <= 0 {
		return "", errors.New("llm: max tokens must be positive")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithHTTPClient(c.httpClient),
		option.WithMaxRetries(0),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(messages),
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", classify(err, c.timeout)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func toParams(messages []domain.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func classify(err error, timeout time.Duration) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &HTTPStatusError{StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", ErrTimeout, timeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w after %s: %w", ErrTimeout, timeout, err)
	}
	return fmt.Errorf("llm: request failed: %w", err)
}
