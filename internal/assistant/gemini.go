// Package assistant talks to the Gemini generateContent REST endpoint.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/terraincognita07/ovira/internal/logger"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	defaultMaxRetries = 2
	maxResponseBytes  = 1 << 20
)

var ErrEmptyResponse = errors.New("assistant returned no text")

type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithRetries(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.backoff = backoff
	}
}

func New(apiKey string, model string, log *logger.Logger, options ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = logger.NewNop()
	}

	client := &Client{
		log:        log,
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: defaultMaxRetries,
		backoff:    500 * time.Millisecond,
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// GenerateText sends a single-turn prompt and joins the text parts of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var response generateResponse
	if err := c.do(ctx, "/models/"+c.model+":generateContent", request, &response); err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, candidatePart := range response.Candidates[0].Content.Parts {
		text.WriteString(candidatePart.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}

func (c *Client) do(ctx context.Context, path string, body any, out any) error {
	backoff := c.backoff
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if decodeErr := json.Unmarshal(raw, out); decodeErr != nil {
				return fmt.Errorf("gemini decode error: %w", decodeErr)
			}
			return nil
		}

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || !httpErr.retryable() || attempt >= c.maxRetries {
			return err
		}

		c.log.Warn("Gemini request retrying",
			"model", c.model,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"status", httpErr.StatusCode,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}

func (c *Client) doOnce(ctx context.Context, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}
