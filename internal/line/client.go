package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yamafumi/line-mcp/internal/logging"
)

const (
	// DefaultBaseURL is the production LINE Messaging API endpoint.
	DefaultBaseURL = "https://api.line.me"

	// DefaultTimeout bounds each outbound call so a stalled upstream cannot
	// occupy a request-handling slot indefinitely.
	DefaultTimeout = 10 * time.Second

	pushPath  = "/v2/bot/message/push"
	replyPath = "/v2/bot/message/reply"

	// maxErrorBodyBytes limits how much of an error response body is carried
	// into diagnostics.
	maxErrorBodyBytes = 4096
)

// Client performs authenticated calls against the LINE Messaging API.
// It is stateless apart from the immutable token and transport settings,
// and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used for tests and private
// gateways.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the timeout for each outbound call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the given channel access token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, &LineError{
			Op:  "initialize",
			Err: fmt.Errorf("channel access token cannot be empty"),
		}
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Push sends a single text message to the given target (group or user id).
// Exactly one attempt is made per call; there is no retry or backoff.
//
// The outcome is always a well-formed SendResult. HTTP status failures and
// transport failures (DNS, connection refused, timeout) are reported in the
// Error field, never propagated as faults.
func (c *Client) Push(ctx context.Context, to, text string) SendResult {
	if to == "" {
		return SendResult{Success: false, Error: "target id cannot be empty"}
	}
	if text == "" {
		return SendResult{Success: false, Error: "message cannot be empty"}
	}

	body := pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	}

	status, respBody, err := c.post(ctx, pushPath, body)
	if err != nil {
		slog.Error("failed to send LINE message",
			logging.Operation("push"),
			logging.GroupHash(to),
			logging.Err(err))
		return SendResult{Success: false, Error: err.Error()}
	}

	if status < 200 || status >= 300 {
		detail := strings.TrimSpace(respBody)
		if detail == "" {
			detail = http.StatusText(status)
		}
		slog.Error("LINE API rejected message",
			logging.Operation("push"),
			logging.GroupHash(to),
			slog.Int("status", status))
		return SendResult{Success: false, Error: fmt.Sprintf("%d: %s", status, detail)}
	}

	// A 2xx with an unexpected body shape is still treated as success; the
	// push endpoint returns an empty object on delivery.
	slog.Info("LINE message sent",
		logging.Operation("push"),
		logging.GroupHash(to),
		logging.Status(logging.StatusSuccess))
	return SendResult{
		Success: true,
		Message: "Message sent successfully",
		GroupID: to,
	}
}

// Reply sends a single text message in response to a webhook event using
// its reply token.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	if replyToken == "" {
		return &LineError{Op: "reply", Err: fmt.Errorf("reply token cannot be empty")}
	}
	if text == "" {
		return &LineError{Op: "reply", Err: fmt.Errorf("message cannot be empty")}
	}

	body := replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	}

	status, respBody, err := c.post(ctx, replyPath, body)
	if err != nil {
		return &LineError{Op: "reply", Err: err}
	}
	if status < 200 || status >= 300 {
		detail := strings.TrimSpace(respBody)
		if detail == "" {
			detail = http.StatusText(status)
		}
		return &LineError{Op: "reply", Err: fmt.Errorf("%d: %s", status, detail)}
	}

	return nil
}

// post issues a single JSON POST with the bearer credential and returns the
// status code and the (truncated) response body.
func (c *Client) post(ctx context.Context, path string, payload any) (int, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	// The status line already arrived; report it with whatever body we got.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return resp.StatusCode, string(body), nil
}
