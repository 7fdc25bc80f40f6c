package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"roomassistant/internal/logging"
	"roomassistant/internal/session"
)

// Method selects how an action travels to the endpoint. Read-only actions
// use GET; actions with side effects use POST.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// The POST body is JSON but declared text/plain; the backend's dispatch
// expects exactly this content type and rejects application/json.
const postContentType = "text/plain;charset=utf-8"

// Envelope is the backend response shape shared by every action.
type Envelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Data     json.RawMessage  `json:"data,omitempty"`
	User     *session.Session `json:"user,omitempty"`
	URL      string           `json:"url,omitempty"`
	ClientID string           `json:"clientId,omitempty"`
}

// Err returns an application error when the envelope reports success=false.
func (e Envelope) Err() error {
	if e.Success {
		return nil
	}
	return newApplicationError(e.Message)
}

// Caller is the call contract flow components depend on. *Client satisfies
// it; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, action string, params map[string]string, method Method) (Envelope, error)
}

// Client issues calls against the single RPC endpoint. It holds no state
// beyond its configuration; retry policy belongs to callers.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes the gateway client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout; a hung request
// simply stays in flight.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a gateway client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) *Client {
	client := &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "gateway")
	return client
}

// Call sends one action with a flat parameter map and decodes the response
// envelope. The raw body is parsed as JSON no matter the status code; a
// body that does not parse fails with ErrUnexpectedResponse carrying a
// truncated snippet, the designed defense against the backend returning an
// HTML error page disguised as a 200.
func (c *Client) Call(ctx context.Context, action string, params map[string]string, method Method) (Envelope, error) {
	correlationID, ok := logging.CorrelationIDFromContext(ctx)
	if !ok {
		correlationID = uuid.NewString()
	}
	logger := c.logger.With(
		logging.String(logging.FieldAction, action),
		logging.String(logging.FieldCorrelationID, correlationID))

	req, err := c.buildRequest(ctx, action, params, method)
	if err != nil {
		return Envelope{}, newTransportError(err)
	}
	req.Header.Set("X-Request-ID", correlationID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed",
			logging.String(logging.FieldEventType, "gateway_transport_failure"),
			logging.Error(err))
		return Envelope{}, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, newTransportError(err)
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Warn("response body is not JSON",
			logging.String(logging.FieldEventType, "gateway_unexpected_response"),
			logging.Int("status", resp.StatusCode),
			logging.String("body_snippet", Snippet(string(body))))
		return Envelope{}, newUnexpectedResponseError(body)
	}

	logger.Debug("call completed",
		logging.Bool("success", envelope.Success),
		logging.Duration("elapsed", time.Since(started)))
	return envelope, nil
}

func (c *Client) buildRequest(ctx context.Context, action string, params map[string]string, method Method) (*http.Request, error) {
	switch method {
	case MethodGet:
		query := url.Values{}
		query.Set("action", action)
		for key, value := range params {
			query.Set(key, value)
		}
		target := c.endpoint
		if strings.Contains(target, "?") {
			target += "&" + query.Encode()
		} else {
			target += "?" + query.Encode()
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	default:
		payload := make(map[string]string, len(params)+1)
		for key, value := range params {
			payload[key] = value
		}
		payload["action"] = action
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", postContentType)
		return req, nil
	}
}
