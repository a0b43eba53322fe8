package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	appErrors "github.com/taleemtrack/taleemtrack-cli/pkg/errors"
)

const sessionsPath = "/setup/academic-sessions"

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function into a TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Client issues requests against the TaleemTrack REST backend. It is pure
// request/response: no caching, no retries, no state beyond configuration.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource wires the bearer token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient constructs a Client rooted at baseURL (e.g.
// "http://localhost:8080/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates against the auth endpoint. Credential failures come
// back as typed errors for the auth service to surface.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListSessions fetches the full academic-session collection in server order.
func (c *Client) ListSessions(ctx context.Context) ([]models.AcademicSession, error) {
	var res []models.AcademicSession
	if err := c.do(ctx, http.MethodGet, sessionsPath, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetSession fetches a single session by ID.
func (c *Client) GetSession(ctx context.Context, id int64) (*models.AcademicSession, error) {
	var res models.AcademicSession
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", sessionsPath, id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCurrentSession fetches the session flagged current. A backend with no
// current session answers 404, surfaced as ErrNotFound.
func (c *Client) GetCurrentSession(ctx context.Context) (*models.AcademicSession, error) {
	var res models.AcademicSession
	if err := c.do(ctx, http.MethodGet, sessionsPath+"/current", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateSession creates a new academic session.
func (c *Client) CreateSession(ctx context.Context, req models.SessionRequest) (*models.AcademicSession, error) {
	var res models.AcademicSession
	if err := c.do(ctx, http.MethodPost, sessionsPath, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSession replaces a session's mutable fields.
func (c *Client) UpdateSession(ctx context.Context, id int64, req models.SessionRequest) (*models.AcademicSession, error) {
	var res models.AcademicSession
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", sessionsPath, id), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetCurrentSession flags a session as current, returning the updated record.
func (c *Client) SetCurrentSession(ctx context.Context, id int64) (*models.AcademicSession, error) {
	var res models.AcademicSession
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/set-current", sessionsPath, id), struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", sessionsPath, id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "cannot reach the TaleemTrack server")
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", reqID))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode response body")
	}
	return nil
}

// decodeError maps an HTTP error response onto the typed error taxonomy,
// keeping the server's message when the body carries one.
func decodeError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var wire struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(payload, &wire)

	message := wire.Message
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	code := wire.Code
	if code == "" {
		code = codeForStatus(resp.StatusCode)
	}

	return appErrors.New(code, resp.StatusCode, message)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return appErrors.ErrNotFound.Code
	case http.StatusUnauthorized:
		return appErrors.ErrUnauthorized.Code
	case http.StatusForbidden:
		return appErrors.ErrForbidden.Code
	case http.StatusConflict:
		return appErrors.ErrConflict.Code
	case http.StatusBadRequest:
		return appErrors.ErrValidation.Code
	default:
		return appErrors.ErrInternal.Code
	}
}
