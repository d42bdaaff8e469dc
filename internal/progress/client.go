package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/apperr"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/storage"
)

// UserHeader carries the climber id on profile and premium requests.
const UserHeader = "X-User-ID"

// Client records progress through the HTTP API.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts int
	backoff  time.Duration
	logger   *log.Logger
	newID    func() string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRetries sets how many times a request is retried after a transient
// failure, and the first backoff delay.
func WithRetries(n int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = max(0, n) + 1
		c.backoff = backoff
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 5 * time.Second},
		attempts: 4,
		backoff:  250 * time.Millisecond,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "progress-client",
		}),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Recorder = (*Client)(nil)

// Complete posts a completion. Every completion carries an event id, so a
// retried post that already reached the server is not counted twice.
func (c *Client) Complete(ctx context.Context, comp Completion) (*Receipt, error) {
	if comp.EventID == "" {
		comp.EventID = c.newID()
	}
	var r Receipt
	if err := c.do(ctx, http.MethodPost, "/api/game-progress/complete", "", comp, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Summary fetches a climber's progress.
func (c *Client) Summary(ctx context.Context, userID string) (*Summary, error) {
	var s Summary
	if err := c.do(ctx, http.MethodGet, "/api/game-progress/"+url.PathEscape(userID), "", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LevelStatus fetches one level of a climber's progress.
func (c *Client) LevelStatus(ctx context.Context, userID, levelID string) (LevelStatus, error) {
	var st LevelStatus
	path := "/api/game-progress/" + url.PathEscape(userID) + "/" + url.PathEscape(levelID)
	err := c.do(ctx, http.MethodGet, path, "", nil, &st)
	return st, err
}

// Reset deletes a climber's progress and returns how many levels were
// forgotten.
func (c *Client) Reset(ctx context.Context, userID string) (int64, error) {
	var out struct {
		Removed int64 `json:"removed"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/game-progress/"+url.PathEscape(userID), "", nil, &out)
	return out.Removed, err
}

// Profile fetches the climber's profile.
func (c *Client) Profile(ctx context.Context, userID string) (storage.User, error) {
	var u storage.User
	err := c.do(ctx, http.MethodGet, "/api/user/profile", userID, nil, &u)
	return u, err
}

// ActivatePremium flags the climber as premium.
func (c *Client) ActivatePremium(ctx context.Context, userID string) (storage.User, error) {
	var u storage.User
	err := c.do(ctx, http.MethodPost, "/api/premium/activate", userID, nil, &u)
	return u, err
}

func (c *Client) do(ctx context.Context, method, path, userID string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return apperr.Wrap(apperr.CodeInvalidInput, err, "encode request")
		}
	}

	onRetry := func(attempt int, err error) {
		c.logger.Warn("progress request failed, retrying", "method", method, "path", path, "attempt", attempt, "error", err)
	}
	return retry(ctx, c.attempts, c.backoff, onRetry, func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return apperr.Wrap(apperr.CodeInvalidInput, err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if userID != "" {
			req.Header.Set(UserHeader, userID)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &retryableError{apperr.Wrap(apperr.CodeNetwork, err, "%s %s", method, path)}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return &retryableError{apperr.Wrap(apperr.CodeNetwork, err, "read response")}
		}

		if resp.StatusCode >= 400 {
			apiErr := decodeError(resp.StatusCode, data)
			if resp.StatusCode >= 500 {
				return &retryableError{apiErr}
			}
			return apiErr
		}
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return apperr.Wrap(apperr.CodeInternal, err, "decode response")
		}
		return nil
	})
}

func decodeError(status int, data []byte) *apperr.Error {
	var b apperr.Body
	if err := json.Unmarshal(data, &b); err != nil || b.Code == "" {
		return apperr.New(apperr.CodeInternal, "unexpected status %d: %s", status, strings.TrimSpace(string(data)))
	}
	return apperr.FromBody(b)
}

// String identifies the client in logs.
func (c *Client) String() string {
	return fmt.Sprintf("progress client %s", c.baseURL)
}
