// Package httpapi implements the assessment gateway over the remote REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/example/assess/internal/ctxutil"
	"github.com/example/assess/internal/version"
)

// DefaultTimeout bounds every request when the config leaves it unset.
const DefaultTimeout = 30 * time.Second

// Config configures the REST client.
//
// When ClientID, ClientSecret and TokenURL are all set the client runs the
// OAuth2 client-credentials flow. Otherwise a non-empty Token is sent as a
// static bearer token.
type Config struct {
	BaseURL      string
	Token        string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration

	// HTTPClient replaces the transport; its auth is left untouched.
	HTTPClient *http.Client
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client talks to the assessment REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	h := cfg.HTTPClient
	if h == nil {
		h = newAuthClient(cfg)
		h.Timeout = timeout
	}

	return &Client{baseURL: base, http: h}, nil
}

func newAuthClient(cfg Config) *http.Client {
	ctx := context.Background()
	if cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		return cc.Client(ctx)
	}
	if cfg.Token != "" {
		return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}))
	}
	return &http.Client{}
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	// path segments are already escaped
	target := c.baseURL.String() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	requestID := ctxutil.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Message:    errorMessage(res.Body),
		}
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body if present.
func errorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		return body.Message
	}
	return ""
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
