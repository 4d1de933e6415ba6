package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"movieapi/internal/logger"
)

const (
	DefaultBaseURL = "http://www.omdbapi.com/"
	DefaultTimeout = 15 * time.Second

	// DefaultMaxBodyBytes caps how much of an upstream body is buffered.
	DefaultMaxBodyBytes = 10 << 20
)

// Messages returned to callers in failure envelopes.
const (
	MsgFetchFailed     = "Failed to fetch movie data"
	MsgInvalidPayload  = "Invalid JSON response from API"
	MsgPayloadTooLarge = "Response from API too large"
)

var (
	ErrTransport       = errors.New("omdb transport failure")
	ErrUpstreamStatus  = errors.New("omdb upstream rejected request")
	ErrInvalidPayload  = errors.New("omdb payload is not valid json")
	ErrPayloadTooLarge = errors.New("omdb payload exceeds size limit")
)

// UpstreamError reports a completed call that returned a non-2xx status.
// Status is the status line as received, e.g. "520 Origin Error".
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

// Reason is the upstream reason phrase, falling back to the standard text
// for the code. It is empty for unknown codes sent without a phrase.
func (e *UpstreamError) Reason() string {
	code := strconv.Itoa(e.StatusCode)
	if reason := strings.TrimSpace(strings.TrimPrefix(e.Status, code)); reason != "" {
		return reason
	}
	return http.StatusText(e.StatusCode)
}

// Message is the caller facing failure text.
func (e *UpstreamError) Message() string {
	if reason := e.Reason(); reason != "" {
		return fmt.Sprintf("API error: %d %s", e.StatusCode, reason)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

func (e *UpstreamError) Error() string {
	if reason := e.Reason(); reason != "" {
		return fmt.Sprintf("omdb returned %d %s", e.StatusCode, reason)
	}
	return fmt.Sprintf("omdb returned %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamStatus
}

// Client talks to the OMDb HTTP API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	defaultTerm  string
	maxBodyBytes int64

	timeout    time.Duration
	hasTimeout bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the overall timeout of each outbound call. Zero disables it.
// It applies to a copy of the HTTP client, whichever option supplied it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// WithMaxBodyBytes changes the largest upstream body the client accepts.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithDefaultSearch changes the term used when a request names no lookup.
func WithDefaultSearch(term string) Option {
	return func(c *Client) {
		if term = strings.TrimSpace(term); term != "" {
			c.defaultTerm = term
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse omdb base url: %w", err)
	}
	c := &Client{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		baseURL:      baseURL,
		apiKey:       apiKey,
		defaultTerm:  DefaultSearchTerm,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout {
		cp := *c.httpClient
		cp.Timeout = c.timeout
		c.httpClient = &cp
	}
	return c, nil
}

// Query translates inbound parameters using the client's default search term.
func (c *Client) Query(p Params) Query {
	return BuildQuery(p, c.defaultTerm)
}

func (c *Client) endpoint(q Query, apiKey string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse omdb url: %w", err)
	}
	params := url.Values{}
	params.Set("apikey", apiKey)
	for key, vals := range q.Values {
		for _, v := range vals {
			params.Add(key, v)
		}
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// Fetch issues a single GET for q and returns the raw JSON body.
// Errors wrap ErrTransport, ErrUpstreamStatus (as *UpstreamError),
// ErrPayloadTooLarge or ErrInvalidPayload. There is no retry.
func (c *Client) Fetch(ctx context.Context, q Query) ([]byte, error) {
	target, err := c.endpoint(q, c.apiKey)
	if err != nil {
		return nil, err
	}
	log := logger.For(ctx).WithField("mode", q.Mode)
	if redacted, rerr := c.endpoint(q, "***"); rerr == nil {
		log.WithField("url", redacted).Debug("omdb.request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, scrubKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	oversized := int64(len(body)) > c.maxBodyBytes
	if oversized {
		body = body[:c.maxBodyBytes]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Debug("omdb.response")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	if oversized {
		log.WithField("limit", c.maxBodyBytes).Warn("omdb response exceeds size limit")
		return nil, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, c.maxBodyBytes)
	}

	if !json.Valid(body) {
		log.WithField("body", string(body)).Debug("omdb.response")
		return nil, ErrInvalidPayload
	}
	return body, nil
}

// scrubKey removes the credential from url errors, which embed the full URL.
func scrubKey(err error, apiKey string) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &url.Error{
			Op:  uerr.Op,
			URL: strings.ReplaceAll(uerr.URL, apiKey, "***"),
			Err: uerr.Err,
		}
	}
	return err
}
