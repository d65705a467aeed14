package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/desertthunder/dcx/internal/shared"
)

const versionPath = "/ccadmin/v1/merchant/version"

// Options configures an [HTTPClient].
type Options struct {
	BaseURL           string
	ApplicationKey    string
	RequestsPerSecond float64 // <= 0 disables pacing
	Burst             int
	Timeout           time.Duration
	CacheSize         int // entries in the per-client GET memo; <= 0 disables it

	// HTTPClient is the base client used for login and API calls. Defaults to [http.DefaultClient].
	HTTPClient *http.Client
	Logger     *log.Logger
}

// HTTPClient implements [Client] against a node's admin REST API.
//
// Every request waits on a rate limiter and carries a bearer token obtained from the
// login endpoint. Absolute URLs on another host are fetched without the token. GET bodies are memoized for the lifetime of the client only, so a
// new client (one per sync session) always sees fresh content.
type HTTPClient struct {
	baseURL    string
	host       string
	httpClient *http.Client
	plain      *http.Client
	limiter    *rate.Limiter
	memo       *lru.Cache[string, []byte]
	logger     *log.Logger
}

// NewHTTPClient creates a client for opts.BaseURL. ctx bounds the login token exchanges.
func NewHTTPClient(ctx context.Context, opts Options) (*HTTPClient, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: node url is required", shared.ErrMissingConfig)
	}
	if opts.ApplicationKey == "" {
		return nil, fmt.Errorf("%w: application key is required", shared.ErrMissingCredentials)
	}

	base := opts.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid node url %q", shared.ErrInvalidConfig, opts.BaseURL)
	}
	src := newLoginTokenSource(ctx, baseURL, opts.ApplicationKey, base)

	authed := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), src)
	authed.Timeout = opts.Timeout

	plain := *base
	plain.Timeout = opts.Timeout

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := max(opts.Burst, 1)

	c := &HTTPClient{
		baseURL:    baseURL,
		host:       parsed.Host,
		httpClient: authed,
		plain:      &plain,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}

	if opts.CacheSize > 0 {
		memo, err := lru.New[string, []byte](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidConfig, err)
		}
		c.memo = memo
	}
	return c, nil
}

// Version implements [Client].
func (c *HTTPClient) Version(ctx context.Context) (string, error) {
	var resp struct {
		Version string `json:"version"`
	}
	if err := c.GetJSON(ctx, versionPath, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// GetJSON implements [Client].
func (c *HTTPClient) GetJSON(ctx context.Context, path string, out any) error {
	body, ok := c.cached(path)
	if !ok {
		var err error
		if body, err = c.get(ctx, path); err != nil {
			return err
		}
		if c.memo != nil {
			c.memo.Add(path, body)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", shared.ErrAPIRequest, path, err)
	}
	return nil
}

// Download implements [Client].
func (c *HTTPClient) Download(ctx context.Context, path string) ([]byte, error) {
	return c.get(ctx, path)
}

func (c *HTTPClient) cached(path string) ([]byte, bool) {
	if c.memo == nil {
		return nil, false
	}
	return c.memo.Get(path)
}

// target resolves path against the node. The returned client carries the bearer token only
// when the URL points at the node itself.
func (c *HTTPClient) target(path string) (string, *http.Client) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		u, err := url.Parse(path)
		if err != nil || !strings.EqualFold(u.Host, c.host) {
			return path, c.plain
		}
		return path, c.httpClient
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path, c.httpClient
}

// get performs a paced, authenticated GET and returns the body of a 2xx response.
func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	target, client := c.target(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request", "method", http.MethodGet, "path", path, "status", resp.StatusCode)

	if err := statusError(resp.StatusCode, path); err != nil {
		return nil, err
	}
	return body, nil
}

// statusError maps non-2xx status codes onto the shared error taxonomy.
func statusError(code int, path string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d for %s", shared.ErrAuthFailed, code, path)
	case code == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", shared.ErrServiceUnavailable, path)
	default:
		return fmt.Errorf("%w: status %d for %s", shared.ErrAPIRequest, code, path)
	}
}
