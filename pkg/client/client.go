package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/forgemetrics/analytics-go/pkg/future"
)

const (
	// DefaultBaseURL is the production analytics endpoint.
	DefaultBaseURL = "https://analytics.forgemetrics.io/api/v1"

	// BaseURLEnv names the environment variable that overrides the base
	// URL. Intended for internal testing only.
	BaseURLEnv = "FORGEMETRICS_ANALYTICS_URL"

	secretKeyHeader = "X-Secret-Key"
	userAgent       = "ForgeMetrics-SDK"

	defaultTimeout = 30 * time.Second
)

// Client issues authenticated requests to the analytics service.
// It is safe for concurrent use; operations are independent and carry no
// ordering guarantee relative to each other.
type Client struct {
	platform Platform
	http     HTTPClient
	baseURL  string

	mu        sync.RWMutex
	secretKey string
}

// New creates a Client for the given platform integration. The secret key
// may be empty for a not-yet-configured install; set it later with
// SetSecretKey.
func New(platform Platform, secretKey string, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
		if env := os.Getenv(BaseURLEnv); env != "" {
			platform.Warning("Setting API URL to " + env)
			baseURL = env
		}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	transport := o.httpClient
	if transport == nil {
		transport = newHTTPClient(platform, baseURL, o.insecureTestTLS, o.timeout)
	}

	return &Client{
		platform:  platform,
		http:      transport,
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

// newHTTPClient builds the default transport. Certificate verification is
// relaxed only when explicitly requested and the target is a .test host.
func newHTTPClient(platform Platform, baseURL string, insecure bool, timeout time.Duration) *http.Client {
	c := &http.Client{Timeout: timeout}
	if !insecure {
		return c
	}
	if !isTestHost(baseURL) {
		platform.Warning("Ignoring insecure TLS mode: " + baseURL + " is not a .test host")
		return c
	}
	c.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // .test hosts only
	}
	return c
}

func isTestHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "test" || strings.HasSuffix(host, ".test")
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// SecretKey returns the current secret key, or "" when not configured.
func (c *Client) SecretKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.secretKey
}

// SetSecretKey replaces the secret key. In-flight requests may still use
// the previous value; rotation is eventually consistent.
func (c *Client) SetSecretKey(key string) {
	c.mu.Lock()
	c.secretKey = key
	c.mu.Unlock()
}

// response is the raw outcome of a completed HTTP exchange.
type response struct {
	status int
	body   []byte
}

// do issues a single request with the standard header set. A nil transport
// result is reported as *TransportError, never as a status failure.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(secretKeyHeader, c.SecretKey())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	return &response{status: resp.StatusCode, body: raw}, nil
}

// checkStatus maps a response status onto the error taxonomy. want is the
// status the operation treats as success (200, or 204 for event batches).
func (c *Client) checkStatus(resp *response, want int) error {
	switch resp.status {
	case want:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.body, &body); err == nil && body.Message != "" {
		return &ResponseError{StatusCode: resp.status, Message: body.Message}
	}
	if c.platform.Verbose() {
		c.platform.Warning("Received response: " + string(resp.body))
	}
	return &ResponseError{StatusCode: resp.status}
}

// successRequest issues a request whose 200 body carries a top-level
// success flag.
func (c *Client) successRequest(ctx context.Context, method, path string, payload any) (bool, error) {
	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return false, err
	}
	if err := c.checkStatus(resp, http.StatusOK); err != nil {
		return false, err
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return body.Success, nil
}

// PluginVersion fetches the latest published plugin build along with the
// download asset for the given platform type. No secret key is required.
func (c *Client) PluginVersion(ctx context.Context, platformType PlatformType) *future.Future[PluginInformation] {
	return future.Go(func() (PluginInformation, error) {
		resp, err := c.do(ctx, http.MethodGet, "/plugin", nil)
		if err != nil {
			return PluginInformation{}, err
		}
		if err := c.checkStatus(resp, http.StatusOK); err != nil {
			return PluginInformation{}, err
		}

		var body struct {
			Version *struct {
				Name        string `json:"name"`
				Incremental int    `json:"incremental"`
			} `json:"version"`
			Assets map[string]string `json:"assets"`
		}
		if err := json.Unmarshal(resp.body, &body); err != nil {
			return PluginInformation{}, fmt.Errorf("decode plugin response: %w", err)
		}
		if body.Version == nil {
			return PluginInformation{}, errors.New(`plugin response missing "version"`)
		}
		if body.Assets == nil {
			return PluginInformation{}, errors.New(`plugin response missing "assets"`)
		}

		return PluginInformation{
			VersionName: body.Version.Name,
			Incremental: body.Version.Incremental,
			DownloadURL: body.Assets[string(platformType)],
		}, nil
	})
}

// ServerInformation retrieves the service-side record for this server.
func (c *Client) ServerInformation(ctx context.Context) *future.Future[ServerInformation] {
	if c.SecretKey() == "" {
		return future.Failed[ServerInformation](ErrNotConfigured)
	}

	return future.Go(func() (ServerInformation, error) {
		resp, err := c.do(ctx, http.MethodGet, "/server", nil)
		if err != nil {
			return ServerInformation{}, err
		}
		if err := c.checkStatus(resp, http.StatusOK); err != nil {
			return ServerInformation{}, err
		}

		var body struct {
			Data ServerInformation `json:"data"`
		}
		if err := json.Unmarshal(resp.body, &body); err != nil {
			return ServerInformation{}, fmt.Errorf("decode server response: %w", err)
		}
		return body.Data, nil
	})
}

// TrackPlayerSession reports a finalized player session. When analytics is
// not set up or the player is excluded, no request is issued and the future
// resolves to false; neither case is an error.
func (c *Client) TrackPlayerSession(ctx context.Context, session *PlayerSession) *future.Future[bool] {
	if c.SecretKey() == "" {
		return future.Failed[bool](ErrNotFound)
	}
	if !c.platform.AnalyticsEnabled() {
		c.platform.Debug("Skipped tracking player session for " + session.Name + ": analytics is not set up")
		return future.Resolved(false)
	}
	if c.platform.PlayerExcluded(session.ID) {
		c.platform.Debug("Skipped tracking player session for " + session.Name + ": player is excluded")
		return future.Resolved(false)
	}

	c.platform.Debug(fmt.Sprintf("Tracking session for %s (%s): %s, %ds from %s",
		session.Name, session.ID, session.Type, session.DurationSeconds, session.IPAddress))

	return future.Go(func() (bool, error) {
		return c.successRequest(ctx, http.MethodGet, "/server/sessions", session)
	})
}

// CompleteServerSetup marks the server setup as finished.
func (c *Client) CompleteServerSetup(ctx context.Context) *future.Future[bool] {
	if c.SecretKey() == "" {
		return future.Failed[bool](ErrNotConfigured)
	}
	return future.Go(func() (bool, error) {
		return c.successRequest(ctx, http.MethodGet, "/server/setup", nil)
	})
}

// TrackHeartbeat reports the current online player count.
func (c *Client) TrackHeartbeat(ctx context.Context, playerCount int) *future.Future[bool] {
	if c.SecretKey() == "" {
		return future.Failed[bool](ErrNotConfigured)
	}

	payload := map[string]int{"players": playerCount}
	return future.Go(func() (bool, error) {
		return c.successRequest(ctx, http.MethodPost, "/server/heartbeat", payload)
	})
}

// SendTelemetry reports the platform-supplied telemetry payload.
func (c *Client) SendTelemetry(ctx context.Context) *future.Future[bool] {
	if c.SecretKey() == "" {
		return future.Failed[bool](ErrNotConfigured)
	}
	return future.Go(func() (bool, error) {
		return c.successRequest(ctx, http.MethodPost, "/server/telemetry", c.platform.Telemetry())
	})
}

// CountryFromIP resolves the country code for an IP address. It resolves
// to "" without error when the service reports a failed lookup.
//
// Deprecated: country resolution through the analytics API is being phased
// out; the contract of this operation will not be extended.
func (c *Client) CountryFromIP(ctx context.Context, ip string) *future.Future[string] {
	if c.SecretKey() == "" {
		return future.Failed[string](ErrNotConfigured)
	}

	return future.Go(func() (string, error) {
		resp, err := c.do(ctx, http.MethodGet, "/ip/"+ip, nil)
		if err != nil {
			return "", err
		}
		if err := c.checkStatus(resp, http.StatusOK); err != nil {
			return "", err
		}

		var body struct {
			Success     bool   `json:"success"`
			CountryCode string `json:"country_code"`
		}
		if err := json.Unmarshal(resp.body, &body); err != nil {
			return "", fmt.Errorf("decode country response: %w", err)
		}
		if !body.Success {
			return "", nil
		}
		return body.CountryCode, nil
	})
}

// SendEvents ships a batch of events. An empty batch still issues a
// request; the future resolves to true when the service accepts with 204.
func (c *Client) SendEvents(ctx context.Context, events []Event) *future.Future[bool] {
	if c.SecretKey() == "" {
		return future.Failed[bool](ErrNotFound)
	}
	if events == nil {
		// nil would serialize as JSON null instead of an array
		events = []Event{}
	}

	return future.Go(func() (bool, error) {
		resp, err := c.do(ctx, http.MethodPost, "/events", events)
		if err != nil {
			return false, err
		}
		if err := c.checkStatus(resp, http.StatusNoContent); err != nil {
			return false, err
		}
		return true, nil
	})
}
