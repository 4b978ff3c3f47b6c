// Package apiclient wraps the league backend's REST API: bearer token
// attachment, a single refresh-and-retry on 401, JSON encoding and decoding,
// and error messages derived from response bodies.
package apiclient

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

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultRefreshPath = "/auth/refresh"
	defaultUserAgent   = "leaguedesk"
	refreshFlightKey   = "refresh"
)

// ErrSessionExpired is returned when a token refresh fails: the refresh
// endpoint rejected the refresh token or returned no access token. Stored
// tokens are cleared. A 401 received while no refresh token is held is
// returned as the backend's *APIError and leaves the tokens untouched.
var ErrSessionExpired = errors.New("session expired")

type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Tokens      TokenStore
	RefreshPath string
	UserAgent   string
	// Now overrides the clock used for token expiry checks.
	Now func() time.Time
}

type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	tokens      TokenStore
	refreshPath string
	userAgent   string
	now         func() time.Time
	refreshes   singleflight.Group
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// New validates opts and builds a Client. A nil token store gets an empty
// in-memory store.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", base.Scheme)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore(Tokens{})
	}
	refreshPath := strings.TrimSpace(opts.RefreshPath)
	if refreshPath == "" {
		refreshPath = defaultRefreshPath
	}
	if !strings.HasPrefix(refreshPath, "/") {
		refreshPath = "/" + refreshPath
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:     base,
		httpClient:  httpClient,
		tokens:      tokens,
		refreshPath: refreshPath,
		userAgent:   userAgent,
		now:         now,
	}, nil
}

// Tokens exposes the store backing this client.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do sends one API request. body is JSON encoded when non-nil and a 2xx
// response body is decoded into out when out is non-nil. A 401 triggers at
// most one token refresh followed by one retry.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request body: %w", err)
		}
		payload = encoded
	}

	resp, usedToken, err := c.send(ctx, method, path, query, payload, true)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.canRefresh(path) {
		drainAndClose(resp)
		log.Ctx(ctx).Debug().Str("method", method).Str("path", path).Msg("Access token rejected, refreshing")
		if err := c.refresh(ctx, usedToken); err != nil {
			return err
		}
		resp, _, err = c.send(ctx, method, path, query, payload, true)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	return decodeResponse(resp, method, path, out)
}

// RefreshIfExpiring refreshes the access token when it is a JWT whose exp
// claim falls within skew of now. It reports whether a refresh happened.
func (c *Client) RefreshIfExpiring(ctx context.Context, skew time.Duration) (bool, error) {
	tokens := c.tokens.Tokens()
	if tokens.RefreshToken == "" {
		return false, nil
	}
	if tokens.AccessToken != "" {
		expiry, ok := AccessTokenExpiry(tokens.AccessToken)
		if !ok {
			return false, nil
		}
		if expiry.Sub(c.now()) > skew {
			return false, nil
		}
	}
	if err := c.refresh(ctx, tokens.AccessToken); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) canRefresh(path string) bool {
	if c.isRefreshPath(path) {
		return false
	}
	return c.tokens.Tokens().RefreshToken != ""
}

func (c *Client) isRefreshPath(path string) bool {
	return strings.TrimRight(path, "/") == strings.TrimRight(c.refreshPath, "/")
}

// refresh exchanges the refresh token for a new access token. Concurrent
// callers share one refresh call; a caller whose rejected token was already
// replaced skips the exchange and retries with the new token.
func (c *Client) refresh(ctx context.Context, rejected string) error {
	if current := c.tokens.Tokens().AccessToken; current != "" && current != rejected {
		return nil
	}
	_, err, _ := c.refreshes.Do(refreshFlightKey, func() (any, error) {
		if current := c.tokens.Tokens().AccessToken; current != "" && current != rejected {
			return nil, nil
		}
		return nil, c.exchangeRefreshToken(ctx)
	})
	return err
}

func (c *Client) exchangeRefreshToken(ctx context.Context) error {
	logger := log.Ctx(ctx)
	current := c.tokens.Tokens()
	if current.RefreshToken == "" {
		c.tokens.Clear()
		return ErrSessionExpired
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		return fmt.Errorf("error encoding refresh request: %w", err)
	}

	resp, _, err := c.send(ctx, http.MethodPost, c.refreshPath, nil, payload, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var refreshed refreshResponse
	if err := decodeResponse(resp, http.MethodPost, c.refreshPath, &refreshed); err != nil {
		logger.Warn().Err(err).Msg("Token refresh rejected")
		c.tokens.Clear()
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	if strings.TrimSpace(refreshed.AccessToken) == "" {
		logger.Warn().Msg("Token refresh returned no access token")
		c.tokens.Clear()
		return ErrSessionExpired
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = current.RefreshToken
	}
	c.tokens.SetTokens(Tokens{AccessToken: refreshed.AccessToken, RefreshToken: refreshed.RefreshToken})
	logger.Info().Msg("Access token refreshed")
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, authorize bool) (*http.Response, string, error) {
	endpoint := c.resolve(path, query)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	var accessToken string
	if authorize {
		accessToken = c.tokens.Tokens().AccessToken
		if accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+accessToken)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, accessToken, fmt.Errorf("error making request: %w", err)
	}
	log.Ctx(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request completed")
	return resp, accessToken, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func decodeResponse(resp *http.Response, method, path string, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, method, path)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
	_ = resp.Body.Close()
}

type requestIDKey struct{}

// ContextWithRequestID stores a request ID that outgoing API calls forward
// in the X-Request-ID header.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}
