// Package interceptor provides an API client that renews the session on its own.
//
// A request answered with 401 is retried once after the access token has been
// refreshed, provided a refresh token is stored. Concurrent 401s share a single
// refresh call (see token/refresh). When the refresh fails every waiting
// request gets a *SessionExpiredError, both stored tokens are removed and the
// configured Redirector is sent to the login route.
package interceptor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/internal/config"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/token/refresh"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

var _ apiclient.Requester = (*Client)(nil)

// Redirector navigates the user to route once the session cannot be renewed.
type Redirector func(route string)

type Client struct {
	baseURL     string
	http        *http.Client
	store       credentials.Store
	policy      apiclient.BodyPolicy
	logger      zerolog.Logger
	coordinator *refresh.Coordinator
	redirect    Redirector
	loginRoute  string
	noRefresh   map[string]struct{}

	refreshTimeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func WithBodyPolicy(p apiclient.BodyPolicy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithRedirector sets the login navigation hook.
func WithRedirector(r Redirector) Option {
	return func(c *Client) {
		c.redirect = r
	}
}

func WithLoginRoute(route string) Option {
	return func(c *Client) {
		if route != "" {
			c.loginRoute = route
		}
	}
}

// WithRefreshTimeout bounds the refresh call. Ignored when WithCoordinator is used.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.refreshTimeout = d
	}
}

// WithCoordinator shares refresh state between clients that use the same store.
func WithCoordinator(co *refresh.Coordinator) Option {
	return func(c *Client) {
		c.coordinator = co
	}
}

// New creates a client. Each client owns its refresh state unless one is shared
// through WithCoordinator.
func New(baseURL string, store credentials.Store, opts ...Option) *Client {
	ep := endpoints.Registry()
	c := &Client{
		baseURL:        baseURL,
		http:           &http.Client{},
		store:          store,
		policy:         apiclient.AnyVerbMultipart,
		logger:         log.Logger,
		loginRoute:     config.DefaultLoginRoute,
		refreshTimeout: config.DefaultRefreshTimeout,
		noRefresh: map[string]struct{}{
			ep.Auth.Login.String():   {},
			ep.Auth.Refresh.String(): {},
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.coordinator == nil {
		c.coordinator = refresh.NewCoordinator(c.refreshTimeout)
	}
	if c.redirect == nil {
		c.redirect = func(route string) {
			c.logger.Warn().Str("route", route).Msg("Session expired, login required")
		}
	}
	return c
}

// NewFromConfig wires base URL, refresh timeout and login route from cfg.
func NewFromConfig(cfg config.Config, store credentials.Store, opts ...Option) *Client {
	base := []Option{
		WithRefreshTimeout(cfg.GetRefreshTimeout()),
		WithLoginRoute(cfg.GetLoginRoute()),
	}
	if t := cfg.GetHTTPTimeout(); t > 0 {
		base = append(base, WithHTTPClient(&http.Client{Timeout: t}))
	}
	return New(cfg.GetBaseURL(), store, append(base, opts...)...)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Coordinator exposes the refresh state, mainly for diagnostics.
func (c *Client) Coordinator() *refresh.Coordinator {
	return c.coordinator
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, data, out any) error {
	return c.Do(ctx, http.MethodPost, path, data, out)
}

func (c *Client) Put(ctx context.Context, path string, data, out any) error {
	return c.Do(ctx, http.MethodPut, path, data, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	return apiclient.Login(ctx, c, c.store, username, password)
}

func (c *Client) Logout() error {
	return apiclient.Logout(c.store)
}

// Do sends one request, renewing the session and retrying once on 401.
func (c *Client) Do(ctx context.Context, method, path string, data, out any) error {
	body, err := c.policy.Encode(method, data)
	if err != nil {
		return err
	}
	token, err := apiclient.StoredToken(c.store)
	if err != nil {
		return err
	}

	err = c.send(ctx, method, path, body, token, out)
	if !apiclient.IsUnauthorized(err) || !c.mayRefresh(path) {
		return err
	}

	refreshToken, rerr := credentials.RefreshToken(c.store)
	if rerr != nil {
		return rerr
	}
	if refreshToken == "" {
		return err
	}

	// A refresh that settled while this request was in flight has already
	// stored a newer token, so there is nothing left to renew.
	if current, cerr := credentials.AccessToken(c.store); cerr == nil && current != "" && current != token {
		return c.send(ctx, method, path, body, current, out)
	}

	newToken, rerr := c.coordinator.Do(ctx, c.refreshAccessToken)
	if rerr != nil {
		return rerr
	}
	// Retried requests that still get 401 are returned as is.
	return c.send(ctx, method, path, body, newToken, out)
}

func (c *Client) mayRefresh(path string) bool {
	_, skip := c.noRefresh[path]
	return !skip
}

func (c *Client) send(ctx context.Context, method, path string, body *apiclient.Body, token string, out any) error {
	fullURL := apiclient.JoinURL(c.baseURL, path)
	req, err := apiclient.NewRequest(ctx, method, fullURL, body, token)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Err(err).Str("method", method).Str("url", fullURL).Msg("API request failed")
		return err
	}
	err = apiclient.ReadResponse(resp, out)
	if err != nil && apiclient.StatusCode(err) == 0 {
		c.logger.Err(err).Str("method", method).Str("url", fullURL).Msg("API response could not be decoded")
	}
	return err
}

// refreshAccessToken runs as the coordinator's leader. It persists the new token
// before returning so that released requests never see the old one.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	c.logger.Debug().Msg("Refreshing access token")

	access, err := c.exchangeRefreshToken(ctx)
	if err != nil {
		c.expireSession(err)
		return "", &SessionExpiredError{Cause: err}
	}

	c.logger.Debug().Msg("Access token refreshed")
	return access, nil
}

func (c *Client) exchangeRefreshToken(ctx context.Context) (string, error) {
	refreshToken, err := credentials.RefreshToken(c.store)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		return "", errors.ErrNoRefreshToken
	}

	body, err := apiclient.PostOnlyMultipart.Encode(http.MethodPost, apiclient.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", err
	}
	fullURL := apiclient.JoinURL(c.baseURL, endpoints.Registry().Auth.Refresh.String())
	req, err := apiclient.NewRequest(ctx, http.MethodPost, fullURL, body, "")
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	var pair apiclient.TokenPair
	if err := apiclient.ReadResponse(resp, &pair); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrRefreshFailed, err)
	}
	if pair.Access == "" {
		return "", fmt.Errorf("%w: response has no access token", errors.ErrRefreshFailed)
	}
	if err := credentials.Save(c.store, pair.OAuth2()); err != nil {
		return "", err
	}
	return pair.Access, nil
}

func (c *Client) expireSession(cause error) {
	c.logger.Warn().Err(cause).Msg("Token refresh failed, clearing credentials")
	if err := credentials.Clear(c.store); err != nil {
		c.logger.Err(err).Msg("Failed to clear credentials")
	}
	c.redirect(c.loginRoute)
}
