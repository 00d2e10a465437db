// Package apiclient is the thin fetch-style client: it builds URLs, attaches the
// stored bearer token, encodes bodies and turns non-2xx responses into errors.
// It does not retry, time out or handle 401 itself; see package interceptor
// for a client that renews the session transparently.
package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

var _ Requester = (*Client)(nil)

type Client struct {
	baseURL string
	http    *http.Client
	store   credentials.Store
	policy  BodyPolicy
	logger  zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient supplies a custom HTTP client.
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

// WithBodyPolicy overrides the per-verb multipart policy.
func WithBodyPolicy(p BodyPolicy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// New creates a client for baseURL reading its bearer token from store.
func New(baseURL string, store credentials.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		store:   store,
		policy:  PostOnlyMultipart,
		logger:  log.Logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends a *Form as multipart and anything else as JSON.
func (c *Client) Post(ctx context.Context, path string, data, out any) error {
	return c.do(ctx, http.MethodPost, path, data, out)
}

// Put always JSON-encodes data, forms included.
func (c *Client) Put(ctx context.Context, path string, data, out any) error {
	if _, ok := data.(*Form); ok && !c.policy.MultipartVerbs[http.MethodPut] {
		c.logger.Warn().Str("path", path).Msg("PUT does not send multipart forms; form is JSON-encoded")
	}
	return c.do(ctx, http.MethodPut, path, data, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	return Login(ctx, c, c.store, username, password)
}

func (c *Client) Logout() error {
	return Logout(c.store)
}

// do returns transport and decode errors unchanged after logging them.
func (c *Client) do(ctx context.Context, method, path string, data, out any) error {
	fullURL := JoinURL(c.baseURL, path)
	logEvent := func(err error) {
		c.logger.Err(err).Str("method", method).Str("url", fullURL).Msg("API request failed")
	}

	body, err := c.policy.Encode(method, data)
	if err != nil {
		logEvent(err)
		return err
	}
	token, err := StoredToken(c.store)
	if err != nil {
		logEvent(err)
		return err
	}
	req, err := NewRequest(ctx, method, fullURL, body, token)
	if err != nil {
		logEvent(err)
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logEvent(err)
		return err
	}
	if err := ReadResponse(resp, out); err != nil {
		var herr *HTTPError
		if errors.As(err, &herr) {
			c.logger.Debug().Int("status", herr.StatusCode).Str("method", method).Str("url", fullURL).Msg("API request returned error status")
		} else {
			logEvent(err)
		}
		return err
	}
	return nil
}
