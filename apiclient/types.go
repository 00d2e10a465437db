package apiclient

import (
	"context"

	"golang.org/x/oauth2"
)

// Requester is the verb surface shared by the fetch-style client and the
// interceptor client. Services depend on this, not on a concrete client.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, data, out any) error
	Put(ctx context.Context, path string, data, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Page is the backend's paginated list envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body of the token refresh endpoint.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenPair is what the login and refresh endpoints answer with. Refresh is
// empty on refresh responses unless the backend rotates refresh tokens.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func (p TokenPair) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  p.Access,
		RefreshToken: p.Refresh,
		TokenType:    "Bearer",
	}
}
