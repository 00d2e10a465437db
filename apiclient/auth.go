package apiclient

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"golang.org/x/oauth2"
)

// Login exchanges username and password for a token pair and stores it.
func Login(ctx context.Context, r Requester, store credentials.Store, username, password string) (*oauth2.Token, error) {
	if username == "" || password == "" {
		return nil, errors.ErrInvalidCredentials
	}
	var pair TokenPair
	if err := r.Post(ctx, endpoints.Registry().Auth.Login.String(), LoginRequest{Username: username, Password: password}, &pair); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if pair.Access == "" {
		return nil, fmt.Errorf("login: %w: response has no access token", errors.ErrInvalidToken)
	}
	tok := pair.OAuth2()
	if err := credentials.Save(store, tok); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return tok, nil
}

// Logout forgets both stored tokens.
func Logout(store credentials.Store) error {
	return credentials.Clear(store)
}
