package credentials

import (
	stderrors "errors"
	"fmt"

	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/token/jwt"
	"golang.org/x/oauth2"
)

// AccessToken returns the stored access token, or "" when none is stored.
func AccessToken(s Store) (string, error) {
	return optional(s, AccessTokenKey)
}

// RefreshToken returns the stored refresh token, or "" when none is stored.
func RefreshToken(s Store) (string, error) {
	return optional(s, RefreshTokenKey)
}

// SetAccessToken overwrites only the access token, leaving the refresh token intact.
func SetAccessToken(s Store, access string) error {
	if err := s.Set(AccessTokenKey, access); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	return nil
}

// Load returns the stored pair as an oauth2.Token. Expiry is taken from the
// access token's exp claim when it can be decoded.
func Load(s Store) (*oauth2.Token, error) {
	access, err := AccessToken(s)
	if err != nil {
		return nil, err
	}
	if access == "" {
		return nil, errors.ErrNoAccessToken
	}
	refresh, err := RefreshToken(s)
	if err != nil {
		return nil, err
	}

	tok := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}
	if exp, err := jwt.Expiry(access); err == nil {
		tok.Expiry = exp
	}
	return tok, nil
}

// Save persists the pair. An empty refresh token leaves the stored one untouched,
// which is what a non-rotating refresh response looks like.
func Save(s Store, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.ErrNoAccessToken
	}
	if err := SetAccessToken(s, tok.AccessToken); err != nil {
		return err
	}
	if tok.RefreshToken != "" {
		if err := s.Set(RefreshTokenKey, tok.RefreshToken); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}
	return nil
}

// Clear removes both tokens. Both removals are attempted even if one fails.
func Clear(s Store) error {
	return stderrors.Join(s.Remove(AccessTokenKey), s.Remove(RefreshTokenKey))
}

func optional(s Store, key string) (string, error) {
	v, err := s.Get(key)
	if errors.Is(err, errors.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}
