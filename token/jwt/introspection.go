package jwt

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/internal/utils"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenIntrospection is the subset of access-token claims the client cares about.
// The backend issues SimpleJWT tokens, which carry user_id rather than sub.
type TokenIntrospection struct {
	Sub       string    `json:"sub,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	TokenType string    `json:"token_type,omitempty"`
	Jti       string    `json:"jti,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// Expired reports whether the token is past its exp claim. Tokens without exp never expire.
func (t *TokenIntrospection) Expired() bool {
	return !t.ExpiresAt.IsZero() && !NowTimeFunc().Before(t.ExpiresAt)
}

// Subject returns sub, falling back to user_id.
func (t *TokenIntrospection) Subject() string {
	return utils.FirstNonEmpty(t.Sub, t.UserID)
}

// Inspect decodes the claims of rawToken WITHOUT verifying its signature.
// The client never holds the signing key; it only reads exp to report status.
func Inspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.ErrInvalidToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	return fromClaims(claims)
}

// Expiry returns the exp claim of rawToken, or the zero time when absent.
func Expiry(rawToken string) (time.Time, error) {
	ti, err := Inspect(rawToken)
	if err != nil {
		return time.Time{}, err
	}
	return ti.ExpiresAt, nil
}

func fromClaims(claims jwtlib.MapClaims) (*TokenIntrospection, error) {
	ti := &TokenIntrospection{
		Sub:       claimString(claims, "sub"),
		UserID:    claimString(claims, "user_id"),
		TokenType: claimString(claims, "token_type"),
		Jti:       claimString(claims, "jti"),
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: exp: %v", errors.ErrInvalidToken, err)
	}
	if exp != nil {
		ti.ExpiresAt = exp.Time
	}
	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("%w: iat: %v", errors.ErrInvalidToken, err)
	}
	if iat != nil {
		ti.IssuedAt = iat.Time
	}
	return ti, nil
}

// claimString handles both string and numeric ids (SimpleJWT emits user_id as a number).
func claimString(claims jwtlib.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
