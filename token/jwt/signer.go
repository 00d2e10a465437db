package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
)

// HMACSigner issues and verifies HS256 access tokens. It backs the mock HRMS
// server; the client itself only ever inspects tokens.
type HMACSigner struct {
	secret []byte
	expiry time.Duration
}

func NewHMACSigner(secret []byte, accessTokenExpiry time.Duration) *HMACSigner {
	if accessTokenExpiry <= 0 {
		accessTokenExpiry = 5 * time.Minute
	}
	return &HMACSigner{secret: secret, expiry: accessTokenExpiry}
}

// CreateAccessToken signs a SimpleJWT-shaped access token for userID.
func (s *HMACSigner) CreateAccessToken(userID string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"token_type": "access",
		"user_id":    userID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.expiry).Unix(),
		"jti":        uuid.New().String(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the token's claims.
func (s *HMACSigner) Verify(rawToken string) (*TokenIntrospection, error) {
	token, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwtlib.WithTimeFunc(NowTimeFunc), jwtlib.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken
	}
	return fromClaims(claims)
}
