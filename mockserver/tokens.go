package mockserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/token/jwt"
)

// revokedTokenCache tracks access-token jtis. Issued tokens are remembered
// until they expire so that RevokeIssued can invalidate all of them at once.
type revokedTokenCache struct {
	issued  map[string]time.Time
	revoked map[string]time.Time
	mu      sync.RWMutex
}

func newRevokedTokenCache() *revokedTokenCache {
	return &revokedTokenCache{
		issued:  make(map[string]time.Time),
		revoked: make(map[string]time.Time),
	}
}

func (c *revokedTokenCache) Issued(jti string, exp time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued[jti] = exp
}

func (c *revokedTokenCache) RevokeIssued() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for jti, exp := range c.issued {
		c.revoked[jti] = exp
		delete(c.issued, jti)
	}
}

func (c *revokedTokenCache) IsRevoked(jti string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.revoked[jti]
	return exists
}

// Cleanup drops entries whose tokens have expired anyway.
func (c *revokedTokenCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := jwt.NowTimeFunc()
	for _, m := range []map[string]time.Time{c.issued, c.revoked} {
		for jti, exp := range m {
			if now.After(exp) {
				delete(m, jti)
			}
		}
	}
}

type storedRefreshToken struct {
	Token  string
	UserID string
	Iat    time.Time
}

// refreshTokenManager issues opaque refresh tokens, one per user. Creating a
// new token for a user replaces the previous one, which is how rotation works.
type refreshTokenManager struct {
	length int
	tokens map[string]*storedRefreshToken
	byUser map[string]string
	mu     sync.Mutex
}

func newRefreshTokenManager(length int) *refreshTokenManager {
	return &refreshTokenManager{
		length: length,
		tokens: make(map[string]*storedRefreshToken),
		byUser: make(map[string]string),
	}
}

func (m *refreshTokenManager) Create(userID string) (string, error) {
	tokenBytes := make([]byte, m.length)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	tokenStr := hex.EncodeToString(tokenBytes)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byUser[userID]; ok {
		delete(m.tokens, existing)
	}
	m.tokens[tokenStr] = &storedRefreshToken{Token: tokenStr, UserID: userID, Iat: jwt.NowTimeFunc()}
	m.byUser[userID] = tokenStr
	return tokenStr, nil
}

func (m *refreshTokenManager) Get(token string) (*storedRefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.tokens[token]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return rt, nil
}

// issueAccessToken signs a token for userID and remembers its jti.
func (s *Server) issueAccessToken(userID string) (string, error) {
	access, err := s.signer.CreateAccessToken(userID)
	if err != nil {
		return "", err
	}
	claims, err := jwt.Inspect(access)
	if err != nil {
		return "", err
	}
	s.revoked.Cleanup()
	s.revoked.Issued(claims.Jti, claims.ExpiresAt)
	return access, nil
}
