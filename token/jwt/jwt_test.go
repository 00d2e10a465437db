package jwt_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/token/jwt"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	signer := jwt.NewHMACSigner([]byte("secret"), time.Minute)

	t.Run("reads claims without the key", func(t *testing.T) {
		tok, err := signer.CreateAccessToken("42")
		require.NoError(t, err)

		ti, err := jwt.Inspect(tok)
		require.NoError(t, err)
		require.Equal(t, "42", ti.Subject())
		require.Equal(t, "access", ti.TokenType)
		require.NotEmpty(t, ti.Jti)
		require.False(t, ti.Expired())
		require.WithinDuration(t, time.Now().Add(time.Minute), ti.ExpiresAt, 2*time.Second)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := jwt.Inspect("  ")
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := jwt.Inspect("abc123")
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})
}

func TestHMACSigner_Verify(t *testing.T) {
	signer := jwt.NewHMACSigner([]byte("secret"), time.Minute)

	t.Run("valid", func(t *testing.T) {
		tok, err := signer.CreateAccessToken("7")
		require.NoError(t, err)
		ti, err := signer.Verify(tok)
		require.NoError(t, err)
		require.Equal(t, "7", ti.UserID)
	})

	t.Run("wrong key", func(t *testing.T) {
		tok, err := jwt.NewHMACSigner([]byte("other"), time.Minute).CreateAccessToken("7")
		require.NoError(t, err)
		_, err = signer.Verify(tok)
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		jwt.NowTimeFunc = func() time.Time { return time.Now().Add(-time.Hour) }
		tok, err := signer.CreateAccessToken("7")
		jwt.NowTimeFunc = time.Now
		require.NoError(t, err)

		_, err = signer.Verify(tok)
		require.ErrorIs(t, err, errors.ErrTokenExpired)

		ti, err := jwt.Inspect(tok)
		require.NoError(t, err)
		require.True(t, ti.Expired())
	})
}
