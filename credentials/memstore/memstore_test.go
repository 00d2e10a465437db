package memstore_test

import (
	"testing"

	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/credentials/memstore"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestNewWithTokens(t *testing.T) {
	tests := []struct {
		name          string
		access        string
		refresh       string
		accessStored  bool
		refreshStored bool
	}{
		{name: "both", access: "abc123", refresh: "r1", accessStored: true, refreshStored: true},
		{name: "access only", access: "abc123", accessStored: true},
		{name: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memstore.NewWithTokens(tt.access, tt.refresh)

			_, err := s.Get(credentials.AccessTokenKey)
			require.Equal(t, tt.accessStored, err == nil)
			_, err = s.Get(credentials.RefreshTokenKey)
			require.Equal(t, tt.refreshStored, err == nil)
		})
	}
}

func TestMemStore_SetGetRemove(t *testing.T) {
	s := memstore.New()

	_, err := s.Get("missing")
	require.ErrorIs(t, err, errors.ErrNotFound)
	require.NoError(t, s.Remove("missing"))

	require.NoError(t, s.Set(credentials.AccessTokenKey, "abc123"))
	got, err := s.Get(credentials.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "abc123", got)

	require.NoError(t, s.Set(credentials.AccessTokenKey, "abc456"))
	got, err = s.Get(credentials.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "abc456", got)

	require.NoError(t, s.Remove(credentials.AccessTokenKey))
	_, err = s.Get(credentials.AccessTokenKey)
	require.ErrorIs(t, err, errors.ErrNotFound)
}
