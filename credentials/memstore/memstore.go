package memstore

import (
	"sync"

	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
)

var _ credentials.Store = (*MemStore)(nil)

type MemStore struct {
	values map[string]string
	lock   sync.RWMutex
}

func New() *MemStore {
	return &MemStore{
		values: make(map[string]string),
	}
}

// NewWithTokens returns a store pre-populated with a credential pair. Empty
// values are not stored.
func NewWithTokens(access, refresh string) *MemStore {
	s := New()
	if access != "" {
		s.values[credentials.AccessTokenKey] = access
	}
	if refresh != "" {
		s.values[credentials.RefreshTokenKey] = refresh
	}
	return s
}

func (s *MemStore) Get(key string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", errors.ErrNotFound
	}
	return v, nil
}

func (s *MemStore) Set(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStore) Remove(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.values, key)
	return nil
}
