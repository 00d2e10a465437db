package mockserver

import (
	"sort"
	"sync"

	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// The mock only needs to prove that hashes are checked, not to be slow.
const passwordCost = bcrypt.MinCost

type user struct {
	Username     string
	PasswordHash string

	// Restricted users lack the attendance management permission.
	Restricted bool
}

type userRepo struct {
	users map[string]*user
	lock  sync.RWMutex
}

func newUserRepo(credentials map[string]string, restricted ...string) (*userRepo, error) {
	repo := &userRepo{users: make(map[string]*user)}
	for username, password := range credentials {
		if err := repo.Upsert(username, password); err != nil {
			return nil, err
		}
	}
	for _, username := range restricted {
		if u, ok := repo.users[username]; ok {
			u.Restricted = true
		}
	}
	return repo, nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

func (ur *userRepo) Upsert(username, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return errors.Wrapf(err, "[userRepo Upsert] hashing password for %s", username)
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.users[username] = &user{Username: username, PasswordHash: hash}
	return nil
}

func (ur *userRepo) Get(username string) (*user, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	u, ok := ur.users[username]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return u, nil
}

// Authenticate returns the user when password matches.
func (ur *userRepo) Authenticate(username, password string) (*user, error) {
	u, err := ur.Get(username)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errors.ErrInvalidCredentials
	}
	return u, nil
}

func (ur *userRepo) Usernames() []string {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	names := make([]string, 0, len(ur.users))
	for name := range ur.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
