// Package mockserver is an in-process stand-in for the HRMS backend. It speaks
// the same login/refresh/CRUD contract as the real API and lets tests expire
// access tokens, slow down or fail refreshes, and inspect what was sent.
package mockserver

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/token/jwt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Env               string
	Secret            []byte
	AccessTokenExpiry time.Duration
	PageSize          int
	Logger            *zerolog.Logger

	// Users maps username to password. Defaults to admin/admin.
	Users map[string]string

	// Restricted usernames are refused the attendance permission check.
	Restricted []string

	// Seed creates demo employees and attendance records.
	Seed bool
}

type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	logger   zerolog.Logger
	pageSize int

	signer        *jwt.HMACSigner
	users         *userRepo
	refreshTokens *refreshTokenManager
	revoked       *revokedTokenCache

	collections map[endpoints.Path]*Collection
	mailsLock   sync.Mutex
	mails       []Mail

	refreshCalls atomic.Int32
	refreshFail  atomic.Bool
	refreshDelay atomic.Int64
}

func New(opts Options) (*Server, error) {
	if len(opts.Secret) == 0 {
		opts.Secret = []byte("mock-hrms-secret")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if len(opts.Users) == 0 {
		opts.Users = map[string]string{"admin": "admin"}
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	users, err := newUserRepo(opts.Users, opts.Restricted...)
	if err != nil {
		return nil, fmt.Errorf("[mockserver New] failed to create users: %w", err)
	}

	s := &Server{
		env:           opts.Env,
		mux:           http.NewServeMux(),
		logger:        logger,
		pageSize:      opts.PageSize,
		signer:        jwt.NewHMACSigner(opts.Secret, opts.AccessTokenExpiry),
		users:         users,
		refreshTokens: newRefreshTokenManager(32),
		revoked:       newRevokedTokenCache(),
		collections:   make(map[endpoints.Path]*Collection),
	}

	s.initRoutes()
	if opts.Seed {
		s.seed()
	}
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	routes := s.Routes()
	sort.Strings(routes)
	for _, route := range routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		s.logger.Debug().Str("method", method).Str("path", path).Msg("route")
	}
	s.logger.Debug().Strs("users", s.users.Usernames()).Msg("mock users")
}

// Collection returns the in-memory store behind a CRUD group, keyed by its list path.
func (s *Server) Collection(list endpoints.Path) *Collection {
	return s.collections[list]
}

// ExpireAccessTokens revokes every access token issued so far. Refresh tokens
// stay valid, so clients can renew.
func (s *Server) ExpireAccessTokens() {
	s.revoked.RevokeIssued()
}

// SetRefreshFailure makes the refresh endpoint reject every refresh token.
func (s *Server) SetRefreshFailure(fail bool) {
	s.refreshFail.Store(fail)
}

// SetRefreshDelay holds every refresh response for d.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.refreshDelay.Store(int64(d))
}

// RefreshCalls counts calls to the refresh endpoint.
func (s *Server) RefreshCalls() int {
	return int(s.refreshCalls.Load())
}

// Mails returns the offline-employee mails received so far.
func (s *Server) Mails() []Mail {
	s.mailsLock.Lock()
	defer s.mailsLock.Unlock()
	return append([]Mail(nil), s.mails...)
}
