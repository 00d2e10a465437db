package mockserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-hrms-client/apiclient"
)

// LoginHandler exchanges username and password for an access/refresh pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apiclient.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed login request")
			return
		}

		u, err := s.users.Authenticate(req.Username, req.Password)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
			return
		}

		pair, err := s.issuePair(u.Username)
		if err != nil {
			s.logger.Err(err).Str("username", u.Username).Msg("failed to issue tokens")
			writeDetail(w, http.StatusInternalServerError, "Failed to issue tokens")
			return
		}
		writeJSON(w, http.StatusOK, pair)
	}
}

// RefreshHandler trades a refresh token for a new access token. The refresh
// token is rotated on every call.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.refreshCalls.Add(1)
		if delay := time.Duration(s.refreshDelay.Load()); delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		var req apiclient.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			writeDetail(w, http.StatusBadRequest, "This field is required.")
			return
		}

		stored, err := s.refreshTokens.Get(req.Refresh)
		if s.refreshFail.Load() || err != nil {
			writeJSON(w, http.StatusUnauthorized, tokenNotValid{Detail: "Token is invalid or expired", Code: "token_not_valid"})
			return
		}

		pair, err := s.issuePair(stored.UserID)
		if err != nil {
			s.logger.Err(err).Str("user_id", stored.UserID).Msg("failed to refresh tokens")
			writeDetail(w, http.StatusInternalServerError, "Failed to issue tokens")
			return
		}
		writeJSON(w, http.StatusOK, pair)
	}
}

func (s *Server) issuePair(userID string) (*apiclient.TokenPair, error) {
	access, err := s.issueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.refreshTokens.Create(userID)
	if err != nil {
		return nil, err
	}
	return &apiclient.TokenPair{Access: access, Refresh: refresh}, nil
}
