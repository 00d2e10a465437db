package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-hrms-client/credentials"
)

const RequestIDHeader = "X-Request-ID"

// JoinURL prefixes path with baseURL. Absolute URLs are returned unchanged.
func JoinURL(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(baseURL, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// NewRequest builds a request with the given body and bearer token. An empty
// token means no Authorization header at all.
func NewRequest(ctx context.Context, method, fullURL string, body *Body, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body.reader())
	if err != nil {
		return nil, err
	}
	if body != nil && body.ContentType != "" {
		req.Header.Set("Content-Type", body.ContentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.New().String())
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// StoredToken reads the current access token; absence is not an error.
func StoredToken(store credentials.Store) (string, error) {
	if store == nil {
		return "", nil
	}
	return credentials.AccessToken(store)
}

// ReadResponse closes resp.Body. Non-2xx yields *HTTPError; a 2xx body is decoded
// into out unless out is nil or the body is empty.
func ReadResponse(resp *http.Response, out any) error {
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(data)),
		}
		if resp.Request != nil {
			herr.Method = resp.Request.Method
			herr.URL = resp.Request.URL.String()
		}
		return herr
	}
	if out == nil || len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
