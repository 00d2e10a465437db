package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/credentials/memstore"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method        string
	Path          string
	Authorization string
	HasAuth       bool
	ContentType   string
	RequestID     string
	Body          string
}

type recorder struct {
	lock     sync.Mutex
	requests []recorded
}

func (rec *recorder) add(r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	_, hasAuth := r.Header["Authorization"]
	rec.lock.Lock()
	defer rec.lock.Unlock()
	rec.requests = append(rec.requests, recorded{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		HasAuth:       hasAuth,
		ContentType:   r.Header.Get("Content-Type"),
		RequestID:     r.Header.Get(apiclient.RequestIDHeader),
		Body:          string(data),
	})
}

func (rec *recorder) all() []recorded {
	rec.lock.Lock()
	defer rec.lock.Unlock()
	return append([]recorded(nil), rec.requests...)
}

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, rec
}

const employeesJSON = `{"count":2,"next":null,"previous":null,"results":[{"id":1,"employee_first_name":"Ada"},{"id":2,"employee_first_name":"Alan"}]}`

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestClient_GetWithToken(t *testing.T) {
	server, rec := newServer(t, jsonHandler(employeesJSON))
	c := apiclient.New(server.URL, memstore.NewWithTokens("abc123", ""))

	var got map[string]any
	require.NoError(t, c.Get(context.Background(), "/api/v1/employee/employees/", &got))

	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(employeesJSON), &want))
	require.Equal(t, want, got)

	reqs := rec.all()
	require.Len(t, reqs, 1)
	require.Equal(t, http.MethodGet, reqs[0].Method)
	require.Equal(t, "/api/v1/employee/employees/", reqs[0].Path)
	require.Equal(t, "Bearer abc123", reqs[0].Authorization)
	require.NotEmpty(t, reqs[0].RequestID)
	require.Empty(t, reqs[0].Body)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	server, rec := newServer(t, jsonHandler(`{}`))
	c := apiclient.New(server.URL, memstore.New())

	require.NoError(t, c.Get(context.Background(), "/x", nil))
	require.NoError(t, c.Delete(context.Background(), "/x/1/", nil))
	for _, r := range rec.all() {
		require.False(t, r.HasAuth)
	}
}

func TestClient_GetIsNotCached(t *testing.T) {
	server, rec := newServer(t, jsonHandler(employeesJSON))
	c := apiclient.New(server.URL, memstore.New())

	var first, second apiclient.Page[map[string]any]
	require.NoError(t, c.Get(context.Background(), "/e/", &first))
	require.NoError(t, c.Get(context.Background(), "/e/", &second))
	require.Equal(t, first, second)
	require.Equal(t, 2, first.Count)
	require.Len(t, rec.all(), 2)
}

func TestClient_BodyEncoding(t *testing.T) {
	server, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := apiclient.New(server.URL, memstore.New())
	ctx := context.Background()
	payload := map[string]any{"employee_id": 7, "reason": "swap"}

	form := apiclient.NewForm().AddField("subject", "Offline")
	require.NoError(t, form.AddFile("attachment", "note.txt", strings.NewReader("see attached")))

	require.NoError(t, c.Post(ctx, "/json", payload, nil))
	require.NoError(t, c.Post(ctx, "/form", form, nil))
	require.NoError(t, c.Post(ctx, "/empty", nil, nil))
	require.NoError(t, c.Put(ctx, "/json", payload, nil))
	require.NoError(t, c.Put(ctx, "/form", form, nil))

	reqs := rec.all()
	require.Len(t, reqs, 5)

	t.Run("post json", func(t *testing.T) {
		require.Equal(t, "application/json", reqs[0].ContentType)
		require.JSONEq(t, `{"employee_id":7,"reason":"swap"}`, reqs[0].Body)
	})

	t.Run("post form is passed through as multipart", func(t *testing.T) {
		require.NotEqual(t, "application/json", reqs[1].ContentType)
		require.True(t, strings.HasPrefix(reqs[1].ContentType, "multipart/form-data; boundary="))
		require.Contains(t, reqs[1].Body, `name="subject"`)
		require.Contains(t, reqs[1].Body, `filename="note.txt"`)
		require.Contains(t, reqs[1].Body, "see attached")
	})

	t.Run("post without data has no body", func(t *testing.T) {
		require.Empty(t, reqs[2].ContentType)
		require.Empty(t, reqs[2].Body)
	})

	t.Run("put json", func(t *testing.T) {
		require.Equal(t, "application/json", reqs[3].ContentType)
		require.JSONEq(t, `{"employee_id":7,"reason":"swap"}`, reqs[3].Body)
	})

	t.Run("put never sends multipart", func(t *testing.T) {
		require.Equal(t, "application/json", reqs[4].ContentType)
		require.JSONEq(t, `{}`, reqs[4].Body)
	})
}

func TestClient_NilDataHasNoBody(t *testing.T) {
	server, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := apiclient.New(server.URL, memstore.New())
	ctx := context.Background()

	require.NoError(t, c.Post(ctx, "/form", (*apiclient.Form)(nil), nil))
	require.NoError(t, c.Post(ctx, "/map", map[string]any(nil), nil))
	require.NoError(t, c.Put(ctx, "/struct", (*apiclient.RefreshRequest)(nil), nil))

	reqs := rec.all()
	require.Len(t, reqs, 3)
	for _, r := range reqs {
		require.Empty(t, r.ContentType, r.Path)
		require.Empty(t, r.Body, r.Path)
	}
}

func TestBodyPolicy_EncodeNil(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{name: "untyped nil"},
		{name: "nil form", data: (*apiclient.Form)(nil)},
		{name: "nil struct pointer", data: (*apiclient.TokenPair)(nil)},
		{name: "nil map", data: map[string]any(nil)},
		{name: "nil slice", data: []string(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range []apiclient.BodyPolicy{apiclient.PostOnlyMultipart, apiclient.AnyVerbMultipart} {
				for _, method := range []string{http.MethodPost, http.MethodPut} {
					body, err := p.Encode(method, tt.data)
					require.NoError(t, err)
					require.Nil(t, body)
				}
			}
		})
	}

	body, err := apiclient.PostOnlyMultipart.Encode(http.MethodPost, map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "{}", string(body.Data))
}

func TestClient_ErrorStatus(t *testing.T) {
	server, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
	})
	c := apiclient.New(server.URL, memstore.NewWithTokens("", "r1"))

	err := c.Get(context.Background(), "/api/v1/employee/employees/", nil)
	var herr *apiclient.HTTPError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, http.StatusUnauthorized, herr.StatusCode)
	require.Contains(t, herr.Error(), "401")
	require.True(t, apiclient.IsUnauthorized(err))
	require.Len(t, rec.all(), 1)
}

func TestClient_MalformedJSON(t *testing.T) {
	server, _ := newServer(t, jsonHandler(`{"count":`))
	c := apiclient.New(server.URL, memstore.New())

	var out map[string]any
	err := c.Get(context.Background(), "/x", &out)
	require.Error(t, err)
	require.Zero(t, apiclient.StatusCode(err))
}

func TestClient_TransportErrorReturnedUnchanged(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c := apiclient.New(base, memstore.New())
	err := c.Get(context.Background(), "/x", nil)
	require.IsType(t, &url.Error{}, err)
}

func TestJoinURL(t *testing.T) {
	require.Equal(t, "http://h/api/v1/x/", apiclient.JoinURL("http://h/", "/api/v1/x/"))
	require.Equal(t, "http://h/base/x", apiclient.JoinURL("http://h/base", "x"))
	require.Equal(t, "https://other/x", apiclient.JoinURL("http://h", "https://other/x"))
}
