package mockserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/credentials/memstore"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/mockserver"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts mockserver.Options) (*mockserver.Server, *httptest.Server) {
	t.Helper()
	srv, err := mockserver.New(opts)
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func loggedIn(t *testing.T, ts *httptest.Server) *apiclient.Client {
	t.Helper()
	c := apiclient.New(ts.URL, memstore.New())
	_, err := c.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	return c
}

func TestLogin(t *testing.T) {
	_, ts := newServer(t, mockserver.Options{})
	ctx := context.Background()

	t.Run("valid credentials store a pair", func(t *testing.T) {
		store := memstore.New()
		tok, err := apiclient.New(ts.URL, store).Login(ctx, "admin", "admin")
		require.NoError(t, err)
		require.NotEmpty(t, tok.AccessToken)
		require.NotEmpty(t, tok.RefreshToken)

		stored, err := credentials.Load(store)
		require.NoError(t, err)
		require.Equal(t, tok.AccessToken, stored.AccessToken)
		require.False(t, stored.Expiry.IsZero())
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		store := memstore.New()
		_, err := apiclient.New(ts.URL, store).Login(ctx, "admin", "nope")
		require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

		access, err := credentials.AccessToken(store)
		require.NoError(t, err)
		require.Empty(t, access)
	})
}

func TestRequireAuth(t *testing.T) {
	srv, ts := newServer(t, mockserver.Options{})
	ctx := context.Background()
	path := endpoints.Registry().Employees.List.String()

	err := apiclient.New(ts.URL, memstore.New()).Get(ctx, path, nil)
	require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

	err = apiclient.New(ts.URL, memstore.NewWithTokens("garbage", "")).Get(ctx, path, nil)
	require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

	c := loggedIn(t, ts)
	require.NoError(t, c.Get(ctx, path, nil))

	srv.ExpireAccessTokens()
	err = c.Get(ctx, path, nil)
	require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
}

func TestRefreshRotatesTokens(t *testing.T) {
	srv, ts := newServer(t, mockserver.Options{})
	ctx := context.Background()
	c := apiclient.New(ts.URL, memstore.New())
	refreshPath := endpoints.Registry().Auth.Refresh.String()

	err := c.Post(ctx, refreshPath, apiclient.RefreshRequest{Refresh: "unknown"}, nil)
	require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

	store := memstore.New()
	_, err = apiclient.New(ts.URL, store).Login(ctx, "admin", "admin")
	require.NoError(t, err)
	oldRefresh, err := credentials.RefreshToken(store)
	require.NoError(t, err)

	var pair apiclient.TokenPair
	require.NoError(t, c.Post(ctx, refreshPath, apiclient.RefreshRequest{Refresh: oldRefresh}, &pair))
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	require.NotEqual(t, oldRefresh, pair.Refresh)

	err = c.Post(ctx, refreshPath, apiclient.RefreshRequest{Refresh: oldRefresh}, nil)
	require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err), "rotated refresh token is no longer valid")

	srv.SetRefreshFailure(true)
	err = c.Post(ctx, refreshPath, apiclient.RefreshRequest{Refresh: pair.Refresh}, nil)
	require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
	require.Equal(t, 4, srv.RefreshCalls())
}

func TestCollectionCRUD(t *testing.T) {
	_, ts := newServer(t, mockserver.Options{PageSize: 2})
	ctx := context.Background()
	c := loggedIn(t, ts)
	ep := endpoints.Registry().Tickets

	for _, title := range []string{"Printer jam", "VPN down", "New laptop"} {
		require.NoError(t, c.Post(ctx, ep.Create.String(), map[string]any{"title": title, "status": "new"}, nil))
	}

	var page apiclient.Page[map[string]any]
	require.NoError(t, c.Get(ctx, ep.List.String(), &page))
	require.Equal(t, 3, page.Count)
	require.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	require.Nil(t, page.Previous)

	next, err := url.Parse(*page.Next)
	require.NoError(t, err)
	require.Equal(t, "2", next.Query().Get("page"))

	var second apiclient.Page[map[string]any]
	require.NoError(t, c.Get(ctx, endpoints.WithQuery(ep.List.String(), url.Values{"page": {"2"}}), &second))
	require.Len(t, second.Results, 1)
	require.Nil(t, second.Next)
	require.NotNil(t, second.Previous)

	var found apiclient.Page[map[string]any]
	require.NoError(t, c.Get(ctx, endpoints.WithQuery(ep.List.String(), url.Values{"search": {"vpn"}}), &found))
	require.Equal(t, 1, found.Count)
	require.Equal(t, "VPN down", found.Results[0]["title"])

	var updated map[string]any
	require.NoError(t, c.Put(ctx, ep.Update("2"), map[string]any{"status": "closed"}, &updated))
	require.Equal(t, "closed", updated["status"])
	require.Equal(t, "VPN down", updated["title"])
	require.EqualValues(t, 2, updated["id"])

	require.NoError(t, c.Delete(ctx, ep.Delete("2"), nil))
	err = c.Get(ctx, ep.Get("2"), nil)
	require.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))

	err = c.Get(ctx, ep.Get("abc"), nil)
	require.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))
}

func TestFiltersByField(t *testing.T) {
	_, ts := newServer(t, mockserver.Options{Seed: true})
	ctx := context.Background()
	c := loggedIn(t, ts)
	ep := endpoints.Registry().Employees

	var page apiclient.Page[map[string]any]
	require.NoError(t, c.Get(ctx, endpoints.WithQuery(ep.List.String(), url.Values{"department_name": {"Engineering"}}), &page))
	require.Equal(t, 2, page.Count)

	require.NoError(t, c.Get(ctx, endpoints.WithQuery(ep.List.String(), url.Values{"is_active": {"true"}}), &page))
	require.Equal(t, 3, page.Count)
}
