package worktyperequests_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-hrms-client/credentials/memstore"
	"github.com/jrsteele09/go-hrms-client/interceptor"
	"github.com/jrsteele09/go-hrms-client/mockserver"
	"github.com/jrsteele09/go-hrms-client/worktyperequests"
	"github.com/stretchr/testify/require"
)

func TestPending(t *testing.T) {
	srv, err := mockserver.New(mockserver.Options{Seed: true})
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	ctx := context.Background()
	c := interceptor.New(ts.URL, memstore.New())
	_, err = c.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	svc := worktyperequests.NewService(c)

	for _, r := range []worktyperequests.WorkTypeRequest{
		{EmployeeID: 1, WorkTypeID: 1, RequestedDate: "2026-03-02", Description: "Office again"},
		{EmployeeID: 2, WorkTypeID: 2, RequestedDate: "2026-03-02", Approved: true},
		{EmployeeID: 2, WorkTypeID: 3, RequestedDate: "2026-03-09", Canceled: true},
	} {
		_, err := svc.Create(ctx, r)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 4, all.Count)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, r := range pending {
		require.False(t, r.Approved)
		require.False(t, r.Canceled)
	}
	require.Equal(t, "Remote week", pending[0].Description)
	require.Equal(t, "Office again", pending[1].Description)
}
