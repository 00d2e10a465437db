package shiftrequests_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/credentials/memstore"
	"github.com/jrsteele09/go-hrms-client/interceptor"
	"github.com/jrsteele09/go-hrms-client/mockserver"
	"github.com/jrsteele09/go-hrms-client/shiftrequests"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *shiftrequests.Service {
	t.Helper()
	srv, err := mockserver.New(mockserver.Options{Seed: true})
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	c := interceptor.New(ts.URL, memstore.New())
	_, err = c.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	return shiftrequests.NewService(c)
}

func TestForEmployee(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, shiftrequests.ShiftRequest{EmployeeID: 3, ShiftID: 2, RequestedDate: "2026-01-05"})
	require.NoError(t, err)

	tests := []struct {
		employeeID int
		want       int
	}{
		{employeeID: 2, want: 1},
		{employeeID: 3, want: 1},
		{employeeID: 9, want: 0},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.employeeID), func(t *testing.T) {
			page, err := svc.ForEmployee(ctx, tt.employeeID)
			require.NoError(t, err)
			require.Len(t, page.Results, tt.want)
			for _, r := range page.Results {
				require.Equal(t, tt.employeeID, r.EmployeeID)
			}
		})
	}
}

func TestLifecycle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, shiftrequests.ShiftRequest{
		EmployeeID:    1,
		ShiftID:       3,
		RequestedDate: "2026-02-01",
		Description:   "Early shift",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	id := strconv.Itoa(created.ID)

	updated, err := svc.Update(ctx, id, map[string]any{"approved": true})
	require.NoError(t, err)
	require.True(t, updated.Approved)
	require.Equal(t, "Early shift", updated.Description)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	require.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))
}
