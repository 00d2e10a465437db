package mockserver_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-hrms-client/attendance"
	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/credentials/memstore"
	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/interceptor"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/mockserver"
	"github.com/jrsteele09/go-hrms-client/shiftrequests"
	"github.com/jrsteele09/go-hrms-client/worktyperequests"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestInterceptorRenewsSessionAgainstMock(t *testing.T) {
	srv, ts := newServer(t, mockserver.Options{Seed: true})
	ctx := context.Background()
	store := memstore.New()
	c := interceptor.New(ts.URL, store)

	_, err := c.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	before, err := credentials.Load(store)
	require.NoError(t, err)

	emps := employees.NewService(c)
	all, err := emps.All(ctx, employees.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, 0, srv.RefreshCalls())

	srv.ExpireAccessTokens()
	srv.SetRefreshDelay(200 * time.Millisecond)

	att := attendance.NewService(c)
	shifts := shiftrequests.NewService(c)
	workTypes := worktyperequests.NewService(c)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := emps.Get(gctx, "1")
		if err == nil && e.FullName() != "Ada Lovelace" {
			t.Errorf("unexpected employee %q", e.FullName())
		}
		return err
	})
	g.Go(func() error {
		_, err := att.OfflineCount(gctx)
		return err
	})
	g.Go(func() error {
		_, err := shifts.ForEmployee(gctx, 2)
		return err
	})
	g.Go(func() error {
		_, err := workTypes.Pending(gctx)
		return err
	})
	require.NoError(t, g.Wait())

	// A response that lands after the refresh finished starts a new one, so
	// only a lower bound holds here. The exact count is covered in interceptor.
	require.GreaterOrEqual(t, srv.RefreshCalls(), 1)

	after, err := credentials.Load(store)
	require.NoError(t, err)
	require.NotEqual(t, before.AccessToken, after.AccessToken)
	require.NotEqual(t, before.RefreshToken, after.RefreshToken, "rotated refresh token is persisted")
}

func TestInterceptorExpiresSessionAgainstMock(t *testing.T) {
	srv, ts := newServer(t, mockserver.Options{Seed: true})
	ctx := context.Background()
	store := memstore.New()

	var lock sync.Mutex
	var routes []string
	c := interceptor.New(ts.URL, store, interceptor.WithRedirector(func(route string) {
		lock.Lock()
		defer lock.Unlock()
		routes = append(routes, route)
	}))

	_, err := c.Login(ctx, "admin", "admin")
	require.NoError(t, err)

	srv.ExpireAccessTokens()
	srv.SetRefreshFailure(true)

	_, err = employees.NewService(c).Get(ctx, "1")
	require.ErrorIs(t, err, errors.ErrSessionExpired)

	var expired *interceptor.SessionExpiredError
	require.ErrorAs(t, err, &expired)

	lock.Lock()
	require.Equal(t, []string{"/login"}, routes)
	lock.Unlock()

	_, err = credentials.Load(store)
	require.ErrorIs(t, err, errors.ErrNoAccessToken)
	refresh, err := credentials.RefreshToken(store)
	require.NoError(t, err)
	require.Empty(t, refresh)
}

func TestAttendanceAgainstMock(t *testing.T) {
	srv, ts := newServer(t, mockserver.Options{
		Seed:       true,
		Users:      map[string]string{"admin": "admin", "clerk": "clerk"},
		Restricted: []string{"clerk"},
	})
	ctx := context.Background()

	admin := interceptor.New(ts.URL, memstore.New())
	_, err := admin.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	att := attendance.NewService(admin)

	t.Run("today and offline", func(t *testing.T) {
		today, err := att.Today(ctx)
		require.NoError(t, err)
		require.Len(t, today.Results, 1)
		require.Equal(t, 1, today.Results[0].EmployeeID)

		count, err := att.OfflineCount(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		offline, err := att.OfflineEmployees(ctx)
		require.NoError(t, err)
		require.Len(t, offline.Results, 2)
		require.Equal(t, "Grace", offline.Results[0].FirstName)
	})

	t.Run("permission check", func(t *testing.T) {
		ok, err := att.CanManage(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		clerk := interceptor.New(ts.URL, memstore.New())
		_, err = clerk.Login(ctx, "clerk", "clerk")
		require.NoError(t, err)
		ok, err = attendance.NewService(clerk).CanManage(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("mail with attachment", func(t *testing.T) {
		err := att.SendMail(ctx, attendance.Mail{
			EmployeeID:  2,
			Subject:     "Missing clock-in",
			Body:        "Please clock in.",
			Attachments: []attendance.Attachment{{Filename: "policy.txt", Content: strings.NewReader("be on time")}},
		})
		require.NoError(t, err)

		mails := srv.Mails()
		require.Len(t, mails, 1)
		require.Equal(t, 2, mails[0].EmployeeID)
		require.Equal(t, "Missing clock-in", mails[0].Subject)
		require.Equal(t, []string{"policy.txt"}, mails[0].Attachments)
	})

	t.Run("late come early out", func(t *testing.T) {
		page, err := att.LateComeEarlyOuts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		require.Equal(t, "late_come", page.Results[0].Type)

		require.NoError(t, att.DeleteLateComeEarlyOut(ctx, "1"))
		page, err = att.LateComeEarlyOuts(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, page.Results)
	})

	t.Run("requests round trip", func(t *testing.T) {
		created, err := att.Requests.Create(ctx, attendance.Request{
			EmployeeID:  3,
			Date:        "2024-05-01",
			ClockIn:     "09:00",
			Description: "Forgot to clock in",
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := att.Requests.Get(ctx, "1")
		require.NoError(t, err)
		require.Equal(t, "Forgot to clock in", got.Description)
	})
}
