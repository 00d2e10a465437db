package main

import (
	"github.com/jrsteele09/go-hrms-client/attendance"
	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/shiftrequests"
	"github.com/jrsteele09/go-hrms-client/worktyperequests"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type dashboard struct {
	Employees               int  `json:"employees"`
	ClockedInToday          int  `json:"clocked_in_today"`
	Offline                 int  `json:"offline"`
	ShiftRequests           int  `json:"shift_requests"`
	PendingWorkTypeRequests int  `json:"pending_work_type_requests"`
	CanManageAttendance     bool `json:"can_manage_attendance"`
}

// newDashboardCmd fetches the summary figures concurrently. When the session
// has expired the requests share one refresh.
func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summary of today's workforce",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var d dashboard
			att := attendance.NewService(a.client)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				page, err := employees.NewService(a.client).Search(ctx, employees.Filter{})
				if err == nil {
					d.Employees = page.Count
				}
				return err
			})
			g.Go(func() error {
				page, err := att.Today(ctx)
				if err == nil {
					d.ClockedInToday = page.Count
				}
				return err
			})
			g.Go(func() error {
				n, err := att.OfflineCount(ctx)
				d.Offline = n
				return err
			})
			g.Go(func() error {
				page, err := shiftrequests.NewService(a.client).List(ctx, nil)
				if err == nil {
					d.ShiftRequests = page.Count
				}
				return err
			})
			g.Go(func() error {
				pending, err := worktyperequests.NewService(a.client).Pending(ctx)
				d.PendingWorkTypeRequests = len(pending)
				return err
			})
			g.Go(func() error {
				ok, err := att.CanManage(ctx)
				d.CanManageAttendance = ok
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			return a.print(d)
		},
	}
}
