package main

import (
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/attendance"
	"github.com/spf13/cobra"
)

func newAttendanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance records, requests and notifications",
	}
	svc := func() *attendance.Service { return attendance.NewService(a.client) }

	var employeeID int
	var date string
	query := func() url.Values {
		q := url.Values{}
		if employeeID > 0 {
			q.Set("employee_id", strconv.Itoa(employeeID))
		}
		if date != "" {
			q.Set("attendance_date", date)
		}
		return q
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List attendance records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := svc().List(cmd.Context(), query())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	list.Flags().IntVar(&employeeID, "employee", 0, "employee id")
	list.Flags().StringVar(&date, "date", "", "attendance date (YYYY-MM-DD)")

	today := &cobra.Command{
		Use:   "today",
		Short: "Show today's attendance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := svc().Today(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}

	var countOnly bool
	offline := &cobra.Command{
		Use:   "offline",
		Short: "List employees who have not clocked in today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if countOnly {
				n, err := svc().OfflineCount(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(map[string]int{"count": n})
			}
			page, err := svc().OfflineEmployees(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	offline.Flags().BoolVar(&countOnly, "count", false, "only print the number of offline employees")

	requests := &cobra.Command{
		Use:   "requests",
		Short: "List attendance requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := svc().Requests.List(cmd.Context(), query())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	requests.Flags().IntVar(&employeeID, "employee", 0, "employee id")

	hourAccounts := &cobra.Command{
		Use:   "hour-accounts",
		Short: "List monthly hour accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := svc().HourAccounts.List(cmd.Context(), query())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	hourAccounts.Flags().IntVar(&employeeID, "employee", 0, "employee id")

	activities := &cobra.Command{
		Use:   "activities",
		Short: "List clock-in and clock-out activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := svc().Activities(cmd.Context(), query())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	activities.Flags().IntVar(&employeeID, "employee", 0, "employee id")

	var deleteID string
	lateEarly := &cobra.Command{
		Use:   "late-early",
		Short: "List late arrivals and early departures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deleteID != "" {
				return svc().DeleteLateComeEarlyOut(cmd.Context(), deleteID)
			}
			page, err := svc().LateComeEarlyOuts(cmd.Context(), query())
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	lateEarly.Flags().IntVar(&employeeID, "employee", 0, "employee id")
	lateEarly.Flags().StringVar(&deleteID, "delete", "", "delete the record with this id instead of listing")

	permission := &cobra.Command{
		Use:   "permission",
		Short: "Check whether you may manage attendance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := svc().CanManage(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(map[string]bool{"permission": ok})
		},
	}

	var mail attendance.Mail
	var attachments []string
	mailCmd := &cobra.Command{
		Use:   "mail",
		Short: "Mail an offline employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, path := range attachments {
				f, err := readFile(path)
				if err != nil {
					return err
				}
				defer f.Close()
				mail.Attachments = append(mail.Attachments, attendance.Attachment{Filename: filepath.Base(path), Content: f})
			}
			if err := svc().SendMail(cmd.Context(), mail); err != nil {
				return err
			}
			a.logger.Info().Int("employee_id", mail.EmployeeID).Msg("Mail sent")
			return nil
		},
	}
	mailCmd.Flags().IntVar(&mail.EmployeeID, "employee", 0, "employee id")
	mailCmd.Flags().StringVar(&mail.Subject, "subject", "", "mail subject")
	mailCmd.Flags().StringVar(&mail.Body, "body", "", "mail body")
	mailCmd.Flags().StringSliceVar(&attachments, "attach", nil, "file to attach, repeatable")
	_ = mailCmd.MarkFlagRequired("employee")

	cmd.AddCommand(list, today, offline, requests, hourAccounts, activities, lateEarly, permission, mailCmd)
	return cmd
}
