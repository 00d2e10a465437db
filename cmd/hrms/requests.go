package main

import (
	"github.com/jrsteele09/go-hrms-client/resource"
	"github.com/jrsteele09/go-hrms-client/shiftrequests"
	"github.com/jrsteele09/go-hrms-client/worktyperequests"
	"github.com/spf13/cobra"
)

// requestCommands builds list, get and delete for a request resource.
func requestCommands[T any](a *app, res func() *resource.Resource[T]) []*cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := res().List(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one request",
		Args:  exactlyOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := res().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(item)
		},
	}
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a request",
		Args:  exactlyOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return res().Delete(cmd.Context(), args[0])
		},
	}
	return []*cobra.Command{list, get, del}
}

func newShiftRequestsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift-requests",
		Short: "Shift change requests",
	}
	svc := func() *shiftrequests.Service { return shiftrequests.NewService(a.client) }
	cmd.AddCommand(requestCommands(a, func() *resource.Resource[shiftrequests.ShiftRequest] { return svc().Resource })...)

	var employeeID int
	forEmployee := &cobra.Command{
		Use:   "for-employee",
		Short: "List the requests raised by one employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := svc().ForEmployee(cmd.Context(), employeeID)
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	forEmployee.Flags().IntVar(&employeeID, "employee", 0, "employee id")
	_ = forEmployee.MarkFlagRequired("employee")
	cmd.AddCommand(forEmployee)
	return cmd
}

func newWorkTypeRequestsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work-type-requests",
		Short: "Work type change requests",
	}
	svc := func() *worktyperequests.Service { return worktyperequests.NewService(a.client) }
	cmd.AddCommand(requestCommands(a, func() *resource.Resource[worktyperequests.WorkTypeRequest] { return svc().Resource })...)

	cmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "List requests awaiting approval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pending, err := svc().Pending(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(pending)
		},
	})
	return cmd
}
