package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/export"
	"github.com/jrsteele09/go-hrms-client/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// employeeFields maps CLI flags to API fields. Only flags the user set are sent.
var employeeFields = map[string]string{
	"first-name": "employee_first_name",
	"last-name":  "employee_last_name",
	"email":      "email",
	"phone":      "phone",
	"badge":      "badge_id",
	"gender":     "gender",
}

func addEmployeeFlags(flags *pflag.FlagSet) {
	for flag := range employeeFields {
		flags.String(flag, "", "employee "+flag)
	}
}

func changedEmployeeFields(flags *pflag.FlagSet) map[string]any {
	fields := make(map[string]any)
	for flag, field := range employeeFields {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			fields[field] = f.Value.String()
		}
	}
	return fields
}

func newEmployeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "emp"},
		Short:   "Manage employees",
	}
	svc := func() *employees.Service { return employees.NewService(a.client) }

	var filter employees.Filter
	var active string
	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if active != "" {
				b, err := strconv.ParseBool(active)
				if err != nil {
					return fmt.Errorf("--active: %w", err)
				}
				filter.Active = utils.Ptr(b)
			}
			if all {
				emps, err := svc().All(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return a.print(emps)
			}
			page, err := svc().Search(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.print(page)
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "free text search")
	list.Flags().StringVar(&filter.Department, "department", "", "department name")
	list.Flags().StringVar(&active, "active", "", "filter on active status (true or false)")
	list.Flags().IntVar(&filter.Page, "page", 0, "page number")
	list.Flags().BoolVar(&all, "all", false, "walk every page")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee",
		Args:  exactlyOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := svc().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(e)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := svc().Create(cmd.Context(), changedEmployeeFields(cmd.Flags()))
			if err != nil {
				return err
			}
			return a.print(e)
		},
	}
	addEmployeeFlags(create.Flags())
	_ = create.MarkFlagRequired("first-name")
	_ = create.MarkFlagRequired("email")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an employee",
		Args:  exactlyOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := changedEmployeeFields(cmd.Flags())
			if len(fields) == 0 {
				return fmt.Errorf("nothing to update")
			}
			e, err := svc().Update(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			return a.print(e)
		},
	}
	addEmployeeFlags(update.Flags())

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Args:  exactlyOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return svc().Delete(cmd.Context(), args[0])
		},
	}

	var file string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every employee to an XLSX workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			emps, err := svc().All(cmd.Context(), employees.Filter{})
			if err != nil {
				return err
			}
			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", file, err)
			}
			if err := export.EmployeesXLSX(f, emps); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.logger.Info().Int("employees", len(emps)).Str("file", file).Msg("Exported employees")
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&file, "file", "f", "employees.xlsx", "output workbook")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Create employees from an XLSX workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readFile(file)
			if err != nil {
				return err
			}
			defer f.Close()
			emps, err := export.ReadEmployees(f)
			if err != nil {
				return err
			}
			created := make([]employees.Employee, 0, len(emps))
			for _, e := range emps {
				e.ID = 0
				out, err := svc().Create(cmd.Context(), e)
				if err != nil {
					return fmt.Errorf("employee %s: %w", e.Email, err)
				}
				created = append(created, *out)
			}
			return a.print(created)
		},
	}
	importCmd.Flags().StringVarP(&file, "file", "f", "employees.xlsx", "input workbook")

	cmd.AddCommand(list, get, create, update, del, exportCmd, importCmd)
	return cmd
}
