// Package export writes employee listings as XLSX workbooks and reads them back.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/internal/utils"
	"github.com/xuri/excelize/v2"
)

const EmployeesSheet = "Employees"

var employeeHeader = []string{"ID", "Badge", "First name", "Last name", "Email", "Phone", "Department", "Job position", "Active"}

// EmployeesXLSX writes one row per employee under a bold header row.
func EmployeesXLSX(w io.Writer, emps []employees.Employee) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), EmployeesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(employeeHeader))
	for i, h := range employeeHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(EmployeesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(EmployeesSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range emps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.ID, e.BadgeID, e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.JobPosition, utils.Value(e.IsActive)}
		if err := f.SetSheetRow(EmployeesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write employee %d: %w", e.ID, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(employeeHeader))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(EmployeesSheet, "A", lastCol, 18); err != nil {
		return err
	}
	return f.Write(w)
}

// ReadEmployees parses a workbook laid out like EmployeesXLSX output. Columns
// are matched by header name, so reordered or missing columns are tolerated.
func ReadEmployees(r io.Reader) ([]employees.Employee, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}
	value := func(row []string, header string) string {
		idx, ok := cols[normalizeHeader(header)]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	out := make([]employees.Employee, 0, len(rows)-1)
	for _, row := range rows[1:] {
		e := employees.Employee{
			BadgeID:     value(row, "Badge"),
			FirstName:   value(row, "First name"),
			LastName:    value(row, "Last name"),
			Email:       value(row, "Email"),
			Phone:       value(row, "Phone"),
			Department:  value(row, "Department"),
			JobPosition: value(row, "Job position"),
		}
		if e.FirstName == "" && e.Email == "" {
			continue
		}
		if id, err := strconv.Atoi(value(row, "ID")); err == nil {
			e.ID = id
		}
		if active, err := strconv.ParseBool(value(row, "Active")); err == nil {
			e.IsActive = utils.Ptr(active)
		}
		out = append(out, e)
	}
	return out, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
