package export_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/export"
	"github.com/jrsteele09/go-hrms-client/internal/utils"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestEmployeesXLSX(t *testing.T) {
	emps := []employees.Employee{
		{ID: 1, BadgeID: "PEP001", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: "Engineering", IsActive: utils.Ptr(true)},
		{ID: 2, FirstName: "Grace", Email: "grace@example.com", IsActive: utils.Ptr(false)},
	}

	var buf bytes.Buffer
	require.NoError(t, export.EmployeesXLSX(&buf, emps))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.Equal(t, export.EmployeesSheet, f.GetSheetName(0))
	rows, err := f.GetRows(export.EmployeesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "First name", rows[0][2])
	require.Equal(t, "Ada", rows[1][2])
	require.Equal(t, "TRUE", rows[1][8])

	t.Run("read back", func(t *testing.T) {
		got, err := export.ReadEmployees(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, 1, got[0].ID)
		require.Equal(t, "Lovelace", got[0].LastName)
		require.True(t, *got[0].IsActive)
		require.Equal(t, "grace@example.com", got[1].Email)
		require.False(t, *got[1].IsActive)
	})
}

func TestReadEmployeesRejectsEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	_, err := export.ReadEmployees(&buf)
	require.Error(t, err)
}
