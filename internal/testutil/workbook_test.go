package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

func TestBuilder_Invoices(t *testing.T) {
	invoices := NewBuilder(t).WithFixture(FixtureMixed).Invoices()

	require.Len(t, invoices, 4)
	assert.Equal(t, 2, invoices[0].Row)
	assert.Equal(t, model.StatusDone, invoices[0].Status)
	assert.Equal(t, "https://xtract.example.com/F-001", invoices[0].XtractLink)
	assert.Equal(t, "Globex", invoices[2].Cells[model.ColumnVendor])
}

func TestBuilder_WithColumns(t *testing.T) {
	invoices := NewBuilder(t).
		WithColumns(model.ColumnStatus, "Extra").
		WithInvoice("F-1", "ACME", model.StatusError).
		Invoices()

	require.Len(t, invoices, 1)
	assert.Empty(t, invoices[0].Vendor)
	assert.Equal(t, "", invoices[0].Cells["Extra"])
	assert.Equal(t, model.StatusError, invoices[0].Status)
}

func TestBuilder_WriteCSV(t *testing.T) {
	path := NewBuilder(t).WithInvoice("F-1", "ACME", model.StatusDone).WriteCSV(t.TempDir())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Status,Nro factura,Proveedor")
	assert.Contains(t, string(data), "Done,F-1,ACME")
}

func TestBuilder_WriteXLSX(t *testing.T) {
	path := NewBuilder(t).WithFixture(FixtureMixed).WriteXLSX(t.TempDir())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, model.ColumnStatus, rows[0][0])
	assert.Equal(t, "F-004", rows[4][1])
}
