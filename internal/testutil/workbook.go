// Package testutil builds invoice records and workbooks for tests.
//
// Example usage:
//
//	path := testutil.NewBuilder(t).
//		WithFixture(testutil.FixtureMixed).
//		WithInvoice("F-100", "Initech", model.StatusErrorNS).
//		WriteCSV(t.TempDir())
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

// Row is one invoice line of a fixture.
type Row struct {
	Number string
	Vendor string
	Status string
}

// Fixture is a predefined set of rows.
type Fixture []Row

// FixtureMixed has two completed invoices out of four, spread over two vendors.
var FixtureMixed = Fixture{
	{Number: "F-001", Vendor: "ACME", Status: model.StatusDone},
	{Number: "F-002", Vendor: "ACME", Status: model.StatusErrorXtract},
	{Number: "F-003", Vendor: "Globex", Status: model.StatusPendingTekiio},
	{Number: "F-004", Vendor: "Globex", Status: model.StatusDone},
}

// Builder accumulates invoice rows under a header.
type Builder struct {
	t       testing.TB
	columns []string
	rows    []Row
}

// NewBuilder starts a builder with the standard workbook header.
func NewBuilder(t testing.TB) *Builder {
	t.Helper()
	return &Builder{
		t: t,
		columns: []string{
			model.ColumnStatus,
			model.ColumnNumber,
			model.ColumnVendor,
			model.ColumnXtractLink,
			model.ColumnNetsuiteLink,
			model.ColumnComments,
		},
	}
}

// WithColumns replaces the header. Unknown columns are left empty in every row.
func (b *Builder) WithColumns(columns ...string) *Builder {
	b.columns = append([]string(nil), columns...)
	return b
}

// WithInvoice adds a single row.
func (b *Builder) WithInvoice(number, vendor, status string) *Builder {
	b.rows = append(b.rows, Row{Number: number, Vendor: vendor, Status: status})
	return b
}

// WithFixture adds every row of f.
func (b *Builder) WithFixture(f Fixture) *Builder {
	b.rows = append(b.rows, f...)
	return b
}

// Columns returns the header.
func (b *Builder) Columns() []string {
	return append([]string(nil), b.columns...)
}

func (b *Builder) cell(r Row, column string) string {
	switch column {
	case model.ColumnStatus:
		return r.Status
	case model.ColumnNumber:
		return r.Number
	case model.ColumnVendor:
		return r.Vendor
	case model.ColumnXtractLink:
		return "https://xtract.example.com/" + r.Number
	case model.ColumnNetsuiteLink:
		return "https://netsuite.example.com/" + r.Number
	default:
		return ""
	}
}

// Invoices returns the rows as parsed records, numbered the way the
// workbook reader numbers them.
func (b *Builder) Invoices() []model.Invoice {
	out := make([]model.Invoice, 0, len(b.rows))
	for i, r := range b.rows {
		inv := model.Invoice{Row: i + 2, Cells: make(map[string]string, len(b.columns))}
		for _, col := range b.columns {
			v := b.cell(r, col)
			inv.Cells[col] = v
			switch col {
			case model.ColumnStatus:
				inv.Status = v
			case model.ColumnNumber:
				inv.Number = v
			case model.ColumnVendor:
				inv.Vendor = v
			case model.ColumnXtractLink:
				inv.XtractLink = v
			case model.ColumnNetsuiteLink:
				inv.NetsuiteLink = v
			case model.ColumnComments:
				inv.Comments = v
			}
		}
		out = append(out, inv)
	}
	return out
}

func (b *Builder) records() [][]string {
	out := [][]string{b.Columns()}
	for _, r := range b.rows {
		line := make([]string, len(b.columns))
		for i, col := range b.columns {
			line[i] = b.cell(r, col)
		}
		out = append(out, line)
	}
	return out
}

// WriteCSV writes the rows to facturas.csv in dir and returns its path.
func (b *Builder) WriteCSV(dir string) string {
	b.t.Helper()

	path := filepath.Join(dir, "facturas.csv")
	f, err := os.Create(path)
	if err != nil {
		b.t.Fatalf("failed to create csv: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(b.records()); err != nil {
		b.t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

// WriteXLSX writes the rows to facturas.xlsx in dir and returns its path.
func (b *Builder) WriteXLSX(dir string) string {
	b.t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, line := range b.records() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			b.t.Fatalf("failed to address row %d: %v", i+1, err)
		}
		values := make([]any, len(line))
		for j, v := range line {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			b.t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(dir, "facturas.xlsx")
	if err := f.SaveAs(path); err != nil {
		b.t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}
