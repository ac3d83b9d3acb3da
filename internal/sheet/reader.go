// Package sheet reads the invoice status workbook.
package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

// Options control how a workbook is read.
type Options struct {
	// Sheet selects the worksheet of an xlsx file. Empty means the first one.
	Sheet string
	// Delimiter separates csv fields. Zero means ','.
	Delimiter rune
}

// Read loads the invoice table at path. Every failure wraps common.ErrLoadFailure.
func Read(path string, opts Options) (*Table, error) {
	var (
		rows      [][]string
		sheetName string
		err       error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		rows, sheetName, err = readXLSX(path, opts.Sheet)
	case ".csv":
		rows, err = readCSV(path, opts.Delimiter)
	default:
		err = fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, loadFailure(path, err)
	}

	columns, records, err := parseRows(rows)
	if err != nil {
		return nil, loadFailure(path, err)
	}

	return &Table{
		Sheet:   sheetName,
		Columns: columns,
		Records: records,
	}, nil
}

func loadFailure(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrLoadFailure, filepath.Base(path), err)
}

func readXLSX(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", common.ErrEmptySheet
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, "", fmt.Errorf("sheet %q not found (available: %s)", sheet, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, sheet, nil
}

func readCSV(path string, delimiter rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

// parseRows turns raw rows into headers and invoices. The first row is the header.
func parseRows(rows [][]string) ([]string, []model.Invoice, error) {
	if len(rows) == 0 {
		return nil, nil, common.ErrEmptySheet
	}

	columns := make([]string, len(rows[0]))
	index := make(map[string]int, len(columns))
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		columns[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	if _, ok := index[model.ColumnStatus]; !ok {
		return nil, nil, fmt.Errorf("%w: %q", common.ErrMissingColumn, model.ColumnStatus)
	}

	records := make([]model.Invoice, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}

		cell := func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		cells := make(map[string]string, len(columns))
		for _, c := range columns {
			if _, seen := cells[c]; !seen {
				cells[c] = cell(c)
			}
		}

		records = append(records, model.Invoice{
			Row:          n + 2,
			Number:       cell(model.ColumnNumber),
			Vendor:       cell(model.ColumnVendor),
			Status:       cell(model.ColumnStatus),
			XtractLink:   cell(model.ColumnXtractLink),
			NetsuiteLink: cell(model.ColumnNetsuiteLink),
			Comments:     cell(model.ColumnComments),
			Cells:        cells,
		})
	}

	return columns, records, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
