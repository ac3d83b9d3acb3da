package sheet

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, path string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func standardRows() [][]any {
	return [][]any{
		{"Nro factura", "Proveedor", "Status", "Link Xtract", "Link Netsuite", "Comentarios Tecno Accion"},
		{"F-001", "ACME", "Done", "https://xtract/1", "https://ns/1", ""},
		{"F-002", "Globex", "Error NS", "https://xtract/2", "", "Falta cuenta"},
		{"F-003", "", "Pendiente Tekiio", "", "", ""},
	}
}

func tempWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Status proyecto xtract.xlsx")
	writeXLSX(t, path, standardRows())
	return path
}

type recordingObserver struct {
	failures  []error
	succeeded int
	mu        sync.Mutex
}

func (o *recordingObserver) LoadSucceeded(string, int, time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.succeeded++
}

func (o *recordingObserver) LoadFailed(_ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, err)
}

func (o *recordingObserver) counts() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.succeeded, len(o.failures)
}
