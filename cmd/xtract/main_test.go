package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/config"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/report"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/testutil"
)

func testConfig(path string) config.Config {
	return config.Config{
		DataFile:        path,
		CSVDelimiter:    ",",
		ServerAddr:      config.DefaultServerAddr,
		ReadTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestRunSummary(t *testing.T) {
	path := testutil.NewBuilder(t).WithFixture(testutil.FixtureMixed).WriteCSV(t.TempDir())

	tests := []struct {
		name   string
		filter report.Filter
		want   []string
	}{
		{
			name:   "unfiltered",
			filter: report.NewFilter("", ""),
			want:   []string{"2 de 4 facturas", "Total de registros: 4"},
		},
		{
			name:   "by vendor",
			filter: report.NewFilter("", "Globex"),
			want:   []string{"Mostrando 2 de 4 registros (filtrado)", "2 de 4 facturas"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, runSummary(&buf, testConfig(path), tt.filter))

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestSummaryFilter(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		statusSet bool
		want      report.Filter
	}{
		{name: "default", status: report.All, want: report.NewFilter(report.All, report.All)},
		{name: "explicit empty status", status: "", statusSet: true, want: report.NewFilter(report.Blank, report.All)},
		{name: "named status", status: "Done", statusSet: true, want: report.NewFilter("Done", report.All)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summaryFilter(tt.status, report.All, tt.statusSet))
		})
	}
}

func TestRunSummary_BlankStatus(t *testing.T) {
	path := testutil.NewBuilder(t).
		WithFixture(testutil.FixtureMixed).
		WithInvoice("F-005", "ACME", "").
		WriteCSV(t.TempDir())

	var buf bytes.Buffer
	require.NoError(t, runSummary(&buf, testConfig(path), summaryFilter("", report.All, true)))

	assert.Contains(t, buf.String(), "Mostrando 1 de 5 registros (filtrado)")
}

func TestRunSummary_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	var buf bytes.Buffer
	err := runSummary(&buf, testConfig(path), report.NewFilter("", ""))

	require.Error(t, err)
	assert.True(t, common.IsLoadFailure(err))
	assert.Equal(t, "No se pudo cargar el archivo 'missing.xlsx'", common.UserMessage(err))
	assert.Empty(t, buf.String())
}

func TestStartWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("missing directory disables the watch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nodir", "facturas.xlsx")

		assert.Nil(t, startWatcher(context.Background(), newLoader(testConfig(path))))
	})

	t.Run("existing directory", func(t *testing.T) {
		path := testutil.NewBuilder(t).WithFixture(testutil.FixtureMixed).WriteCSV(t.TempDir())

		w := startWatcher(context.Background(), newLoader(testConfig(path)))
		require.NotNil(t, w)
		w.Stop()
	})
}

func TestStatusesCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := statusesCmd()
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Pendiente Tekiio")
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "xtract dev\n", buf.String())
}
