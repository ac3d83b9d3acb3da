package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/metrics"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/report"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/sheet"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/testutil"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Table() (*sheet.Table, error) {
	args := m.Called()
	t, _ := args.Get(0).(*sheet.Table)
	return t, args.Error(1)
}

func (m *mockSource) Reload() (*sheet.Table, error) {
	args := m.Called()
	t, _ := args.Get(0).(*sheet.Table)
	return t, args.Error(1)
}

func sampleTable(t *testing.T) *sheet.Table {
	t.Helper()
	b := testutil.NewBuilder(t).WithFixture(testutil.FixtureMixed)
	return &sheet.Table{
		LoadedAt: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		Identity: sheet.Identity{Checksum: "abc123"},
		Columns:  b.Columns(),
		Records:  b.Invoices(),
	}
}

func loadFailure() error {
	return fmt.Errorf("%w: %s: %w", common.ErrLoadFailure, "facturas.xlsx", common.ErrMissingColumn)
}

func newTestServer(t *testing.T, source Source, opts Options) *Server {
	t.Helper()
	if opts.FileName == "" {
		opts.FileName = "facturas.xlsx"
	}
	s, err := New(source, opts)
	require.NoError(t, err)
	return s
}

func serve(s *Server, method, target string, body url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestDashboard_RendersView(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(sampleTable(t), nil)
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Dashboard Proyecto Xtract")
	assert.Contains(t, body, "50.0%")
	assert.Contains(t, body, "Progreso Completado")
	assert.Contains(t, body, `<div class="value">50.0%</div><div class="muted">2 de 4 facturas</div>`)
	assert.Contains(t, body, "<th>Categoría</th><th>Cantidad</th><th>Porcentaje</th>")
	assert.Contains(t, body, "Última actualización: 01/06/2024 08:00")
	assert.Contains(t, body, "Total de registros: 4")
	assert.Contains(t, body, `href="https://xtract.example.com/F-001"`)
	assert.Contains(t, body, "/charts/status?status=Todos&amp;vendor=Todos")
	assert.Contains(t, body, "Globex")
	assert.NotContains(t, body, "filtrado")
	source.AssertExpectations(t)
}

func TestDashboard_Filtered(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(sampleTable(t), nil)
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/?vendor=ACME", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Mostrando 2 de 4 registros (filtrado)")
	assert.Contains(t, body, `<option value="ACME" selected>`)
	assert.NotContains(t, body, "F-003")
}

func TestDashboard_EmptyFilterResult(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(sampleTable(t), nil)
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/?status=Error+NS", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Mostrando 0 de 4 registros (filtrado)")
	assert.Contains(t, body, "No hay facturas en el filtro actual")
}

func TestDashboard_BlankStatusFilter(t *testing.T) {
	b := testutil.NewBuilder(t).
		WithFixture(testutil.FixtureMixed).
		WithInvoice("F-005", "ACME", "")
	table := &sheet.Table{Columns: b.Columns(), Records: b.Invoices()}

	source := &mockSource{}
	source.On("Table").Return(table, nil)
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/?"+url.Values{"status": {report.Blank}}.Encode(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Mostrando 1 de 5 registros (filtrado)")
	assert.Contains(t, body, `<option value="(sin estado)" selected>`)
	assert.Contains(t, body, "F-005")
	assert.NotContains(t, body, "F-001")
}

func TestDashboard_LoadFailure(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(nil, loadFailure())
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No se pudo cargar el archivo &#39;facturas.xlsx&#39;")
	assert.Contains(t, body, "missing required column")
	assert.NotContains(t, body, "Resumen Numérico")
}

func TestSummaryAPI(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(sampleTable(t), nil)
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/api/summary?status=Done", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var v report.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, 4, v.TotalRecords)
	assert.Equal(t, 2, v.FilteredRecords)
	assert.Equal(t, model.StatusDone, v.Filter.Status)
	assert.Equal(t, 2, v.Progress.Done)
	assert.InDelta(t, 100.0, v.Metrics.Completed.Percent, 0.001)
}

func TestSummaryAPI_LoadFailure(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(nil, loadFailure())
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/api/summary", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "No se pudo cargar el archivo 'facturas.xlsx'", payload["error"])
}

func TestReload(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "success redirects with filters", wantCode: http.StatusSeeOther},
		{name: "failure shows error page", err: loadFailure(), wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockSource{}
			if tt.err != nil {
				source.On("Reload").Return(nil, tt.err).Once()
			} else {
				source.On("Reload").Return(sampleTable(t), nil).Once()
			}
			s := newTestServer(t, source, Options{})

			rec := serve(s, http.MethodPost, "/reload", url.Values{
				"status": {model.StatusDone},
				"vendor": {"ACME"},
			})

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.err == nil {
				assert.Equal(t, "/?status=Done&vendor=ACME", rec.Header().Get("Location"))
			}
			source.AssertExpectations(t)
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		table    *sheet.Table
		err      error
		wantCode int
	}{
		{name: "loaded", table: sampleTable(t), wantCode: http.StatusOK},
		{name: "load failure", err: loadFailure(), wantCode: http.StatusServiceUnavailable},
		{name: "other error", err: assert.AnError, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockSource{}
			source.On("Table").Return(tt.table, tt.err)
			s := newTestServer(t, source, Options{})

			rec := serve(s, http.MethodGet, "/healthz", nil)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCharts(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(sampleTable(t), nil)
	s := newTestServer(t, source, Options{})

	tests := []struct {
		path string
		want []string
	}{
		{path: "/charts/status", want: []string{"Distribución de Estados", model.StatusErrorXtract, "#e83e8c"}},
		{path: "/charts/category", want: []string{"Facturas por Categoría", "Completado", "Pendiente"}},
		{path: "/charts/progress", want: []string{"% Completado", "2 de 4 facturas", "+0.0%", "umbral 90% no alcanzado", "#d1ecf1"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(s, http.MethodGet, tt.path, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			body := rec.Body.String()
			assert.Contains(t, body, "echarts")
			for _, w := range tt.want {
				assert.Contains(t, body, w)
			}
		})
	}
}

func TestCharts_LoadFailure(t *testing.T) {
	source := &mockSource{}
	source.On("Table").Return(nil, loadFailure())
	s := newTestServer(t, source, Options{})

	rec := serve(s, http.MethodGet, "/charts/status", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := metrics.New(reg)

	source := &mockSource{}
	source.On("Table").Return(sampleTable(t), nil)
	s := newTestServer(t, source, Options{Gatherer: reg, Requests: m})

	serve(s, http.MethodGet, "/healthz", nil)
	rec := serve(s, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "xtract_http_requests_total")
	assert.Contains(t, body, `route="/healthz"`)
}

func TestMetricsEndpoint_DisabledWithoutGatherer(t *testing.T) {
	s := newTestServer(t, &mockSource{}, Options{})

	rec := serve(s, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
