package dashboard

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/report"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/sheet"
)

// Form and query parameter names.
const (
	paramStatus = "status"
	paramVendor = "vendor"
)

// dashboardPage feeds dashboard.html. ChartQuery is already encoded and must
// not be escaped again.
type dashboardPage struct {
	FileName   string
	ChartQuery template.URL
	View       report.View
}

type errorPage struct {
	FileName string
	Message  string
	Detail   string
}

func filterFrom(c *gin.Context) report.Filter {
	status := c.Query(paramStatus)
	vendor := c.Query(paramVendor)
	if c.Request.Method == http.MethodPost {
		status = c.DefaultPostForm(paramStatus, status)
		vendor = c.DefaultPostForm(paramVendor, vendor)
	}
	return report.NewFilter(status, vendor)
}

func filterQuery(f report.Filter) string {
	q := url.Values{}
	q.Set(paramStatus, f.Status)
	q.Set(paramVendor, f.Vendor)
	return q.Encode()
}

// view loads the snapshot and builds the view for the request's filter.
func (s *Server) view(c *gin.Context) (report.View, error) {
	table, err := s.source.Table()
	if err != nil {
		return report.View{}, err
	}
	return buildView(table, filterFrom(c)), nil
}

func buildView(table *sheet.Table, f report.Filter) report.View {
	return report.Build(table.Records, table.Columns, f, table.LoadedAt)
}

func (s *Server) loadFailureMessage() string {
	return "No se pudo cargar el archivo '" + s.fileName + "'"
}

func (s *Server) renderLoadFailure(c *gin.Context, err error) {
	c.HTML(http.StatusServiceUnavailable, "error.html", errorPage{
		FileName: s.fileName,
		Message:  s.loadFailureMessage(),
		Detail:   err.Error(),
	})
}

func (s *Server) jsonLoadFailure(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":  s.loadFailureMessage(),
		"detail": err.Error(),
	})
}

func (s *Server) handleDashboard(c *gin.Context) {
	v, err := s.view(c)
	if err != nil {
		s.renderLoadFailure(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", dashboardPage{
		FileName:   s.fileName,
		ChartQuery: template.URL(filterQuery(v.Filter)), //nolint:gosec // built by url.Values.Encode
		View:       v,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	v, err := s.view(c)
	if err != nil {
		s.jsonLoadFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleReload(c *gin.Context) {
	f := filterFrom(c)

	if _, err := s.source.Reload(); err != nil {
		s.renderLoadFailure(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/?"+filterQuery(f))
}

func (s *Server) handleHealth(c *gin.Context) {
	table, err := s.source.Table()
	if err != nil {
		status := http.StatusServiceUnavailable
		if !errors.Is(err, common.ErrLoadFailure) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"records":  table.Len(),
		"checksum": table.Identity.Checksum,
	})
}

func (s *Server) handleStatusChart(c *gin.Context) {
	s.renderChart(c, statusPie)
}

func (s *Server) handleCategoryChart(c *gin.Context) {
	s.renderChart(c, categoryBar)
}

func (s *Server) handleProgressChart(c *gin.Context) {
	s.renderChart(c, progressGauge)
}

func (s *Server) renderChart(c *gin.Context, build func(report.View) renderer) {
	v, err := s.view(c)
	if err != nil {
		s.jsonLoadFailure(c, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := build(v).Render(c.Writer); err != nil {
		common.LogError(err, "Failed to render chart", common.Fields{"path": c.Request.URL.Path})
	}
}
