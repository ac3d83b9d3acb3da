package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/report"
)

// progressWidth is the number of cells in the rendered progress bar.
const progressWidth = 30

// RenderView writes a terminal version of the dashboard.
func RenderView(w io.Writer, v report.View) error {
	var b strings.Builder

	b.WriteString(FormatTitle("Dashboard Proyecto Xtract"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Automatización de Carga de Facturas: Xtract → NetSuite"))
	b.WriteString("\n\n")

	if notice := v.Notice(); notice != "" {
		b.WriteString(FormatWarning(notice))
		b.WriteString("\n\n")
	}

	b.WriteString(renderMetrics(v.Metrics))
	b.WriteString("\n\n")

	b.WriteString(BoldStyle.Render("Facturas por Categoría"))
	b.WriteString("\n")
	b.WriteString(renderCounts(categoryRows(v.Categories), v.Metrics.Total))
	b.WriteString("\n")

	b.WriteString(BoldStyle.Render("Distribución por Estado"))
	b.WriteString("\n")
	b.WriteString(renderCounts(statusRows(v.Statuses), v.Metrics.Total))
	b.WriteString("\n")

	b.WriteString(BoldStyle.Render("Progreso Completado"))
	b.WriteString("\n")
	b.WriteString(ProgressBar(v.Progress))
	b.WriteString("\n\n")

	b.WriteString(BoldStyle.Render("Resumen Numérico"))
	b.WriteString("\n")
	b.WriteString(renderSummary(v.Summary))

	footer := fmt.Sprintf("Total de registros: %d", v.TotalRecords)
	if ts := v.RefreshedAt(); ts != "" {
		footer = fmt.Sprintf("Última actualización: %s · %s", ts, footer)
	}
	b.WriteString("\n")
	b.WriteString(FormatInfo(footer))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func renderMetrics(m report.Metrics) string {
	card := func(label, value string, color lipgloss.Color) string {
		return MetricStyle.BorderForeground(color).Render(
			lipgloss.JoinVertical(lipgloss.Left, SubtleStyle.Render(label), BoldStyle.Render(value)))
	}
	ratio := func(r report.Ratio) string {
		return fmt.Sprintf("%d (%.1f%%)", r.Count, r.Percent)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Facturas", fmt.Sprintf("%d", m.Total), SubtleColor),
		card("Completadas", ratio(m.Completed), SuccessColor),
		card("Pendientes", ratio(m.Pending), WarningColor),
		card("Con Errores", ratio(m.Errors), ErrorColor),
	)
}

type countRow struct {
	label string
	color string
	count int
}

func categoryRows(counts []report.CategoryCount) []countRow {
	rows := make([]countRow, len(counts))
	for i, c := range counts {
		rows[i] = countRow{label: c.Category.String(), color: c.Color, count: c.Count}
	}
	return rows
}

func statusRows(counts []report.StatusCount) []countRow {
	rows := make([]countRow, len(counts))
	for i, c := range counts {
		label := c.Status
		if label == "" {
			label = report.Blank
		}
		rows[i] = countRow{label: label, color: c.Color, count: c.Count}
	}
	return rows
}

func renderCounts(rows []countRow, total int) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("  No hay facturas en el filtro actual") + "\n"
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		pct := 0.0
		if total > 0 {
			pct = float64(r.count) / float64(total) * 100
		}
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(r.color)).Render("●")
		fmt.Fprintf(tw, "  %s %s\t%d\t%.1f%%\n", marker, r.label, r.count, pct)
	}
	_ = tw.Flush()
	return b.String()
}

func renderSummary(rows []report.SummaryRow) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\n",
		TableHeaderStyle.Render("Categoría"),
		TableHeaderStyle.Render("Cantidad"),
		TableHeaderStyle.Render("Porcentaje"))
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%d\t%.1f\n", r.Label, r.Count, r.Percent)
	}
	_ = tw.Flush()
	return b.String()
}

// ProgressBar renders global completion as a bar with its figures.
func ProgressBar(p report.Progress) string {
	filled := int(p.Percent / 100 * progressWidth)
	if filled > progressWidth {
		filled = progressWidth
	}
	if filled < 0 {
		filled = 0
	}

	style := SuccessStyle
	switch p.Band() {
	case "low":
		style = ErrorStyle
	case "fair":
		style = WarningStyle
	case "good":
		style = InfoStyle
	}

	bar := style.Render(strings.Repeat("█", filled)) + SubtleStyle.Render(strings.Repeat("░", progressWidth-filled))
	return fmt.Sprintf("  %s %.1f%%  %d de %d facturas", bar, p.Percent, p.Done, p.Total)
}

// RenderStatuses writes the known status table with category and description.
func RenderStatuses(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		TableHeaderStyle.Render("Estado"),
		TableHeaderStyle.Render("Categoría"),
		TableHeaderStyle.Render("Descripción"))
	for _, s := range model.KnownStatuses() {
		desc, _ := model.Description(s)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s, model.Categorize(s), desc)
	}
	return tw.Flush()
}
