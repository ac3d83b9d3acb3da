package report

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

// Gauge constants for the global progress indicator, in percent.
const (
	GaugeReference = 50.0
	GaugeThreshold = 90.0
)

// Ratio is a count together with its share of a total, in percent.
type Ratio struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

func newRatio(count, total int) Ratio {
	return Ratio{Count: count, Percent: percent(count, total)}
}

// percent returns n as a percentage of total, or 0 when total is 0.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Metrics are the headline figures of a record set.
type Metrics struct {
	Total     int   `json:"total"`
	Completed Ratio `json:"completed"`
	Pending   Ratio `json:"pending"`
	Errors    Ratio `json:"errors"`
}

// ComputeMetrics counts completed, pending and errored invoices.
//
// Completed follows Categorize. Pending and Errors match the raw status text,
// so "Error Pendiente" is counted in both even though it categorizes as Error.
func ComputeMetrics(records []model.Invoice) Metrics {
	total := len(records)

	completed := lo.CountBy(records, func(inv model.Invoice) bool {
		return model.Categorize(inv.Status) == model.CategoryCompleted
	})
	pending := lo.CountBy(records, func(inv model.Invoice) bool {
		return strings.Contains(inv.Status, model.FragmentPending)
	})
	errored := lo.CountBy(records, func(inv model.Invoice) bool {
		return strings.Contains(inv.Status, model.FragmentError)
	})

	return Metrics{
		Total:     total,
		Completed: newRatio(completed, total),
		Pending:   newRatio(pending, total),
		Errors:    newRatio(errored, total),
	}
}

// Progress is the completion of the whole workbook, independent of filters.
type Progress struct {
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// ComputeProgress measures completion over the unfiltered records.
func ComputeProgress(all []model.Invoice) Progress {
	done := lo.CountBy(all, func(inv model.Invoice) bool {
		return model.IsCompleted(inv.Status)
	})
	return Progress{
		Done:    done,
		Total:   len(all),
		Percent: percent(done, len(all)),
	}
}

// Remaining returns how many invoices are not finished yet.
func (p Progress) Remaining() int {
	return p.Total - p.Done
}

// Delta returns the distance from the gauge reference.
func (p Progress) Delta() float64 {
	return p.Percent - GaugeReference
}

// Band names the gauge band the progress falls in.
func (p Progress) Band() string {
	switch {
	case p.Percent < 25:
		return "low"
	case p.Percent < 50:
		return "fair"
	case p.Percent < 75:
		return "good"
	default:
		return "great"
	}
}

// bandColors are the gauge background colors of each band.
var bandColors = map[string]string{
	"low":   "#ffcccc",
	"fair":  "#fff3cd",
	"good":  "#d1ecf1",
	"great": "#d4edda",
}

// BandColor returns the color of the band the progress falls in.
func (p Progress) BandColor() string {
	return bandColors[p.Band()]
}

// ReachedThreshold reports whether the progress passed the gauge threshold marker.
func (p Progress) ReachedThreshold() bool {
	return p.Percent >= GaugeThreshold
}

// SummaryRow is one line of the numeric summary table.
type SummaryRow struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Summary labels.
const (
	SummaryTotal     = "Total Facturas"
	SummaryCompleted = "Completadas"
	SummaryOpen      = "En Proceso/Pendientes"
	SummaryErrors    = "Con Errores"
)

// Summary builds the numeric summary over the unfiltered records.
// Percentages are rounded to one decimal.
func Summary(all []model.Invoice) []SummaryRow {
	total := len(all)
	count := func(pred func(status string) bool) int {
		return lo.CountBy(all, func(inv model.Invoice) bool { return pred(inv.Status) })
	}

	rows := []SummaryRow{
		{Label: SummaryTotal, Count: total},
		{Label: SummaryCompleted, Count: count(model.IsCompleted)},
		{Label: SummaryOpen, Count: count(func(s string) bool {
			return strings.Contains(s, model.FragmentProcess) || strings.Contains(s, model.FragmentPending)
		})},
		{Label: SummaryErrors, Count: count(func(s string) bool {
			return strings.Contains(s, model.FragmentError)
		})},
	}
	for i := range rows {
		rows[i].Percent = round1(percent(rows[i].Count, total))
	}
	return rows
}
