package report

import (
	"fmt"
	"time"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

// View is everything the dashboard shows for one filter selection.
type View struct {
	LoadedAt        time.Time       `json:"loaded_at"`
	Filter          Filter          `json:"filter"`
	StatusOptions   []string        `json:"status_options"`
	VendorOptions   []string        `json:"vendor_options"`
	Statuses        []StatusCount   `json:"statuses"`
	Categories      []CategoryCount `json:"categories"`
	Groups          []StatusGroup   `json:"groups"`
	Columns         []string        `json:"columns"`
	Summary         []SummaryRow    `json:"summary"`
	Metrics         Metrics         `json:"metrics"`
	Progress        Progress        `json:"progress"`
	TotalRecords    int             `json:"total_records"`
	FilteredRecords int             `json:"filtered_records"`
}

// Build computes the view for filter over all records. columns are the sheet
// headers, used to choose the detail table columns.
func Build(all []model.Invoice, columns []string, filter Filter, loadedAt time.Time) View {
	filter = filter.normalized()

	vendors := VendorOptions(all)
	if len(vendors) == 1 {
		filter.Vendor = All
	}

	filtered := filter.Apply(all)

	return View{
		LoadedAt:        loadedAt,
		Filter:          filter,
		StatusOptions:   StatusOptions(all),
		VendorOptions:   vendors,
		Statuses:        StatusDistribution(filtered),
		Categories:      CategoryDistribution(filtered),
		Groups:          GroupByStatus(filtered),
		Columns:         DetailColumns(columns),
		Summary:         Summary(all),
		Metrics:         ComputeMetrics(filtered),
		Progress:        ComputeProgress(all),
		TotalRecords:    len(all),
		FilteredRecords: len(filtered),
	}
}

// HasVendors reports whether the vendor selector has anything to offer.
func (v View) HasVendors() bool {
	return len(v.VendorOptions) > 1
}

// Notice returns the filtered-records warning, or "" when no filter is active.
func (v View) Notice() string {
	if !v.Filter.Active() {
		return ""
	}
	return fmt.Sprintf("Mostrando %d de %d registros (filtrado)", v.FilteredRecords, v.TotalRecords)
}

// RefreshedAt formats the load time the way the dashboard shows it.
func (v View) RefreshedAt() string {
	if v.LoadedAt.IsZero() {
		return ""
	}
	return v.LoadedAt.Format("02/01/2006 15:04")
}
