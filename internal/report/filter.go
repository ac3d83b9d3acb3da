// Package report computes the invoice status figures shown on the dashboard.
package report

import (
	"github.com/samber/lo"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

// All is the filter value that matches every record.
const All = "Todos"

// Blank is the status option and filter value for records whose status cell
// is empty. An empty Filter.Status still means All.
const Blank = "(sin estado)"

// Filter narrows a record set by exact status and vendor.
// An empty field behaves like All.
type Filter struct {
	Status string `json:"status"`
	Vendor string `json:"vendor"`
}

// NewFilter builds a filter, mapping empty values to All.
func NewFilter(status, vendor string) Filter {
	return Filter{Status: status, Vendor: vendor}.normalized()
}

func (f Filter) normalized() Filter {
	if f.Status == "" {
		f.Status = All
	}
	if f.Vendor == "" {
		f.Vendor = All
	}
	return f
}

// Active reports whether the filter constrains anything.
func (f Filter) Active() bool {
	f = f.normalized()
	return f.Status != All || f.Vendor != All
}

// Matches reports whether inv satisfies both constraints.
func (f Filter) Matches(inv model.Invoice) bool {
	f = f.normalized()
	if f.Status != All && inv.Status != wantStatus(f.Status) {
		return false
	}
	if f.Vendor != All && inv.Vendor != f.Vendor {
		return false
	}
	return true
}

func wantStatus(option string) string {
	if option == Blank {
		return ""
	}
	return option
}

// Apply returns the records matching the filter, in their original order.
// An inactive filter returns records unchanged.
func (f Filter) Apply(records []model.Invoice) []model.Invoice {
	if !f.Active() {
		return records
	}
	return lo.Filter(records, func(inv model.Invoice, _ int) bool {
		return f.Matches(inv)
	})
}

// StatusOptions returns All followed by each distinct status in first-seen order.
// An empty status is offered as Blank.
func StatusOptions(records []model.Invoice) []string {
	statuses := lo.Uniq(lo.Map(records, func(inv model.Invoice, _ int) string {
		if inv.Status == "" {
			return Blank
		}
		return inv.Status
	}))
	return append([]string{All}, statuses...)
}

// VendorOptions returns All followed by each distinct non-empty vendor in first-seen order.
func VendorOptions(records []model.Invoice) []string {
	vendors := lo.Uniq(lo.FilterMap(records, func(inv model.Invoice, _ int) (string, bool) {
		return inv.Vendor, inv.Vendor != ""
	}))
	return append([]string{All}, vendors...)
}
