package dashboard

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/report"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pct":         func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"cell":        func(inv model.Invoice, column string) string { return inv.Value(column) },
		"isLink":      isLink,
		"statusLabel": statusLabel,
	}
}

func isLink(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}

func statusLabel(status string) string {
	if status == "" {
		return report.Blank
	}
	return status
}
