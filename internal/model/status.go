package model

import "strings"

// Known status labels used by the invoice team.
const (
	StatusDone            = "Done"
	StatusInProgress      = "En Proceso"
	StatusError           = "Error"
	StatusErrorNS         = "Error NS"
	StatusErrorXtract     = "Error Xtract"
	StatusOkXtract        = "Ok Xtract - No pasar a Sandbox"
	StatusPendingAnalysis = "Pendiente análisis Tekiio"
	StatusPendingTekiio   = "Pendiente Tekiio"
)

// Raw status fragments used by substring rules.
const (
	FragmentError      = "Error"
	FragmentPending    = "Pendiente"
	FragmentInProgress = "En Proceso"
	FragmentProcess    = "Proceso"
)

// StatusCategory is the coarse grouping of a status label.
type StatusCategory string

// Status categories, labelled as shown on the dashboard.
const (
	CategoryCompleted  StatusCategory = "Completado"
	CategoryError      StatusCategory = "Error"
	CategoryPending    StatusCategory = "Pendiente"
	CategoryInProgress StatusCategory = "En Proceso"
	CategoryOther      StatusCategory = "Otros"
)

// Categories returns every category in display order.
func Categories() []StatusCategory {
	return []StatusCategory{
		CategoryCompleted,
		CategoryError,
		CategoryPending,
		CategoryInProgress,
		CategoryOther,
	}
}

func (c StatusCategory) String() string {
	return string(c)
}

// MatchType selects how a rule compares a status label.
type MatchType string

// Match type constants.
const (
	MatchExact    MatchType = "exact"
	MatchContains MatchType = "contains"
)

// CategoryRule maps status labels to a category.
type CategoryRule struct {
	Category StatusCategory
	Match    MatchType
	Values   []string
}

// Matches reports whether status satisfies the rule. Comparisons are case-sensitive.
func (r CategoryRule) Matches(status string) bool {
	for _, v := range r.Values {
		switch r.Match {
		case MatchExact:
			if status == v {
				return true
			}
		case MatchContains:
			if strings.Contains(status, v) {
				return true
			}
		}
	}
	return false
}

// completedStatuses are the labels that count as finished work.
var completedStatuses = []string{StatusDone, StatusOkXtract}

// categoryRules is evaluated top to bottom; the first match wins.
// Error is checked before Pendiente, so a label carrying both is an Error.
var categoryRules = []CategoryRule{
	{Category: CategoryCompleted, Match: MatchExact, Values: completedStatuses},
	{Category: CategoryError, Match: MatchContains, Values: []string{FragmentError}},
	{Category: CategoryPending, Match: MatchContains, Values: []string{FragmentPending}},
	{Category: CategoryInProgress, Match: MatchContains, Values: []string{FragmentInProgress}},
}

// CategoryRules returns a copy of the ordered categorization rules.
func CategoryRules() []CategoryRule {
	rules := make([]CategoryRule, len(categoryRules))
	copy(rules, categoryRules)
	return rules
}

// Categorize maps a raw status label to exactly one category.
func Categorize(status string) StatusCategory {
	for _, rule := range categoryRules {
		if rule.Matches(status) {
			return rule.Category
		}
	}
	return CategoryOther
}

// IsCompleted reports whether status is one of the finished labels.
func IsCompleted(status string) bool {
	for _, s := range completedStatuses {
		if status == s {
			return true
		}
	}
	return false
}

var statusDescriptions = map[string]string{
	StatusDone:            "✅ La factura ya se encuentra bien cargada tanto en Xtract como en NetSuite",
	StatusInProgress:      "🔄 Se debe analizar la factura y parametrizar en Xtract",
	StatusError:           "❌ Hay algún error en Xtract o en NetSuite",
	StatusErrorNS:         "🔴 La factura se cargó bien en Xtract, pero hay un error de parametrización en NetSuite",
	StatusErrorXtract:     "🟠 Hay un error en la lectura de la factura en Xtract",
	StatusOkXtract:        "🟢 La factura se cargó bien en Xtract, no amerita probarla en NetSuite",
	StatusPendingAnalysis: "🔍 La consultora de NetSuite debe analizar el caso",
	StatusPendingTekiio:   "⏳ Está pendiente de migrar a NetSuite",
}

// Description returns the explanation for an exact status label.
func Description(status string) (string, bool) {
	d, ok := statusDescriptions[status]
	return d, ok
}

// KnownStatuses returns the labels that have a description, in a stable order.
func KnownStatuses() []string {
	return []string{
		StatusDone,
		StatusInProgress,
		StatusError,
		StatusErrorNS,
		StatusErrorXtract,
		StatusOkXtract,
		StatusPendingAnalysis,
		StatusPendingTekiio,
	}
}

// DefaultColor is used for statuses without an assigned color.
const DefaultColor = "#9e9e9e"

var statusColors = map[string]string{
	StatusDone:            "#28a745",
	StatusInProgress:      "#ffc107",
	StatusError:           "#dc3545",
	StatusErrorNS:         "#fd7e14",
	StatusErrorXtract:     "#e83e8c",
	StatusOkXtract:        "#17a2b8",
	StatusPendingAnalysis: "#6f42c1",
	StatusPendingTekiio:   "#6c757d",
}

var categoryColors = map[StatusCategory]string{
	CategoryCompleted:  "#28a745",
	CategoryError:      "#dc3545",
	CategoryPending:    "#6c757d",
	CategoryInProgress: "#ffc107",
	CategoryOther:      "#17a2b8",
}

// StatusColor returns the chart color for a raw status label.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return DefaultColor
}

// CategoryColor returns the chart color for a category.
func CategoryColor(category StatusCategory) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultColor
}
