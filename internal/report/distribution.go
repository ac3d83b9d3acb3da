package report

import (
	"cmp"
	"slices"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

// StatusCount is the number of records carrying one raw status.
type StatusCount struct {
	Status string `json:"status"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
}

// CategoryCount is the number of records in one category.
type CategoryCount struct {
	Category model.StatusCategory `json:"category"`
	Color    string               `json:"color"`
	Count    int                  `json:"count"`
}

// StatusDistribution counts records per raw status, most frequent first.
// Ties keep first-seen order.
func StatusDistribution(records []model.Invoice) []StatusCount {
	index := make(map[string]int)
	var counts []StatusCount
	for _, inv := range records {
		i, ok := index[inv.Status]
		if !ok {
			i = len(counts)
			index[inv.Status] = i
			counts = append(counts, StatusCount{Status: inv.Status, Color: model.StatusColor(inv.Status)})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b StatusCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return counts
}

// CategoryCounts returns the count of every category, including empty ones.
func CategoryCounts(records []model.Invoice) map[model.StatusCategory]int {
	counts := make(map[model.StatusCategory]int, len(model.Categories()))
	for _, c := range model.Categories() {
		counts[c] = 0
	}
	for _, inv := range records {
		counts[model.Categorize(inv.Status)]++
	}
	return counts
}

// CategoryDistribution returns the non-empty categories, most frequent first.
// Ties keep display order.
func CategoryDistribution(records []model.Invoice) []CategoryCount {
	counts := CategoryCounts(records)

	var out []CategoryCount
	for _, c := range model.Categories() {
		if counts[c] == 0 {
			continue
		}
		out = append(out, CategoryCount{Category: c, Color: model.CategoryColor(c), Count: counts[c]})
	}

	slices.SortStableFunc(out, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// StatusGroup holds the records sharing one exact status.
type StatusGroup struct {
	Status         string          `json:"status"`
	Description    string          `json:"description,omitempty"`
	Records        []model.Invoice `json:"records"`
	HasDescription bool            `json:"has_description"`
}

// Count returns the number of records in the group.
func (g StatusGroup) Count() int {
	return len(g.Records)
}

// GroupByStatus partitions records by raw status in first-seen order.
func GroupByStatus(records []model.Invoice) []StatusGroup {
	index := make(map[string]int)
	var groups []StatusGroup
	for _, inv := range records {
		i, ok := index[inv.Status]
		if !ok {
			i = len(groups)
			index[inv.Status] = i
			desc, has := model.Description(inv.Status)
			groups = append(groups, StatusGroup{
				Status:         inv.Status,
				Description:    desc,
				HasDescription: has,
			})
		}
		groups[i].Records = append(groups[i].Records, inv)
	}
	return groups
}

// DetailColumns picks the display columns present in the sheet.
// When none are present every available column is shown.
func DetailColumns(available []string) []string {
	present := make(map[string]bool, len(available))
	for _, c := range available {
		present[c] = true
	}

	var cols []string
	for _, c := range model.DisplayColumns {
		if present[c] {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return slices.Clone(available)
	}
	return cols
}
