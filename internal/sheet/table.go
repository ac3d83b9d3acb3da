package sheet

import (
	"slices"
	"time"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/model"
)

// Identity describes the file a table was read from.
type Identity struct {
	ModTime  time.Time `json:"mod_time"`
	Path     string    `json:"path"`
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
}

// SameStat reports whether size and modification time match.
func (id Identity) SameStat(other Identity) bool {
	return id.Size == other.Size && id.ModTime.Equal(other.ModTime)
}

// Table is an immutable snapshot of the workbook.
type Table struct {
	LoadedAt time.Time
	Identity Identity
	Sheet    string
	Columns  []string
	Records  []model.Invoice
}

// Len returns the number of invoices.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the header row contains column.
func (t *Table) HasColumn(column string) bool {
	return t != nil && slices.Contains(t.Columns, column)
}
