// Package model defines the core domain models used throughout the application.
package model

// Spreadsheet column headers.
const (
	ColumnStatus       = "Status"
	ColumnNumber       = "Nro factura"
	ColumnVendor       = "Proveedor"
	ColumnXtractLink   = "Link Xtract"
	ColumnNetsuiteLink = "Link Netsuite"
	ColumnComments     = "Comentarios Tecno Accion"
)

// DisplayColumns lists the columns shown in per-status detail tables, in order.
var DisplayColumns = []string{
	ColumnNumber,
	ColumnVendor,
	ColumnXtractLink,
	ColumnNetsuiteLink,
	ColumnComments,
}

// Invoice is one row of the status workbook.
type Invoice struct {
	Cells        map[string]string `json:"-"`
	Number       string            `json:"invoice_number,omitempty"`
	Vendor       string            `json:"vendor,omitempty"`
	Status       string            `json:"status"`
	XtractLink   string            `json:"xtract_link,omitempty"`
	NetsuiteLink string            `json:"netsuite_link,omitempty"`
	Comments     string            `json:"comments,omitempty"`
	Row          int               `json:"row"`
}

// Category returns the status category of the invoice.
func (i Invoice) Category() StatusCategory {
	return Categorize(i.Status)
}

// Value returns the raw cell for column, or "" when the row has no such column.
func (i Invoice) Value(column string) string {
	switch column {
	case ColumnStatus:
		return i.Status
	case ColumnNumber:
		return i.Number
	case ColumnVendor:
		return i.Vendor
	case ColumnXtractLink:
		return i.XtractLink
	case ColumnNetsuiteLink:
		return i.NetsuiteLink
	case ColumnComments:
		return i.Comments
	}
	return i.Cells[column]
}
