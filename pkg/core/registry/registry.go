// Package registry assigns every scalar assumption a stable, addressable
// location on the Assumptions listing and hands back an opaque reference
// token reused by every formula that depends on that scalar. A fresh registry
// is built per generation pass, so concurrent generations never share rows.
package registry

import (
	"fmt"

	"finmodeler/pkg/core/sheet"
)

// SheetName is the name of the assumptions listing view.
const SheetName = "Assumptions"

// valueColumn is the column holding registered values; a token is simply
// "this listing's row, column fixed".
const valueColumn = 3

// Ref is an opaque, stable address of one registered scalar, e.g.
// "Assumptions!$C$7".
type Ref string

// Registry is the ordered assumptions listing. Registration is total over
// well-formed input: it cannot fail, it only appends.
type Registry struct {
	listing *sheet.Sheet
}

// New creates an empty registry with the listing header in place.
func New() *Registry {
	return &Registry{
		listing: sheet.NewSheet(SheetName, "Category", "Driver", "Value", "Notes"),
	}
}

// Register appends one (category, label, value, format) row and returns the
// token addressing its value cell.
func (r *Registry) Register(category, label string, value float64, format sheet.Format) Ref {
	row := r.listing.Append(sheet.Row{
		Label: category,
		Cells: []sheet.Cell{
			sheet.Text(label),
			sheet.Number(value, format),
		},
	})
	return Ref(fmt.Sprintf("%s!$%s$%d", SheetName, sheet.ColumnLetter(valueColumn), row))
}

// Listing returns the assumptions view for inclusion in the workbook.
func (r *Registry) Listing() *sheet.Sheet {
	return r.listing
}

// Count returns the number of registered assumptions.
func (r *Registry) Count() int {
	return len(r.listing.Rows)
}
