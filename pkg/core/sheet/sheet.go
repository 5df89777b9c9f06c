// Package sheet defines the workbook-like structure the generator emits and
// the coordinate scheme its formulas use. This is the whole contract with the
// external renderer/writer: formula strings over row/column coordinates, plus
// the iterative-calculation settings the renderer needs for circular cells.
package sheet

// Format is a spreadsheet number-format code attached to a cell.
type Format string

const (
	FormatGeneral  Format = ""
	FormatCurrency Format = "#,##0.00"
	FormatPercent  Format = "0.00%"
	FormatInteger  Format = "#,##0"
	FormatRatio    Format = "0.00"
	FormatMonths   Format = "0.0"
)

// CellKind discriminates the payload of a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellFormula
	CellNumber
	CellText
)

// Cell is one grid cell: a formula (leading "="), a literal number, a literal
// text, or empty.
type Cell struct {
	Kind    CellKind
	Formula string
	Number  float64
	Text    string
	Format  Format
}

// Formula builds a formula cell.
func Formula(f string, format Format) Cell {
	return Cell{Kind: CellFormula, Formula: f, Format: format}
}

// Number builds a literal numeric cell.
func Number(v float64, format Format) Cell {
	return Cell{Kind: CellNumber, Number: v, Format: format}
}

// Text builds a literal text cell.
func Text(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// Row is one labeled grid row. Cells[i] belongs to period i (column i+2 on
// the sheet; column A holds the label).
type Row struct {
	Label string
	Bold  bool
	Cells []Cell
}

// Sheet is one named view. Rows[0] sits on spreadsheet row 2; row 1 is the
// header. Appending is the only way rows gain positions, which makes the
// append cursor the sole piece of layout state.
type Sheet struct {
	Name   string
	Header []string
	Rows   []Row
}

// NewSheet creates a sheet with the given header row.
func NewSheet(name string, header ...string) *Sheet {
	return &Sheet{Name: name, Header: header}
}

// Append adds a row and returns its absolute spreadsheet row number. The
// returned position never changes afterwards.
func (s *Sheet) Append(r Row) int {
	s.Rows = append(s.Rows, r)
	return len(s.Rows) + 1
}

// AppendBlank adds n empty spacer rows.
func (s *Sheet) AppendBlank(n int) {
	for i := 0; i < n; i++ {
		s.Rows = append(s.Rows, Row{})
	}
}

// NextRow returns the spreadsheet row the next Append will occupy.
func (s *Sheet) NextRow() int {
	return len(s.Rows) + 2
}

// RowAt returns the row stored at absolute spreadsheet row n, or nil.
func (s *Sheet) RowAt(n int) *Row {
	i := n - 2
	if i < 0 || i >= len(s.Rows) {
		return nil
	}
	return &s.Rows[i]
}

// CalcSettings is the iterative-calculation configuration handed through to
// the renderer. The core only carries it; evaluation is external.
type CalcSettings struct {
	Iterative     bool
	MaxIterations int
	Tolerance     float64
}

// DefaultCalcSettings matches the bounded fixed-point setup the model was
// designed against.
func DefaultCalcSettings() CalcSettings {
	return CalcSettings{Iterative: true, MaxIterations: 100, Tolerance: 0.001}
}

// Workbook is the generator's complete output: the ordered views plus the
// calculation settings for the renderer.
type Workbook struct {
	Sheets []*Sheet
	Calc   CalcSettings
}

// Sheet returns the named sheet, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}
