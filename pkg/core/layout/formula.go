package layout

import (
	"fmt"

	"finmodeler/pkg/core/sheet"
)

// col returns the column letter of period i (0-indexed; period 0 is column B).
func col(i int) string {
	return sheet.ColumnLetter(sheet.PeriodColumn(i))
}

// prevCol returns the column letter of period i-1.
func prevCol(i int) string {
	return sheet.ColumnLetter(sheet.PeriodColumn(i - 1))
}

// header appends a label-only section heading.
func (b *builder) header(label string) {
	b.sheet.Append(sheet.Row{Label: label, Bold: true})
}

// rowOf appends one full row built cell-by-cell and returns its position.
// The build callback receives the period index and the row's own (already
// fixed) position, so recurrence formulas can self-reference.
func (b *builder) rowOf(label string, bold bool, format sheet.Format, build func(i, row int) sheet.Cell) int {
	row := b.sheet.NextRow()
	cells := make([]sheet.Cell, b.periods)
	for i := 0; i < b.periods; i++ {
		c := build(i, row)
		if c.Kind == sheet.CellFormula && c.Format == sheet.FormatGeneral {
			c.Format = format
		}
		cells[i] = c
	}
	got := b.sheet.Append(sheet.Row{Label: label, Bold: bold, Cells: cells})
	if got != row {
		panic("layout: cursor moved during row emission")
	}
	return row
}

// formulaRow appends a row whose every cell is a currency formula.
func (b *builder) formulaRow(label string, bold bool, build func(i, row int) string) int {
	return b.rowOf(label, bold, sheet.FormatCurrency, func(i, row int) sheet.Cell {
		return sheet.Formula(build(i, row), sheet.FormatCurrency)
	})
}

// totalRow appends a bold SUM row over [fromRow, toRow] and records it as an
// anchor. An empty span still emits the structural row as zeros.
func (b *builder) totalRow(anchor string, fromRow, toRow int) int {
	row := b.formulaRow(anchor, true, func(i, _ int) string {
		if toRow < fromRow {
			return "=0"
		}
		return "=" + sheet.SumRange(sheet.PeriodColumn(i), fromRow, toRow)
	})
	b.setAnchor(anchor, row)
	return row
}

// deltaRow appends a working-capital change row: period 0 is the signed full
// balance, later periods are the signed period-over-period difference.
// sign +1 means a liability-side item (increase is a cash inflow).
func (b *builder) deltaRow(label string, balanceRow, sign int) int {
	return b.formulaRow(label, false, func(i, _ int) string {
		if i == 0 {
			if sign < 0 {
				return fmt.Sprintf("=-%s%d", col(i), balanceRow)
			}
			return fmt.Sprintf("=%s%d", col(i), balanceRow)
		}
		if sign < 0 {
			return fmt.Sprintf("=%s%d-%s%d", prevCol(i), balanceRow, col(i), balanceRow)
		}
		return fmt.Sprintf("=%s%d-%s%d", col(i), balanceRow, prevCol(i), balanceRow)
	})
}
