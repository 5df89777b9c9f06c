package sheet

import "fmt"

// ColumnLetter converts a 1-based column index to its letter form
// (1 -> A, 26 -> Z, 27 -> AA).
func ColumnLetter(col int) string {
	if col < 1 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// PeriodColumn returns the 1-based column index of period i (0-indexed).
// Column A carries labels, so period 0 lives in column B.
func PeriodColumn(period int) int {
	return period + 2
}

// CellRef renders a same-sheet reference like "B12".
func CellRef(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row)
}

// PeriodRef renders a same-sheet reference for a period-indexed cell.
func PeriodRef(period, row int) string {
	return CellRef(PeriodColumn(period), row)
}

// CrossRef renders a cross-sheet reference like "'36 Month Model'!B12".
func CrossRef(sheetName string, col, row int) string {
	return fmt.Sprintf("'%s'!%s%d", sheetName, ColumnLetter(col), row)
}

// SumRange renders a same-column range sum like "SUM(B4:B6)".
func SumRange(col, fromRow, toRow int) string {
	l := ColumnLetter(col)
	return fmt.Sprintf("SUM(%s%d:%s%d)", l, fromRow, l, toRow)
}
