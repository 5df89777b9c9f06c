// Package xlsx renders a generated workbook to an .xlsx file. It is the only
// package that touches excelize; everything upstream works on the sheet
// interchange structures, so the renderer can be swapped without touching the
// generator.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"finmodeler/pkg/core/sheet"
)

const (
	headerFillColor = "4F81BD"
	labelColWidth   = 30
	dataColWidth    = 15
)

// Writer renders workbooks to xlsx. The zero value is ready to use.
type Writer struct{}

// WriteFile renders the workbook and saves it at path.
func (w Writer) WriteFile(wb *sheet.Workbook, path string) error {
	f, err := w.build(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// Write renders the workbook and streams it to out.
func (w Writer) Write(wb *sheet.Workbook, out io.Writer) error {
	f, err := w.build(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(out)
	return err
}

func (w Writer) build(wb *sheet.Workbook) (*excelize.File, error) {
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("xlsx: workbook has no sheets")
	}
	f := excelize.NewFile()
	r := &renderer{f: f, styles: make(map[styleKey]int)}

	for i, s := range wb.Sheets {
		if i == 0 {
			// excelize seeds every file with "Sheet1"; rename it in place.
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			f.Close()
			return nil, err
		}
		if err := r.renderSheet(s); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := r.applyCalc(wb.Calc); err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

type styleKey struct {
	format sheet.Format
	bold   bool
	header bool
}

type renderer struct {
	f      *excelize.File
	styles map[styleKey]int
}

func (r *renderer) renderSheet(s *sheet.Sheet) error {
	headerStyle, err := r.style(styleKey{header: true})
	if err != nil {
		return err
	}
	for i, h := range s.Header {
		addr := sheet.CellRef(i+1, 1)
		if err := r.f.SetCellValue(s.Name, addr, h); err != nil {
			return err
		}
		if err := r.f.SetCellStyle(s.Name, addr, addr, headerStyle); err != nil {
			return err
		}
	}

	for ri := range s.Rows {
		row := &s.Rows[ri]
		num := ri + 2
		if row.Label != "" {
			addr := sheet.CellRef(1, num)
			if err := r.f.SetCellValue(s.Name, addr, row.Label); err != nil {
				return err
			}
			if row.Bold {
				st, err := r.style(styleKey{bold: true})
				if err != nil {
					return err
				}
				if err := r.f.SetCellStyle(s.Name, addr, addr, st); err != nil {
					return err
				}
			}
		}
		for ci := range row.Cells {
			if err := r.renderCell(s.Name, ci+2, num, row.Bold, &row.Cells[ci]); err != nil {
				return err
			}
		}
	}

	if err := r.f.SetColWidth(s.Name, "A", "A", labelColWidth); err != nil {
		return err
	}
	if n := len(s.Header); n > 1 {
		last := sheet.ColumnLetter(n)
		if err := r.f.SetColWidth(s.Name, "B", last, dataColWidth); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderCell(sheetName string, col, row int, bold bool, c *sheet.Cell) error {
	if c.Kind == sheet.CellEmpty {
		return nil
	}
	addr := sheet.CellRef(col, row)
	switch c.Kind {
	case sheet.CellFormula:
		if err := r.f.SetCellFormula(sheetName, addr, strings.TrimPrefix(c.Formula, "=")); err != nil {
			return err
		}
	case sheet.CellNumber:
		if err := r.f.SetCellValue(sheetName, addr, c.Number); err != nil {
			return err
		}
	case sheet.CellText:
		if err := r.f.SetCellValue(sheetName, addr, c.Text); err != nil {
			return err
		}
	}
	if c.Format == sheet.FormatGeneral && !bold {
		return nil
	}
	st, err := r.style(styleKey{format: c.Format, bold: bold})
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(sheetName, addr, addr, st)
}

// style returns the cached style id for a key, creating it on first use.
func (r *renderer) style(key styleKey) (int, error) {
	if id, ok := r.styles[key]; ok {
		return id, nil
	}
	var st excelize.Style
	if key.header {
		st.Font = &excelize.Font{Bold: true, Color: "FFFFFF"}
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1}
		st.Alignment = &excelize.Alignment{Horizontal: "center"}
	} else {
		if key.bold {
			st.Font = &excelize.Font{Bold: true}
		}
		if key.format != sheet.FormatGeneral {
			numFmt := string(key.format)
			st.CustomNumFmt = &numFmt
		}
	}
	id, err := r.f.NewStyle(&st)
	if err != nil {
		return 0, err
	}
	r.styles[key] = id
	return id, nil
}

// applyCalc hands the iterative-calculation settings to the file so the
// spreadsheet application resolves the circular interest/cash cells.
func (r *renderer) applyCalc(calc sheet.CalcSettings) error {
	if !calc.Iterative {
		return nil
	}
	iterate := true
	// A negative count would wrap through the uint conversion.
	iterations := calc.MaxIterations
	if iterations < 0 {
		iterations = 0
	}
	count := uint(iterations)
	delta := calc.Tolerance
	fullCalc := true
	return r.f.SetCalcProps(&excelize.CalcPropsOptions{
		Iterate:        &iterate,
		IterateCount:   &count,
		IterateDelta:   &delta,
		FullCalcOnLoad: &fullCalc,
	})
}
