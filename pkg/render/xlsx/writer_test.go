package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"finmodeler/pkg/core/generate"
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/sheet"
)

func testWorkbook() *sheet.Workbook {
	s := sheet.NewSheet("Model", "Item", "Q1", "Q2")
	s.Append(sheet.Row{Label: "Revenue", Cells: []sheet.Cell{
		sheet.Formula("=Assumptions!$C$2", sheet.FormatCurrency),
		sheet.Formula("=B2*(1+Assumptions!$C$3)", sheet.FormatCurrency),
	}})
	s.Append(sheet.Row{Label: "Total", Bold: true, Cells: []sheet.Cell{
		sheet.Number(100, sheet.FormatCurrency),
		sheet.Text("N/A"),
	}})
	a := sheet.NewSheet("Assumptions", "Category", "Driver", "Value")
	a.Append(sheet.Row{Label: "Revenue", Cells: []sheet.Cell{
		sheet.Text("Start"),
		sheet.Number(100000, sheet.FormatCurrency),
	}})
	return &sheet.Workbook{Sheets: []*sheet.Sheet{s, a}, Calc: sheet.DefaultCalcSettings()}
}

func roundTrip(t *testing.T, wb *sheet.Workbook) *excelize.File {
	t.Helper()
	var w Writer
	var buf bytes.Buffer
	require.NoError(t, w.Write(wb, &buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteSheets(t *testing.T) {
	f := roundTrip(t, testWorkbook())
	assert.Equal(t, []string{"Model", "Assumptions"}, f.GetSheetList())

	header, err := f.GetCellValue("Model", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Item", header)
}

func TestWriteCells(t *testing.T) {
	f := roundTrip(t, testWorkbook())

	formula, err := f.GetCellFormula("Model", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Assumptions!$C$2", formula)

	formula, err = f.GetCellFormula("Model", "C2")
	require.NoError(t, err)
	assert.Equal(t, "B2*(1+Assumptions!$C$3)", formula)

	num, err := f.GetCellValue("Model", "B3")
	require.NoError(t, err)
	assert.Equal(t, "100", num)

	text, err := f.GetCellValue("Model", "C3")
	require.NoError(t, err)
	assert.Equal(t, "N/A", text)
}

func TestWriteCalcProps(t *testing.T) {
	f := roundTrip(t, testWorkbook())
	props, err := f.GetCalcProps()
	require.NoError(t, err)
	require.NotNil(t, props.Iterate)
	assert.True(t, *props.Iterate)
	require.NotNil(t, props.IterateCount)
	assert.Equal(t, uint(100), *props.IterateCount)
}

func TestWriteCalcPropsClampsNegativeCount(t *testing.T) {
	wb := testWorkbook()
	wb.Calc = sheet.CalcSettings{Iterative: true, MaxIterations: -5, Tolerance: 0.001}

	f := roundTrip(t, wb)
	props, err := f.GetCalcProps()
	require.NoError(t, err)
	require.NotNil(t, props.IterateCount)
	assert.Equal(t, uint(0), *props.IterateCount)
}

func TestWriteEmptyWorkbookFails(t *testing.T) {
	var w Writer
	var buf bytes.Buffer
	err := w.Write(&sheet.Workbook{}, &buf)
	assert.Error(t, err)
}

func TestWriteGeneratedWorkbook(t *testing.T) {
	wb, err := generate.Generate(model.Example(), generate.Options{
		Variant:  model.VariantMonthly,
		Scenario: model.ScenarioBase,
	})
	require.NoError(t, err)

	f := roundTrip(t, wb)
	assert.Equal(t, []string{"Assumptions", "36 Month Model", "Annual Summary", "KPIs"}, f.GetSheetList())

	// The assumption cell the grid's formulas point at must hold a value.
	v, err := f.GetCellValue("Assumptions", "C2")
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}
