// Package linker derives the cross-sheet views from an already-laid-out
// primary grid: the Annual Summary (flow rows aggregated over each year's
// column window, stock rows snapshotted at year end) and the KPI view. It
// never recomputes model semantics; it only addresses the grid's anchors.
package linker

import (
	"fmt"

	"finmodeler/pkg/core/layout"
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/sheet"
)

// SummarySheetName is the name of the annual rollup view.
const SummarySheetName = "Annual Summary"

// Summary builds the annual rollup for a monthly grid. P&L rows sum each
// year's twelve columns; balance sheet rows take the year-end column, since
// summing a stock over time is meaningless.
func Summary(g *layout.Grid) (*sheet.Sheet, error) {
	years := g.Periods / g.PeriodsPerYear
	header := make([]string, years+1)
	header[0] = "Item"
	for y := 0; y < years; y++ {
		header[y+1] = fmt.Sprintf("Year %d", y+1)
	}
	s := sheet.NewSheet(SummarySheetName, header...)

	flow := func(label, anchor string) error {
		row, err := anchorRow(g, anchor)
		if err != nil {
			return err
		}
		cells := make([]sheet.Cell, years)
		for y := 0; y < years; y++ {
			from := sheet.ColumnLetter(sheet.PeriodColumn(y * g.PeriodsPerYear))
			to := sheet.ColumnLetter(sheet.PeriodColumn((y+1)*g.PeriodsPerYear - 1))
			f := fmt.Sprintf("=SUM('%s'!%s%d:%s%d)", g.Sheet.Name, from, row, to, row)
			cells[y] = sheet.Formula(f, sheet.FormatCurrency)
		}
		s.Append(sheet.Row{Label: label, Cells: cells})
		return nil
	}
	stock := func(label, anchor string) error {
		row, err := anchorRow(g, anchor)
		if err != nil {
			return err
		}
		cells := make([]sheet.Cell, years)
		for y := 0; y < years; y++ {
			end := sheet.ColumnLetter(sheet.PeriodColumn((y+1)*g.PeriodsPerYear - 1))
			cells[y] = sheet.Formula(fmt.Sprintf("='%s'!%s%d", g.Sheet.Name, end, row), sheet.FormatCurrency)
		}
		s.Append(sheet.Row{Label: label, Cells: cells})
		return nil
	}

	s.Append(sheet.Row{Label: "PROFIT & LOSS", Bold: true})
	flows := []struct{ label, anchor string }{
		{"Total Revenue", layout.AnchorTotalRevenue},
		{"Total COGS", layout.AnchorTotalCOGS},
		{"Gross Profit", layout.AnchorGrossProfit},
		{"Total OpEx", layout.AnchorTotalOpex},
		{"EBITDA", layout.AnchorEBITDA},
		{"Depreciation", layout.AnchorDepreciation},
		{"EBIT", layout.AnchorEBIT},
		{"Interest Expense", layout.AnchorInterestExpense},
		{"Interest Income", layout.AnchorInterestIncome},
		{"EBT", layout.AnchorEBT},
		{"Income Tax", layout.AnchorIncomeTax},
		{"Net Income", layout.AnchorNetIncome},
	}
	for _, r := range flows {
		if err := flow(r.label, r.anchor); err != nil {
			return nil, err
		}
	}

	s.AppendBlank(1)
	s.Append(sheet.Row{Label: "BALANCE SHEET", Bold: true})
	stocks := []struct{ label, anchor string }{
		{"Cash", layout.AnchorCash},
		{"Accounts Receivable", layout.AnchorAR},
		{"Inventory", layout.AnchorInventory},
		{"Total Assets", layout.AnchorTotalAssets},
		{"Accounts Payable", layout.AnchorAP},
		{"Long Term Debt", layout.AnchorDebt},
		{"Total Equity", layout.AnchorTotalLiabEquity},
	}
	for _, r := range stocks {
		if err := stock(r.label, r.anchor); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func anchorRow(g *layout.Grid, name string) (int, error) {
	row := g.Anchor(name)
	if row == 0 {
		return 0, model.InternalErrorf("linker: grid has no %q anchor", name)
	}
	return row, nil
}
