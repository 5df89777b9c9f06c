package linker

import (
	"fmt"

	"finmodeler/pkg/core/layout"
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/sheet"
)

// KPISheetName is the name of the SaaS metrics view.
const KPISheetName = "KPIs"

// KPIs builds the metrics view over a monthly grid. Every ratio is guarded
// against a zero denominator, and year-over-year metrics show "N/A" until a
// full comparison year exists.
func KPIs(m *model.Model, g *layout.Grid) (*sheet.Sheet, error) {
	src := g.Sheet.Name
	refs := g.Refs

	header := make([]string, g.Periods+1)
	header[0] = "Metric"
	for i := 0; i < g.Periods; i++ {
		header[i+1] = fmt.Sprintf("Month %d", i+1)
	}
	s := sheet.NewSheet(KPISheetName, header...)

	metric := func(label string, format sheet.Format, build func(i, row int) sheet.Cell) int {
		row := s.NextRow()
		cells := make([]sheet.Cell, g.Periods)
		for i := 0; i < g.Periods; i++ {
			c := build(i, row)
			if c.Kind == sheet.CellFormula && c.Format == sheet.FormatGeneral {
				c.Format = format
			}
			cells[i] = c
		}
		return s.Append(sheet.Row{Label: label, Bold: true, Cells: cells})
	}
	formula := func(label string, format sheet.Format, build func(i, row int) string) int {
		return metric(label, format, func(i, row int) sheet.Cell {
			return sheet.Formula(build(i, row), format)
		})
	}
	col := func(i int) string { return sheet.ColumnLetter(sheet.PeriodColumn(i)) }
	cross := func(i, row int) string { return fmt.Sprintf("'%s'!%s%d", src, col(i), row) }

	trev, err := anchorRow(g, layout.AnchorTotalRevenue)
	if err != nil {
		return nil, err
	}
	gp, err := anchorRow(g, layout.AnchorGrossProfit)
	if err != nil {
		return nil, err
	}
	ebitda, err := anchorRow(g, layout.AnchorEBITDA)
	if err != nil {
		return nil, err
	}

	custCount := formula("Customer Count", sheet.FormatInteger, func(i, row int) string {
		if i == 0 {
			return fmt.Sprintf("=%s+%s-((%s)*%s)", refs.StartCustomers, refs.NewCustomers, refs.StartCustomers, refs.ChurnRate)
		}
		prev := fmt.Sprintf("%s%d", col(i-1), row)
		return fmt.Sprintf("=%s+%s-((%s)*%s)", prev, refs.NewCustomers, prev, refs.ChurnRate)
	})

	mrr := formula("MRR", sheet.FormatCurrency, func(i, _ int) string {
		return "=" + cross(i, trev)
	})

	// S&M spend is the sum of the tagged OpEx rows, walked in model order.
	tagged := make(map[string]bool, len(m.KPI.SalesMarketingItems))
	for _, name := range m.KPI.SalesMarketingItems {
		tagged[name] = true
	}
	smSpend := formula("S&M Spend", sheet.FormatCurrency, func(i, _ int) string {
		f := ""
		for _, it := range m.Opex {
			if !tagged[it.Name] {
				continue
			}
			if f != "" {
				f += "+"
			}
			f += cross(i, g.OpexRows[it.Name])
		}
		if f == "" {
			return "=0"
		}
		return "=" + f
	})

	cac := formula("CAC", sheet.FormatCurrency, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s>0, %s%d/%s, 0)", refs.NewCustomers, col(i), smSpend, refs.NewCustomers)
	})

	gmPct := formula("Gross Margin %", sheet.FormatPercent, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s>0, %s/%s, 0)", cross(i, trev), cross(i, gp), cross(i, trev))
	})

	arpa := formula("ARPA", sheet.FormatCurrency, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s%d>0, %s%d/%s%d, 0)", col(i), custCount, col(i), mrr, col(i), custCount)
	})

	ltv := formula("LTV", sheet.FormatCurrency, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s>0, (%s%d*%s%d)/%s, 0)", refs.ChurnRate, col(i), arpa, col(i), gmPct, refs.ChurnRate)
	})

	formula("LTV:CAC Ratio", sheet.FormatRatio, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s%d>0, %s%d/%s%d, 0)", col(i), cac, col(i), ltv, col(i), cac)
	})

	gpPerCust := formula("Gross Profit per Customer", sheet.FormatCurrency, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s%d>0, %s/%s%d, 0)", col(i), custCount, cross(i, gp), col(i), custCount)
	})

	formula("CAC Payback (Months)", sheet.FormatMonths, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s%d>0, %s%d/%s%d, 0)", col(i), gpPerCust, col(i), cac, col(i), gpPerCust)
	})

	revGrowth := metric("Revenue Growth % (YoY)", sheet.FormatPercent, func(i, _ int) sheet.Cell {
		if i < g.PeriodsPerYear {
			return sheet.Text("N/A")
		}
		cur, prev := cross(i, trev), cross(i-g.PeriodsPerYear, trev)
		return sheet.Formula(fmt.Sprintf("=IF(%s>0, (%s-%s)/%s, 0)", prev, cur, prev, prev), sheet.FormatPercent)
	})

	ebitdaMargin := formula("EBITDA Margin %", sheet.FormatPercent, func(i, _ int) string {
		return fmt.Sprintf("=IF(%s>0, %s/%s, 0)", cross(i, trev), cross(i, ebitda), cross(i, trev))
	})

	metric("Rule of 40", sheet.FormatPercent, func(i, _ int) sheet.Cell {
		if i < g.PeriodsPerYear {
			return sheet.Text("N/A")
		}
		return sheet.Formula(fmt.Sprintf("=%s%d+%s%d", col(i), revGrowth, col(i), ebitdaMargin), sheet.FormatPercent)
	})

	return s, nil
}
