package layout

import (
	"fmt"
	"strings"

	"finmodeler/pkg/core/model"
)

// profitAndLoss lays out Revenue through Net Income. Every subtotal on the
// way down becomes an anchor for the balance sheet and cash flow sections.
func (b *builder) profitAndLoss() error {
	monthly := b.variant == model.VariantMonthly
	s := b.sheet

	b.header("PROFIT & LOSS")

	// --- Revenue ---
	b.header("Revenue")
	revStart := s.NextRow()
	for _, it := range b.m.Revenue {
		rr := b.refs.Revenue[it.Name]
		b.formulaRow(it.Name, false, func(i, row int) string {
			if i == 0 {
				if monthly {
					return fmt.Sprintf("=%s/12", rr.Start)
				}
				return fmt.Sprintf("=%s", rr.Start)
			}
			if monthly {
				// Annualized rate for the period's year, compounded monthly.
				month := i + 1
				return fmt.Sprintf("=%s%d*((1+IF(%d<=12,%s,IF(%d<=24,%s,%s)))^(1/12))",
					prevCol(i), row, month, rr.GrowthY1, month, rr.GrowthY2, rr.GrowthY3)
			}
			return fmt.Sprintf("=%s%d*(1+%s)", prevCol(i), row, rr.Growth)
		})
	}
	totalRev := b.totalRow(AnchorTotalRevenue, revStart, s.NextRow()-1)
	if !monthly {
		s.AppendBlank(1)
	}

	// --- COGS ---
	b.header("Cost of Goods Sold")
	cogsStart := s.NextRow()
	for _, it := range b.m.COGS {
		ref := b.refs.COGS[it.Name]
		kind := it.Kind
		b.formulaRow(it.Name, false, func(i, _ int) string {
			if kind == model.CostPercentOfRevenue {
				return fmt.Sprintf("=%s%d*%s", col(i), totalRev, ref)
			}
			if monthly {
				return fmt.Sprintf("=%s/12", ref)
			}
			return fmt.Sprintf("=%s", ref)
		})
	}
	totalCOGS := b.totalRow(AnchorTotalCOGS, cogsStart, s.NextRow()-1)

	grossProfit := b.formulaRow(AnchorGrossProfit, true, func(i, _ int) string {
		return fmt.Sprintf("=%s%d-%s%d", col(i), totalRev, col(i), totalCOGS)
	})
	b.setAnchor(AnchorGrossProfit, grossProfit)
	s.AppendBlank(1)

	// --- OpEx ---
	b.header("Operating Expenses")
	opexStart := s.NextRow()
	for _, it := range b.m.Opex {
		or := b.refs.Opex[it.Name]
		item := it
		row := b.formulaRow(it.Name, false, func(i, row int) string {
			switch item.Kind {
			case model.OpexFixedAmount:
				if i == 0 {
					if monthly {
						return fmt.Sprintf("=%s/12", or.Value)
					}
					return fmt.Sprintf("=%s", or.Value)
				}
				if monthly {
					return fmt.Sprintf("=%s%d*((1+%s)^(1/12))", prevCol(i), row, or.Growth)
				}
				return fmt.Sprintf("=%s%d*(1+%s)", prevCol(i), row, or.Growth)
			case model.OpexPercentOfRevenue:
				return fmt.Sprintf("=%s%d*%s", col(i), totalRev, or.Value)
			default: // Personnel
				if monthly && or.Threshold != "" {
					// Headcount ratchets up with revenue growth since period 0.
					return fmt.Sprintf("=((%s+FLOOR(MAX(0,%s%d-B%d)/%s,1))*%s)/12",
						or.Headcount, col(i), totalRev, totalRev, or.Threshold, or.Salary)
				}
				return fmt.Sprintf("=(%s*%s)/%d", or.Headcount, or.Salary, b.perYear)
			}
		})
		b.opexRows[it.Name] = row
	}
	totalOpex := b.totalRow(AnchorTotalOpex, opexStart, s.NextRow()-1)

	ebitda := b.formulaRow(AnchorEBITDA, true, func(i, _ int) string {
		return fmt.Sprintf("=%s%d-%s%d", col(i), grossProfit, col(i), totalOpex)
	})
	b.setAnchor(AnchorEBITDA, ebitda)

	// --- Depreciation: one straight-line row across all assets ---
	deprec := b.formulaRow(AnchorDepreciation, false, func(i, _ int) string {
		return b.depreciationFormula()
	})
	b.setAnchor(AnchorDepreciation, deprec)

	ebit := b.formulaRow(AnchorEBIT, true, func(i, _ int) string {
		return fmt.Sprintf("=%s%d-%s%d", col(i), ebitda, col(i), deprec)
	})
	b.setAnchor(AnchorEBIT, ebit)

	// --- Interest ---
	// Debt and Cash rows live in the balance sheet, below; their prior-period
	// balances are referenced through placeholders patched once those rows
	// are assigned. The lag breaks the same-period circularity.
	var intExp, odInt, intInc int
	if monthly {
		intExp = b.formulaRow("Interest Expense (Debt)", false, func(i, _ int) string {
			if i == 0 {
				return fmt.Sprintf("=%s*%s/12", b.refs.Debt, b.refs.DebtInt)
			}
			return fmt.Sprintf("=%s%s*%s/12", prevCol(i), b.placeholder(pendingDebtRow), b.refs.DebtInt)
		})
		b.setAnchor(AnchorInterestExpense, intExp)

		odInt = b.formulaRow(AnchorOverdraftInterest, false, func(i, _ int) string {
			if i == 0 {
				return fmt.Sprintf("=IF(%s<0, ABS(%s)*%s/12, 0)", b.refs.BegCash, b.refs.BegCash, b.refs.ODInt)
			}
			cash := prevCol(i) + b.placeholder(pendingCashRow)
			return fmt.Sprintf("=IF(%s<0, ABS(%s)*%s/12, 0)", cash, cash, b.refs.ODInt)
		})
		b.setAnchor(AnchorOverdraftInterest, odInt)

		intInc = b.formulaRow(AnchorInterestIncome, false, func(i, _ int) string {
			if i == 0 {
				return fmt.Sprintf("=IF(%s>0, %s*%s/12, 0)", b.refs.BegCash, b.refs.BegCash, b.refs.CashInt)
			}
			cash := prevCol(i) + b.placeholder(pendingCashRow)
			return fmt.Sprintf("=IF(%s>0, %s*%s/12, 0)", cash, cash, b.refs.CashInt)
		})
		b.setAnchor(AnchorInterestIncome, intInc)
	} else {
		intExp = b.formulaRow(AnchorInterestExpense, false, func(i, _ int) string {
			return fmt.Sprintf("=%s*%s/4", b.refs.Debt, b.refs.DebtInt)
		})
		b.setAnchor(AnchorInterestExpense, intExp)

		intInc = b.formulaRow(AnchorInterestIncome, false, func(i, _ int) string {
			if i == 0 {
				return fmt.Sprintf("=%s*%s/4", b.refs.BegCash, b.refs.CashInt)
			}
			return fmt.Sprintf("=%s%s*%s/4", prevCol(i), b.placeholder(pendingCashRow), b.refs.CashInt)
		})
		b.setAnchor(AnchorInterestIncome, intInc)
	}

	ebt := b.formulaRow(AnchorEBT, true, func(i, _ int) string {
		if monthly {
			return fmt.Sprintf("=%s%d-%s%d-%s%d+%s%d", col(i), ebit, col(i), intExp, col(i), odInt, col(i), intInc)
		}
		return fmt.Sprintf("=%s%d-%s%d+%s%d", col(i), ebit, col(i), intExp, col(i), intInc)
	})
	b.setAnchor(AnchorEBT, ebt)

	// --- Tax ---
	var tax int
	if monthly {
		nolBeg := b.formulaRow("NOL Beginning Balance", false, func(i, _ int) string {
			if i == 0 {
				return fmt.Sprintf("=%s", b.refs.BegNOL)
			}
			return fmt.Sprintf("=%s%s", prevCol(i), b.placeholder(pendingNOLEndRow))
		})

		taxable := b.formulaRow("Taxable Income", false, func(i, _ int) string {
			return fmt.Sprintf("=MAX(0, %s%d-%s%d)", col(i), ebt, col(i), nolBeg)
		})

		nolEnd := b.formulaRow("NOL Ending Balance", false, func(i, _ int) string {
			return fmt.Sprintf("=IF(%s%d<0, %s%d-%s%d, MAX(0, %s%d-%s%d))",
				col(i), ebt, col(i), nolBeg, col(i), ebt, col(i), nolBeg, col(i), ebt)
		})
		if err := b.patch(pendingNOLEndRow, nolEnd); err != nil {
			return err
		}

		tax = b.formulaRow(AnchorIncomeTax, false, func(i, _ int) string {
			return fmt.Sprintf("=%s%d*%s", col(i), taxable, b.refs.TaxRate)
		})
	} else {
		tax = b.formulaRow(AnchorIncomeTax, false, func(i, _ int) string {
			return fmt.Sprintf("=MAX(0, %s%d*%s)", col(i), ebt, b.refs.TaxRate)
		})
	}
	b.setAnchor(AnchorIncomeTax, tax)

	ni := b.formulaRow(AnchorNetIncome, true, func(i, _ int) string {
		return fmt.Sprintf("=%s%d-%s%d", col(i), ebt, col(i), tax)
	})
	b.setAnchor(AnchorNetIncome, ni)
	s.AppendBlank(2)
	return nil
}

// depreciationFormula sums cost×rate across all assets, scaled to the period
// granularity. With no assets the structural row still exists as zero.
func (b *builder) depreciationFormula() string {
	if len(b.m.Capex) == 0 {
		return "=0"
	}
	parts := make([]string, 0, len(b.m.Capex))
	if b.variant == model.VariantMonthly {
		for _, it := range b.m.Capex {
			cr := b.refs.Capex[it.Name]
			parts = append(parts, fmt.Sprintf("(%s*%s)", cr.Cost, cr.Rate))
		}
		return "=(" + strings.Join(parts, "+") + ")/12"
	}
	for _, it := range b.m.Capex {
		cr := b.refs.Capex[it.Name]
		parts = append(parts, fmt.Sprintf("(%s*%s/4)", cr.Cost, cr.Rate))
	}
	return "=" + strings.Join(parts, "+")
}
