package layout

import (
	"fmt"
	"strings"

	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/sheet"
)

// cashFlow lays out the three activity sections and closes the loop: the
// Ending Cash Balance row resolves the placeholder the Cash & Equivalents row
// and the interest rows were emitted against.
func (b *builder) cashFlow() error {
	monthly := b.variant == model.VariantMonthly
	s := b.sheet

	b.header("CASH FLOW STATEMENT")

	b.header("Cash from Operations")
	cfoStart := s.NextRow()
	ni := b.anchors[AnchorNetIncome]
	b.formulaRow("Net Income", false, func(i, _ int) string {
		return fmt.Sprintf("=%s%d", col(i), ni)
	})
	deprec := b.anchors[AnchorDepreciation]
	b.formulaRow("Add back: Depreciation", false, func(i, _ int) string {
		return fmt.Sprintf("=%s%d", col(i), deprec)
	})
	b.deltaRow("Change in AR", b.anchors[AnchorAR], -1)
	if monthly {
		b.deltaRow("Change in Inventory", b.anchors[AnchorInventory], -1)
	}
	b.deltaRow("Change in AP", b.anchors[AnchorAP], +1)
	b.deltaRow("Change in Deferred Rev", b.anchors[AnchorDeferredRevenue], +1)
	b.deltaRow("Change in Tax Payable", b.anchors[AnchorTaxPayable], +1)
	cfoEnd := s.NextRow() - 1

	b.header("Cash from Investing")
	cfiStart := s.NextRow()
	initial := b.initialCapexExpr()
	trev := b.anchors[AnchorTotalRevenue]
	capex := b.rowOf("Capital Expenditures", false, sheet.FormatCurrency, func(i, _ int) sheet.Cell {
		if monthly {
			if i == 0 {
				return sheet.Formula(fmt.Sprintf("=-(%s+%s%d*%s)", initial, col(i), trev, b.refs.MaintCapex), sheet.FormatCurrency)
			}
			return sheet.Formula(fmt.Sprintf("=-%s%d*%s", col(i), trev, b.refs.MaintCapex), sheet.FormatCurrency)
		}
		if i == 0 {
			return sheet.Formula(fmt.Sprintf("=-%s", initial), sheet.FormatCurrency)
		}
		return sheet.Number(0, sheet.FormatCurrency)
	})
	if err := b.patch(pendingCapexRow, capex); err != nil {
		return err
	}
	cfiEnd := s.NextRow() - 1

	b.header("Cash from Financing")
	cffStart := s.NextRow()
	b.rowOf("Issuance of Common Stock", false, sheet.FormatCurrency, func(i, _ int) sheet.Cell {
		if i == 0 {
			return sheet.Formula(fmt.Sprintf("=%s+%s", b.refs.BegCash, b.refs.Equity), sheet.FormatCurrency)
		}
		return sheet.Number(0, sheet.FormatCurrency)
	})
	b.rowOf("Issuance of Debt", false, sheet.FormatCurrency, func(i, _ int) sheet.Cell {
		if i == 0 {
			return sheet.Formula(fmt.Sprintf("=%s", b.refs.Debt), sheet.FormatCurrency)
		}
		return sheet.Number(0, sheet.FormatCurrency)
	})
	if monthly {
		debt := b.anchors[AnchorDebt]
		repay := b.rowOf("Debt Repayment", false, sheet.FormatCurrency, func(i, _ int) sheet.Cell {
			if i == 0 {
				return sheet.Number(0, sheet.FormatCurrency)
			}
			return sheet.Formula(fmt.Sprintf("=IF(%s>0, %s%d/(%s*12), 0)",
				b.refs.DebtTerm, prevCol(i), debt, b.refs.DebtTerm), sheet.FormatCurrency)
		})
		if err := b.patch(pendingRepayRow, repay); err != nil {
			return err
		}
	}
	cffEnd := s.NextRow() - 1

	ncf := b.formulaRow(AnchorNetCashFlow, true, func(i, _ int) string {
		c := sheet.PeriodColumn(i)
		return fmt.Sprintf("=%s+%s+%s",
			sheet.SumRange(c, cfoStart, cfoEnd),
			sheet.SumRange(c, cfiStart, cfiEnd),
			sheet.SumRange(c, cffStart, cffEnd))
	})
	b.setAnchor(AnchorNetCashFlow, ncf)
	s.AppendBlank(1)

	ec := b.formulaRow(AnchorEndingCash, true, func(i, row int) string {
		if i == 0 {
			return fmt.Sprintf("=0+%s%d", col(i), ncf)
		}
		return fmt.Sprintf("=%s%d+%s%d", prevCol(i), row, col(i), ncf)
	})
	b.setAnchor(AnchorEndingCash, ec)
	return b.patch(pendingEndCashRow, ec)
}

// initialCapexExpr is the one-time period-0 outlay: the sum of every asset's
// cost, or a literal zero when the model has none.
func (b *builder) initialCapexExpr() string {
	if len(b.m.Capex) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(b.m.Capex))
	for _, it := range b.m.Capex {
		parts = append(parts, string(b.refs.Capex[it.Name].Cost))
	}
	return "(" + strings.Join(parts, "+") + ")"
}
