package layout

import (
	"fmt"

	"finmodeler/pkg/core/model"
)

// balanceSheet lays out Assets then Liabilities & Equity. The Cash row comes
// first but its value is the Ending Cash Balance computed at the bottom of the
// cash flow, so it is emitted against a placeholder and patched last.
func (b *builder) balanceSheet() error {
	monthly := b.variant == model.VariantMonthly
	s := b.sheet

	b.header("BALANCE SHEET")
	b.header("Assets")

	cash := b.formulaRow(AnchorCash, false, func(i, _ int) string {
		return fmt.Sprintf("=%s%s", col(i), b.placeholder(pendingEndCashRow))
	})
	b.setAnchor(AnchorCash, cash)
	if err := b.patch(pendingCashRow, cash); err != nil {
		return err
	}

	trev := b.anchors[AnchorTotalRevenue]
	ar := b.formulaRow(AnchorAR, false, func(i, _ int) string {
		return fmt.Sprintf("=%s%d*%s", col(i), trev, b.refs.ARPct)
	})
	b.setAnchor(AnchorAR, ar)

	tcogs := b.anchors[AnchorTotalCOGS]
	if monthly {
		inv := b.formulaRow(AnchorInventory, false, func(i, _ int) string {
			return fmt.Sprintf("=(%s%d/30)*%s", col(i), tcogs, b.refs.DIO)
		})
		b.setAnchor(AnchorInventory, inv)
	}

	fa := b.formulaRow(AnchorFixedAssets, false, func(i, row int) string {
		if i == 0 {
			return fmt.Sprintf("=-%s%s", col(i), b.placeholder(pendingCapexRow))
		}
		return fmt.Sprintf("=%s%d-%s%s", prevCol(i), row, col(i), b.placeholder(pendingCapexRow))
	})
	b.setAnchor(AnchorFixedAssets, fa)

	deprec := b.anchors[AnchorDepreciation]
	ad := b.formulaRow(AnchorAccumDep, false, func(i, row int) string {
		if i == 0 {
			return fmt.Sprintf("=-%s%d", col(i), deprec)
		}
		return fmt.Sprintf("=%s%d-%s%d", prevCol(i), row, col(i), deprec)
	})
	b.setAnchor(AnchorAccumDep, ad)

	b.totalRow(AnchorTotalAssets, cash, ad)
	s.AppendBlank(1)

	b.header("Liabilities & Equity")

	ap := b.formulaRow(AnchorAP, false, func(i, _ int) string {
		if monthly {
			return fmt.Sprintf("=(%s%d/30)*%s", col(i), tcogs, b.refs.DPO)
		}
		return fmt.Sprintf("=%s%d*%s", col(i), b.anchors[AnchorTotalOpex], b.refs.APPct)
	})
	b.setAnchor(AnchorAP, ap)

	dr := b.formulaRow(AnchorDeferredRevenue, false, func(i, _ int) string {
		return fmt.Sprintf("=%s%d*%s", col(i), trev, b.refs.DRPct)
	})
	b.setAnchor(AnchorDeferredRevenue, dr)

	// Under next-year timing the payable accumulates monthly; the quarterly
	// horizon never crosses a year boundary, so it holds one period's tax.
	tax := b.anchors[AnchorIncomeTax]
	tp := b.formulaRow(AnchorTaxPayable, false, func(i, row int) string {
		if monthly && i > 0 {
			return fmt.Sprintf("=IF(%s=0, 0, %s%d+%s%d)", b.refs.TaxTiming, prevCol(i), row, col(i), tax)
		}
		return fmt.Sprintf("=IF(%s=0, 0, %s%d)", b.refs.TaxTiming, col(i), tax)
	})
	b.setAnchor(AnchorTaxPayable, tp)

	debt := b.formulaRow(AnchorDebt, false, func(i, row int) string {
		if !monthly || i == 0 {
			return fmt.Sprintf("=%s", b.refs.Debt)
		}
		return fmt.Sprintf("=%s%d-%s%s", prevCol(i), row, col(i), b.placeholder(pendingRepayRow))
	})
	b.setAnchor(AnchorDebt, debt)
	if monthly {
		if err := b.patch(pendingDebtRow, debt); err != nil {
			return err
		}
	}

	cs := b.formulaRow(AnchorCommonStock, false, func(i, _ int) string {
		return fmt.Sprintf("=%s+%s", b.refs.BegCash, b.refs.Equity)
	})
	b.setAnchor(AnchorCommonStock, cs)

	ni := b.anchors[AnchorNetIncome]
	re := b.formulaRow(AnchorRetainedEarnings, false, func(i, row int) string {
		if i == 0 {
			return fmt.Sprintf("=%s%d", col(i), ni)
		}
		return fmt.Sprintf("=%s%d+%s%d", prevCol(i), row, col(i), ni)
	})
	b.setAnchor(AnchorRetainedEarnings, re)

	b.totalRow(AnchorTotalLiabEquity, ap, re)
	s.AppendBlank(2)
	return nil
}
