// Package layout walks the statement sections in their fixed order, assigns
// every line item a permanent row on the time-indexed grid, and synthesizes
// the formula for each (row, period) cell. Rows that later sections depend on
// are recorded as anchors; references to rows that are not laid out yet are
// emitted as named placeholders and patched once the target row exists.
package layout

import (
	"fmt"
	"strings"

	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/registry"
	"finmodeler/pkg/core/sheet"
)

// Anchor row names. The linker addresses the primary grid through these.
const (
	AnchorTotalRevenue      = "Total Revenue"
	AnchorTotalCOGS         = "Total COGS"
	AnchorGrossProfit       = "Gross Profit"
	AnchorTotalOpex         = "Total Opex"
	AnchorEBITDA            = "EBITDA"
	AnchorDepreciation      = "Depreciation"
	AnchorEBIT              = "EBIT"
	AnchorInterestExpense   = "Interest Expense"
	AnchorOverdraftInterest = "Interest Expense (Overdraft)"
	AnchorInterestIncome    = "Interest Income"
	AnchorEBT               = "EBT"
	AnchorIncomeTax         = "Income Tax"
	AnchorNetIncome         = "Net Income"

	AnchorCash             = "Cash & Equivalents"
	AnchorAR               = "Accounts Receivable"
	AnchorInventory        = "Inventory"
	AnchorFixedAssets      = "Fixed Assets (Gross)"
	AnchorAccumDep         = "Accumulated Depreciation"
	AnchorTotalAssets      = "Total Assets"
	AnchorAP               = "Accounts Payable"
	AnchorDeferredRevenue  = "Deferred Revenue"
	AnchorTaxPayable       = "Tax Payable"
	AnchorDebt             = "Long Term Debt"
	AnchorCommonStock      = "Common Stock"
	AnchorRetainedEarnings = "Retained Earnings"
	AnchorTotalLiabEquity  = "Total Liab & Equity"

	AnchorNetCashFlow = "Net Cash Flow"
	AnchorEndingCash  = "Ending Cash Balance"
)

// Forward-reference placeholder names. Each one must be patched exactly once
// before the grid is finalized.
const (
	pendingCashRow    = "CASH_ROW"
	pendingCapexRow   = "CAPEX_ROW"
	pendingDebtRow    = "DEBT_ROW"
	pendingRepayRow   = "REPAY_ROW"
	pendingNOLEndRow  = "NOL_END_ROW"
	pendingEndCashRow = "ENDING_CASH_ROW"
)

// Grid is the laid-out primary sheet plus the coordinate map later stages
// need: anchor rows, per-item OpEx rows (for the KPI S&M aggregation), and
// the axis shape.
type Grid struct {
	Sheet          *sheet.Sheet
	Variant        model.Variant
	Periods        int
	PeriodsPerYear int
	Anchors        map[string]int
	OpexRows       map[string]int
	Refs           *registry.Refs
}

// Anchor returns the resolved row of a named anchor; zero means unknown.
func (g *Grid) Anchor(name string) int {
	return g.Anchors[name]
}

// builder carries the per-pass layout state. Nothing here outlives one Build
// call, which is what keeps concurrent generations isolated.
type builder struct {
	m       *model.Model
	refs    *registry.Refs
	variant model.Variant
	scen    model.Scenario

	sheet   *sheet.Sheet
	periods int
	perYear int

	anchors  map[string]int
	opexRows map[string]int
	pending  map[string]bool
}

// Build lays out the full primary grid for one scenario. The model must have
// been validated already; Build only enforces internal invariants.
func Build(m *model.Model, refs *registry.Refs, variant model.Variant, scen model.Scenario) (*Grid, error) {
	b := &builder{
		m:        m,
		refs:     refs,
		variant:  variant,
		scen:     scen,
		periods:  variant.Periods(),
		perYear:  variant.PeriodsPerYear(),
		anchors:  make(map[string]int),
		opexRows: make(map[string]int),
		pending:  make(map[string]bool),
	}

	header := make([]string, b.periods+1)
	header[0] = "Item"
	for i := 0; i < b.periods; i++ {
		header[i+1] = periodLabel(variant, i)
	}
	b.sheet = sheet.NewSheet(variant.SheetName(), header...)

	if err := b.profitAndLoss(); err != nil {
		return nil, err
	}
	if err := b.balanceSheet(); err != nil {
		return nil, err
	}
	if err := b.cashFlow(); err != nil {
		return nil, err
	}
	if err := b.finalize(); err != nil {
		return nil, err
	}

	return &Grid{
		Sheet:          b.sheet,
		Variant:        variant,
		Periods:        b.periods,
		PeriodsPerYear: b.perYear,
		Anchors:        b.anchors,
		OpexRows:       b.opexRows,
		Refs:           refs,
	}, nil
}

func periodLabel(variant model.Variant, i int) string {
	if variant == model.VariantQuarterly {
		return fmt.Sprintf("Q%d", i+1)
	}
	return fmt.Sprintf("Month %d", i+1)
}

// setAnchor records a total/subtotal position. Reassignment is an internal
// defect: an anchor is fixed the instant it is written.
func (b *builder) setAnchor(name string, row int) {
	if _, dup := b.anchors[name]; dup {
		panic(fmt.Sprintf("layout: anchor %q assigned twice", name))
	}
	b.anchors[name] = row
}

// placeholder returns the token for a row that is not laid out yet and marks
// it open.
func (b *builder) placeholder(name string) string {
	b.pending[name] = true
	return "{" + name + "}"
}

// patch substitutes every occurrence of an open placeholder with the resolved
// row number and closes it.
func (b *builder) patch(name string, row int) error {
	if !b.pending[name] {
		return model.InternalErrorf("placeholder %s patched without being introduced", name)
	}
	token := "{" + name + "}"
	repl := fmt.Sprintf("%d", row)
	for i := range b.sheet.Rows {
		cells := b.sheet.Rows[i].Cells
		for j := range cells {
			if cells[j].Kind == sheet.CellFormula && strings.Contains(cells[j].Formula, token) {
				cells[j].Formula = strings.ReplaceAll(cells[j].Formula, token, repl)
			}
		}
	}
	delete(b.pending, name)
	return nil
}

// finalize verifies that no placeholder survived layout. A leftover token
// means a section-ordering defect, not bad user input.
func (b *builder) finalize() error {
	for name := range b.pending {
		return model.InternalErrorf("placeholder %s was never patched", name)
	}
	for i := range b.sheet.Rows {
		for _, c := range b.sheet.Rows[i].Cells {
			if c.Kind == sheet.CellFormula && strings.Contains(c.Formula, "{") {
				return model.InternalErrorf("unsubstituted placeholder in formula %q", c.Formula)
			}
		}
	}
	return nil
}
