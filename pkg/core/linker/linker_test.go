package linker

import (
	"fmt"
	"testing"

	"finmodeler/pkg/core/layout"
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/registry"
	"finmodeler/pkg/core/sheet"
)

func monthlyGrid(t *testing.T) (*model.Model, *layout.Grid) {
	t.Helper()
	m := model.Example()
	r := registry.New()
	refs := registry.Build(r, m, model.VariantMonthly, model.ScenarioBase)
	g, err := layout.Build(m, refs, model.VariantMonthly, model.ScenarioBase)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	return m, g
}

func findRow(t *testing.T, s *sheet.Sheet, label string) *sheet.Row {
	t.Helper()
	for i := range s.Rows {
		if s.Rows[i].Label == label {
			return &s.Rows[i]
		}
	}
	t.Fatalf("row %q not found on %s", label, s.Name)
	return nil
}

func TestSummaryWindows(t *testing.T) {
	_, g := monthlyGrid(t)
	s, err := Summary(g)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if s.Name != SummarySheetName {
		t.Errorf("sheet name = %q", s.Name)
	}
	if len(s.Header) != 4 {
		t.Fatalf("header has %d columns, want Item + 3 years", len(s.Header))
	}

	trev := g.Anchor(layout.AnchorTotalRevenue)
	row := findRow(t, s, "Total Revenue")
	// Year windows are the fixed 12-column spans B-M, N-Y, Z-AK.
	wants := []string{
		fmt.Sprintf("=SUM('36 Month Model'!B%d:M%d)", trev, trev),
		fmt.Sprintf("=SUM('36 Month Model'!N%d:Y%d)", trev, trev),
		fmt.Sprintf("=SUM('36 Month Model'!Z%d:AK%d)", trev, trev),
	}
	for y, want := range wants {
		if got := row.Cells[y].Formula; got != want {
			t.Errorf("year %d = %q, want %q", y+1, got, want)
		}
	}
}

func TestSummarySnapshotsBalances(t *testing.T) {
	_, g := monthlyGrid(t)
	s, err := Summary(g)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	cash := g.Anchor(layout.AnchorCash)
	row := findRow(t, s, "Cash")
	// Stocks are year-end snapshots, not sums.
	wants := []string{
		fmt.Sprintf("='36 Month Model'!M%d", cash),
		fmt.Sprintf("='36 Month Model'!Y%d", cash),
		fmt.Sprintf("='36 Month Model'!AK%d", cash),
	}
	for y, want := range wants {
		if got := row.Cells[y].Formula; got != want {
			t.Errorf("year %d = %q, want %q", y+1, got, want)
		}
	}

	tle := g.Anchor(layout.AnchorTotalLiabEquity)
	eq := findRow(t, s, "Total Equity")
	if got, want := eq.Cells[0].Formula, fmt.Sprintf("='36 Month Model'!M%d", tle); got != want {
		t.Errorf("Total Equity = %q, want %q", got, want)
	}
}

func TestKPICustomerRecurrence(t *testing.T) {
	m, g := monthlyGrid(t)
	s, err := KPIs(m, g)
	if err != nil {
		t.Fatalf("KPIs failed: %v", err)
	}
	refs := g.Refs

	row := findRow(t, s, "Customer Count")
	want0 := fmt.Sprintf("=%s+%s-((%s)*%s)", refs.StartCustomers, refs.NewCustomers, refs.StartCustomers, refs.ChurnRate)
	if got := row.Cells[0].Formula; got != want0 {
		t.Errorf("month 1 = %q, want %q", got, want0)
	}
	// Later months chain off the prior column.
	custRow := 2
	want1 := fmt.Sprintf("=B%d+%s-((B%d)*%s)", custRow, refs.NewCustomers, custRow, refs.ChurnRate)
	if got := row.Cells[1].Formula; got != want1 {
		t.Errorf("month 2 = %q, want %q", got, want1)
	}
}

func TestKPISalesMarketingSpend(t *testing.T) {
	m, g := monthlyGrid(t)
	s, err := KPIs(m, g)
	if err != nil {
		t.Fatalf("KPIs failed: %v", err)
	}

	row := findRow(t, s, "S&M Spend")
	mkt := g.OpexRows["Marketing"]
	sales := g.OpexRows["Sales Team"]
	want := fmt.Sprintf("='36 Month Model'!B%d+'36 Month Model'!B%d", mkt, sales)
	if got := row.Cells[0].Formula; got != want {
		t.Errorf("S&M spend = %q, want %q", got, want)
	}

	// Without tags the row degrades to a structural zero.
	m.KPI.SalesMarketingItems = nil
	s2, err := KPIs(m, g)
	if err != nil {
		t.Fatalf("KPIs failed: %v", err)
	}
	if got := findRow(t, s2, "S&M Spend").Cells[0].Formula; got != "=0" {
		t.Errorf("untagged S&M spend = %q, want =0", got)
	}
}

func TestKPIZeroGuards(t *testing.T) {
	m, g := monthlyGrid(t)
	s, err := KPIs(m, g)
	if err != nil {
		t.Fatalf("KPIs failed: %v", err)
	}

	// Every ratio row must short-circuit on a zero denominator.
	for _, label := range []string{"CAC", "Gross Margin %", "ARPA", "LTV", "LTV:CAC Ratio", "Gross Profit per Customer", "CAC Payback (Months)", "EBITDA Margin %"} {
		row := findRow(t, s, label)
		f := row.Cells[0].Formula
		if len(f) < 4 || f[:4] != "=IF(" {
			t.Errorf("%s should be zero-guarded, got %q", label, f)
		}
	}
}

func TestKPIYearOverYearNotAvailableEarly(t *testing.T) {
	m, g := monthlyGrid(t)
	s, err := KPIs(m, g)
	if err != nil {
		t.Fatalf("KPIs failed: %v", err)
	}

	for _, label := range []string{"Revenue Growth % (YoY)", "Rule of 40"} {
		row := findRow(t, s, label)
		for i := 0; i < 12; i++ {
			if row.Cells[i].Kind != sheet.CellText || row.Cells[i].Text != "N/A" {
				t.Errorf("%s month %d should be N/A", label, i+1)
			}
		}
		if row.Cells[12].Kind != sheet.CellFormula {
			t.Errorf("%s month 13 should be a formula", label)
		}
	}

	trev := g.Anchor(layout.AnchorTotalRevenue)
	growth := findRow(t, s, "Revenue Growth % (YoY)")
	// Month 13 compares against month 1 (column B).
	cur := fmt.Sprintf("'36 Month Model'!N%d", trev)
	prev := fmt.Sprintf("'36 Month Model'!B%d", trev)
	want := fmt.Sprintf("=IF(%s>0, (%s-%s)/%s, 0)", prev, cur, prev, prev)
	if got := growth.Cells[12].Formula; got != want {
		t.Errorf("month 13 growth = %q, want %q", got, want)
	}
}
