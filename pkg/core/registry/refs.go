package registry

import (
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/sheet"
)

// RevenueRefs holds the tokens of one revenue stream's drivers.
type RevenueRefs struct {
	Start    Ref
	Growth   Ref // quarterly: single rate
	GrowthY1 Ref // monthly: annualized per-year rates
	GrowthY2 Ref
	GrowthY3 Ref
}

// OpexRefs holds the tokens of one operating-expense item's drivers. Unused
// fields stay empty depending on the item kind.
type OpexRefs struct {
	Value     Ref
	Growth    Ref
	Headcount Ref
	Salary    Ref
	Threshold Ref
}

// CapexRefs holds the tokens of one capital asset's drivers.
type CapexRefs struct {
	Cost Ref
	Rate Ref
}

// Refs binds every driver of one (model, variant, scenario) triple to its
// registered token. Item tokens are keyed by item name; the synthesizer walks
// the model's ordered slices, so map iteration order never leaks into output.
type Refs struct {
	TaxRate   Ref
	TaxTiming Ref
	BegNOL    Ref // monthly only

	BegCash Ref
	ARPct   Ref
	APPct   Ref
	DRPct   Ref
	DIO     Ref // monthly only
	DPO     Ref // monthly only

	Equity   Ref
	Debt     Ref
	DebtInt  Ref
	CashInt  Ref
	ODInt    Ref // monthly only
	DebtTerm Ref // monthly only

	Revenue map[string]RevenueRefs
	COGS    map[string]Ref
	Opex    map[string]OpexRefs
	Capex   map[string]CapexRefs

	MaintCapex Ref // monthly only

	StartCustomers Ref // monthly only
	NewCustomers   Ref // monthly only
	ChurnRate      Ref // monthly only
}

// Build registers every driver the given variant consumes, in listing order:
// globals, working capital, financing, then item drivers, then the KPI block.
// The same logical driver is registered exactly once per pass.
func Build(r *Registry, m *model.Model, variant model.Variant, scen model.Scenario) *Refs {
	refs := &Refs{
		Revenue: make(map[string]RevenueRefs, len(m.Revenue)),
		COGS:    make(map[string]Ref, len(m.COGS)),
		Opex:    make(map[string]OpexRefs, len(m.Opex)),
		Capex:   make(map[string]CapexRefs, len(m.Capex)),
	}
	monthly := variant == model.VariantMonthly

	timing := 0.0
	if m.Tax.PaymentTiming == model.TaxNextYear {
		timing = 1.0
	}

	refs.TaxRate = r.Register("Global", "Tax Rate", m.Tax.Rate.Get(scen, 0.25), sheet.FormatPercent)
	refs.TaxTiming = r.Register("Global", "Tax Payment (0=Imm, 1=NextYr)", timing, sheet.FormatGeneral)
	if monthly {
		refs.BegNOL = r.Register("Global", "NOL Beginning Balance", m.Tax.NOLBalance, sheet.FormatCurrency)
	}

	wc := m.WorkingCapital
	refs.BegCash = r.Register("Working Capital", "Beginning Cash", wc.BeginningCash, sheet.FormatCurrency)
	refs.ARPct = r.Register("Working Capital", "AR % of Rev", wc.ARPercent.Get(scen, 0), sheet.FormatPercent)
	refs.APPct = r.Register("Working Capital", "AP % of OpEx", wc.APPercent.Get(scen, 0), sheet.FormatPercent)
	refs.DRPct = r.Register("Working Capital", "Deferred Rev %", wc.DeferredRevenuePercent.Get(scen, 0), sheet.FormatPercent)
	if monthly {
		refs.DIO = r.Register("Working Capital", "Days Inventory Outstanding (DIO)", wc.DaysInventory.Get(scen, 30), sheet.FormatGeneral)
		refs.DPO = r.Register("Working Capital", "Days Payable Outstanding (DPO)", wc.DaysPayable.Get(scen, 30), sheet.FormatGeneral)
	}

	fin := m.Financing
	refs.Equity = r.Register("Financing", "Equity Raised", fin.EquityRaised.Get(scen, 0), sheet.FormatCurrency)
	refs.Debt = r.Register("Financing", "Debt Issued", fin.DebtIssued.Get(scen, 0), sheet.FormatCurrency)
	refs.DebtInt = r.Register("Financing", "Debt Interest Rate", fin.DebtInterestRate.Get(scen, 0.05), sheet.FormatPercent)
	refs.CashInt = r.Register("Financing", "Cash Interest Rate", fin.CashInterestRate.Get(scen, 0.02), sheet.FormatPercent)
	if monthly {
		refs.ODInt = r.Register("Financing", "Overdraft Interest Rate", fin.OverdraftInterestRate.Get(scen, 0.10), sheet.FormatPercent)
		refs.DebtTerm = r.Register("Financing", "Debt Repayment Term (Years)", fin.DebtRepaymentTerm.Get(scen, 5), sheet.FormatGeneral)
	}

	for _, it := range m.Revenue {
		rr := RevenueRefs{
			Start: r.Register("Revenue", it.Name+" - Start Value", it.Value.Get(scen, 0), sheet.FormatCurrency),
		}
		if monthly {
			rr.GrowthY1 = r.Register("Revenue", it.Name+" - Y1 Growth", it.GrowthY1.Get(scen, 0.10), sheet.FormatPercent)
			rr.GrowthY2 = r.Register("Revenue", it.Name+" - Y2 Growth", it.GrowthY2.Get(scen, 0.07), sheet.FormatPercent)
			rr.GrowthY3 = r.Register("Revenue", it.Name+" - Y3 Growth", it.GrowthY3.Get(scen, 0.04), sheet.FormatPercent)
		} else {
			rr.Growth = r.Register("Revenue", it.Name+" - Growth", it.Growth.Get(scen, 0), sheet.FormatPercent)
		}
		refs.Revenue[it.Name] = rr
	}

	for _, it := range m.COGS {
		if it.Kind == model.CostPercentOfRevenue {
			refs.COGS[it.Name] = r.Register("COGS", it.Name+" - % of Rev", it.Value.Get(scen, 0), sheet.FormatPercent)
		} else {
			refs.COGS[it.Name] = r.Register("COGS", it.Name+" - Fixed Amt", it.Value.Get(scen, 0), sheet.FormatCurrency)
		}
	}

	for _, it := range m.Opex {
		var or OpexRefs
		switch it.Kind {
		case model.OpexFixedAmount:
			or.Value = r.Register("OpEx", it.Name+" - Start Value", it.Amount.Get(scen, 0), sheet.FormatCurrency)
			or.Growth = r.Register("OpEx", it.Name+" - Growth", it.Growth.Get(scen, 0), sheet.FormatPercent)
		case model.OpexPercentOfRevenue:
			or.Value = r.Register("OpEx", it.Name+" - % of Rev", it.Amount.Get(scen, 0), sheet.FormatPercent)
		case model.OpexPersonnel:
			or.Headcount = r.Register("OpEx", it.Name+" - Headcount", it.Headcount.Get(scen, 0), sheet.FormatGeneral)
			or.Salary = r.Register("OpEx", it.Name+" - Avg Salary", it.Salary.Get(scen, 0), sheet.FormatCurrency)
			// Only the monthly synthesizer reads the hiring ratchet; the
			// quarterly pass must not register a token no formula will use.
			if monthly && it.RevenueThreshold != nil {
				or.Threshold = r.Register("OpEx", it.Name+" - Revenue Threshold ($)", it.RevenueThreshold.Get(scen, 50000), sheet.FormatCurrency)
			}
		}
		refs.Opex[it.Name] = or
	}

	for _, it := range m.Capex {
		refs.Capex[it.Name] = CapexRefs{
			Cost: r.Register("CapEx", it.Name+" - Cost", it.Cost.Get(scen, 0), sheet.FormatCurrency),
			Rate: r.Register("CapEx", it.Name+" - Deprec Rate", it.DepreciationRate.Get(scen, 0.20), sheet.FormatPercent),
		}
	}

	if monthly {
		refs.MaintCapex = r.Register("CapEx", "Maintenance CapEx (% of Revenue)", m.CapexPolicy.MaintenancePercent.Get(scen, 0.02), sheet.FormatPercent)
		refs.StartCustomers = r.Register("KPIs", "Starting Customers", m.KPI.StartingCustomers.Get(scen, 0), sheet.FormatGeneral)
		refs.NewCustomers = r.Register("KPIs", "New Customers Monthly", m.KPI.NewCustomersPeriod.Get(scen, 0), sheet.FormatGeneral)
		refs.ChurnRate = r.Register("KPIs", "Monthly Churn Rate", m.KPI.ChurnRate.Get(scen, 0), sheet.FormatPercent)
	}

	return refs
}
