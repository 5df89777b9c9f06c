package model

import "fmt"

// Validate checks the model before any grid is emitted. All findings are
// configuration errors; generation refuses to start while any remain.
func (m *Model) Validate() error {
	if len(m.Scenarios) == 0 {
		return ConfigErrorf("model declares no scenarios")
	}

	seen := map[Scenario]bool{}
	for _, s := range m.Scenarios {
		if seen[s] {
			return ConfigErrorf("scenario %q declared twice", s)
		}
		seen[s] = true
	}

	if err := m.validateNames(); err != nil {
		return err
	}
	if err := m.validateKinds(); err != nil {
		return err
	}
	return m.validateCoverage()
}

func (m *Model) validateNames() error {
	check := func(category string, names []string) error {
		seen := map[string]bool{}
		for _, n := range names {
			if n == "" {
				return ConfigErrorf("%s item with empty name", category)
			}
			if seen[n] {
				return ConfigErrorf("duplicate %s item %q", category, n)
			}
			seen[n] = true
		}
		return nil
	}

	names := func(n int, at func(int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = at(i)
		}
		return out
	}

	if err := check("revenue", names(len(m.Revenue), func(i int) string { return m.Revenue[i].Name })); err != nil {
		return err
	}
	if err := check("COGS", names(len(m.COGS), func(i int) string { return m.COGS[i].Name })); err != nil {
		return err
	}
	if err := check("OpEx", names(len(m.Opex), func(i int) string { return m.Opex[i].Name })); err != nil {
		return err
	}
	return check("CapEx", names(len(m.Capex), func(i int) string { return m.Capex[i].Name }))
}

func (m *Model) validateKinds() error {
	for _, it := range m.COGS {
		switch it.Kind {
		case CostPercentOfRevenue, CostFixedAmount:
		default:
			return ConfigErrorf("COGS item %q has unrecognized kind %q", it.Name, it.Kind)
		}
	}
	for _, it := range m.Opex {
		switch it.Kind {
		case OpexFixedAmount, OpexPercentOfRevenue, OpexPersonnel:
		default:
			return ConfigErrorf("OpEx item %q has unrecognized kind %q", it.Name, it.Kind)
		}
	}
	switch m.Tax.PaymentTiming {
	case TaxImmediate, TaxNextYear:
	default:
		return ConfigErrorf("unrecognized tax payment timing %q", m.Tax.PaymentTiming)
	}
	for _, sm := range m.KPI.SalesMarketingItems {
		found := false
		for _, it := range m.Opex {
			if it.Name == sm {
				found = true
				break
			}
		}
		if !found {
			return ConfigErrorf("S&M tag references unknown OpEx item %q", sm)
		}
	}
	return nil
}

// validateCoverage enforces the total-coverage invariant: every per-scenario
// driver has an entry for every declared scenario.
func (m *Model) validateCoverage() error {
	covered := func(where string, sv ScenarioValue) error {
		if sv == nil {
			return nil // field unused by this item kind
		}
		for _, s := range m.Scenarios {
			if _, ok := sv[s]; !ok {
				return ConfigErrorf("%s missing value for scenario %q", where, s)
			}
		}
		return nil
	}

	for _, it := range m.Revenue {
		where := fmt.Sprintf("revenue item %q", it.Name)
		for _, sv := range []ScenarioValue{it.Value, it.Growth, it.GrowthY1, it.GrowthY2, it.GrowthY3} {
			if err := covered(where, sv); err != nil {
				return err
			}
		}
	}
	for _, it := range m.COGS {
		if err := covered(fmt.Sprintf("COGS item %q", it.Name), it.Value); err != nil {
			return err
		}
	}
	for _, it := range m.Opex {
		where := fmt.Sprintf("OpEx item %q", it.Name)
		for _, sv := range []ScenarioValue{it.Amount, it.Growth, it.Headcount, it.Salary, it.RevenueThreshold} {
			if err := covered(where, sv); err != nil {
				return err
			}
		}
	}
	for _, it := range m.Capex {
		where := fmt.Sprintf("capital asset %q", it.Name)
		for _, sv := range []ScenarioValue{it.Cost, it.DepreciationRate} {
			if err := covered(where, sv); err != nil {
				return err
			}
		}
	}

	globals := []struct {
		where string
		sv    ScenarioValue
	}{
		{"tax rate", m.Tax.Rate},
		{"AR percent", m.WorkingCapital.ARPercent},
		{"AP percent", m.WorkingCapital.APPercent},
		{"deferred revenue percent", m.WorkingCapital.DeferredRevenuePercent},
		{"days inventory", m.WorkingCapital.DaysInventory},
		{"days payable", m.WorkingCapital.DaysPayable},
		{"equity raised", m.Financing.EquityRaised},
		{"debt issued", m.Financing.DebtIssued},
		{"debt interest rate", m.Financing.DebtInterestRate},
		{"cash interest rate", m.Financing.CashInterestRate},
		{"overdraft interest rate", m.Financing.OverdraftInterestRate},
		{"debt repayment term", m.Financing.DebtRepaymentTerm},
		{"maintenance capex percent", m.CapexPolicy.MaintenancePercent},
		{"starting customers", m.KPI.StartingCustomers},
		{"new customers per period", m.KPI.NewCustomersPeriod},
		{"churn rate", m.KPI.ChurnRate},
	}
	for _, g := range globals {
		if err := covered(g.where, g.sv); err != nil {
			return err
		}
	}
	return nil
}
