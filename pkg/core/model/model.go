package model

// New creates an empty model declaring the given scenarios.
func New(scenarios ...Scenario) *Model {
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}
	return &Model{
		Scenarios: scenarios,
		Tax: TaxAssumptions{
			Rate:          NewScenarioValue(scenarios, 0.25),
			PaymentTiming: TaxImmediate,
		},
		WorkingCapital: WorkingCapitalAssumptions{
			BeginningCash:          50000,
			ARPercent:              NewScenarioValue(scenarios, 0.10),
			APPercent:              NewScenarioValue(scenarios, 0.10),
			DeferredRevenuePercent: NewScenarioValue(scenarios, 0.0),
			DaysInventory:          NewScenarioValue(scenarios, 30),
			DaysPayable:            NewScenarioValue(scenarios, 30),
		},
		Financing: FinancingAssumptions{
			EquityRaised:          NewScenarioValue(scenarios, 0),
			DebtIssued:            NewScenarioValue(scenarios, 0),
			DebtInterestRate:      NewScenarioValue(scenarios, 0.05),
			CashInterestRate:      NewScenarioValue(scenarios, 0.02),
			OverdraftInterestRate: NewScenarioValue(scenarios, 0.10),
			DebtRepaymentTerm:     NewScenarioValue(scenarios, 5),
		},
		CapexPolicy: CapexPolicy{
			MaintenancePercent: NewScenarioValue(scenarios, 0.02),
		},
		KPI: KPIAssumptions{
			StartingCustomers:  NewScenarioValue(scenarios, 100),
			NewCustomersPeriod: NewScenarioValue(scenarios, 10),
			ChurnRate:          NewScenarioValue(scenarios, 0.02),
		},
	}
}

// Example returns a model seeded with the stock demo drivers: two revenue
// streams, mixed COGS, a marketing line plus a personnel line with dynamic
// hiring, and two depreciating assets.
func Example() *Model {
	m := New()
	s := m.Scenarios
	m.Revenue = []RevenueItem{
		{
			Name:     "Product Sales",
			Value:    NewScenarioValue(s, 100000),
			Growth:   NewScenarioValue(s, 0.10),
			GrowthY1: NewScenarioValue(s, 0.10),
			GrowthY2: NewScenarioValue(s, 0.07),
			GrowthY3: NewScenarioValue(s, 0.04),
		},
		{
			Name:     "Service Revenue",
			Value:    NewScenarioValue(s, 50000),
			Growth:   NewScenarioValue(s, 0.05),
			GrowthY1: NewScenarioValue(s, 0.05),
			GrowthY2: NewScenarioValue(s, 0.03),
			GrowthY3: NewScenarioValue(s, 0.02),
		},
	}
	m.COGS = []COGSItem{
		{Name: "Hosting Costs", Kind: CostPercentOfRevenue, Value: NewScenarioValue(s, 0.20)},
		{Name: "Support Staff", Kind: CostFixedAmount, Value: NewScenarioValue(s, 20000)},
	}
	m.Opex = []OpexItem{
		{
			Name:   "Marketing",
			Kind:   OpexFixedAmount,
			Amount: NewScenarioValue(s, 10000),
			Growth: NewScenarioValue(s, 0.05),
		},
		{
			Name:             "Sales Team",
			Kind:             OpexPersonnel,
			Headcount:        NewScenarioValue(s, 2),
			Salary:           NewScenarioValue(s, 60000),
			RevenueThreshold: NewScenarioValue(s, 50000),
		},
	}
	m.Capex = []CapexItem{
		{Name: "Servers", Cost: NewScenarioValue(s, 50000), DepreciationRate: NewScenarioValue(s, 0.20)},
		{Name: "Laptops", Cost: NewScenarioValue(s, 10000), DepreciationRate: NewScenarioValue(s, 0.33)},
	}
	m.KPI.SalesMarketingItems = []string{"Marketing", "Sales Team"}
	return m
}

// =============================================================================
// DYNAMIC ADD / REMOVE
// =============================================================================
// Each add initializes every scenario entry so a new item can never violate
// the total-coverage invariant.

// AddRevenueItem appends a revenue stream with default growth rates.
func (m *Model) AddRevenueItem(name string) error {
	for _, it := range m.Revenue {
		if it.Name == name {
			return ConfigErrorf("revenue item %q already exists", name)
		}
	}
	m.Revenue = append(m.Revenue, RevenueItem{
		Name:     name,
		Value:    NewScenarioValue(m.Scenarios, 0),
		Growth:   NewScenarioValue(m.Scenarios, 0),
		GrowthY1: NewScenarioValue(m.Scenarios, 0.10),
		GrowthY2: NewScenarioValue(m.Scenarios, 0.07),
		GrowthY3: NewScenarioValue(m.Scenarios, 0.04),
	})
	return nil
}

// RemoveRevenueItem deletes a revenue stream by name.
func (m *Model) RemoveRevenueItem(name string) error {
	for i, it := range m.Revenue {
		if it.Name == name {
			m.Revenue = append(m.Revenue[:i], m.Revenue[i+1:]...)
			return nil
		}
	}
	return ConfigErrorf("revenue item %q not found", name)
}

// AddCOGSItem appends a cost-of-goods line.
func (m *Model) AddCOGSItem(name string, kind CostKind) error {
	for _, it := range m.COGS {
		if it.Name == name {
			return ConfigErrorf("COGS item %q already exists", name)
		}
	}
	def := 0.10
	if kind == CostFixedAmount {
		def = 0
	}
	m.COGS = append(m.COGS, COGSItem{
		Name:  name,
		Kind:  kind,
		Value: NewScenarioValue(m.Scenarios, def),
	})
	return nil
}

// RemoveCOGSItem deletes a cost-of-goods line by name.
func (m *Model) RemoveCOGSItem(name string) error {
	for i, it := range m.COGS {
		if it.Name == name {
			m.COGS = append(m.COGS[:i], m.COGS[i+1:]...)
			return nil
		}
	}
	return ConfigErrorf("COGS item %q not found", name)
}

// AddOpexItem appends an operating-expense line of the given kind.
func (m *Model) AddOpexItem(name string, kind OpexKind) error {
	for _, it := range m.Opex {
		if it.Name == name {
			return ConfigErrorf("OpEx item %q already exists", name)
		}
	}
	it := OpexItem{Name: name, Kind: kind}
	switch kind {
	case OpexFixedAmount:
		it.Amount = NewScenarioValue(m.Scenarios, 5000)
		it.Growth = NewScenarioValue(m.Scenarios, 0)
	case OpexPercentOfRevenue:
		it.Amount = NewScenarioValue(m.Scenarios, 0.05)
	case OpexPersonnel:
		it.Headcount = NewScenarioValue(m.Scenarios, 1)
		it.Salary = NewScenarioValue(m.Scenarios, 50000)
	default:
		return ConfigErrorf("unrecognized OpEx kind %q", kind)
	}
	m.Opex = append(m.Opex, it)
	return nil
}

// RemoveOpexItem deletes an operating-expense line by name. The item is also
// dropped from the S&M tag list so the KPI view never references a gone row.
func (m *Model) RemoveOpexItem(name string) error {
	for i, it := range m.Opex {
		if it.Name == name {
			m.Opex = append(m.Opex[:i], m.Opex[i+1:]...)
			for j, sm := range m.KPI.SalesMarketingItems {
				if sm == name {
					m.KPI.SalesMarketingItems = append(m.KPI.SalesMarketingItems[:j], m.KPI.SalesMarketingItems[j+1:]...)
					break
				}
			}
			return nil
		}
	}
	return ConfigErrorf("OpEx item %q not found", name)
}

// AddCapexItem appends a capital asset.
func (m *Model) AddCapexItem(name string) error {
	for _, it := range m.Capex {
		if it.Name == name {
			return ConfigErrorf("capital asset %q already exists", name)
		}
	}
	m.Capex = append(m.Capex, CapexItem{
		Name:             name,
		Cost:             NewScenarioValue(m.Scenarios, 1000),
		DepreciationRate: NewScenarioValue(m.Scenarios, 0.20),
	})
	return nil
}

// RemoveCapexItem deletes a capital asset by name.
func (m *Model) RemoveCapexItem(name string) error {
	for i, it := range m.Capex {
		if it.Name == name {
			m.Capex = append(m.Capex[:i], m.Capex[i+1:]...)
			return nil
		}
	}
	return ConfigErrorf("capital asset %q not found", name)
}

// HasScenario reports whether s is declared on the model.
func (m *Model) HasScenario(s Scenario) bool {
	for _, sc := range m.Scenarios {
		if sc == s {
			return true
		}
	}
	return false
}
