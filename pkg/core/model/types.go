// Package model implements the scenario-aware assumption set that drives
// generation: revenue streams, cost structure, capital assets, tax,
// working-capital, financing and KPI drivers. The model is plain mutable
// in-memory state; the surrounding application owns one instance per session.
package model

// =============================================================================
// SCENARIOS
// =============================================================================

// Scenario is a named alternative set of driver values.
type Scenario string

const (
	ScenarioBase        Scenario = "Base"
	ScenarioOptimistic  Scenario = "Optimistic"
	ScenarioPessimistic Scenario = "Pessimistic"
)

// DefaultScenarios returns the standard three-scenario set.
func DefaultScenarios() []Scenario {
	return []Scenario{ScenarioBase, ScenarioOptimistic, ScenarioPessimistic}
}

// ScenarioValue stores one driver value per scenario. Every declared scenario
// must have an entry; Validate enforces this, while Get stays lenient and
// falls back to a default so a stale model never panics mid-generation.
type ScenarioValue map[Scenario]float64

// NewScenarioValue initializes a value for every given scenario.
func NewScenarioValue(scenarios []Scenario, v float64) ScenarioValue {
	sv := make(ScenarioValue, len(scenarios))
	for _, s := range scenarios {
		sv[s] = v
	}
	return sv
}

// Get returns the value for scenario s, or def when the entry is missing.
func (sv ScenarioValue) Get(s Scenario, def float64) float64 {
	if sv == nil {
		return def
	}
	if v, ok := sv[s]; ok {
		return v
	}
	return def
}

// =============================================================================
// TIME AXIS VARIANT
// =============================================================================

// Variant selects the time axis of the generated model.
type Variant string

const (
	// VariantQuarterly is the four-quarter single-year model.
	VariantQuarterly Variant = "quarterly"
	// VariantMonthly is the 36-month model with Summary and KPI views.
	VariantMonthly Variant = "monthly"
)

// Periods returns the number of periods on the axis.
func (v Variant) Periods() int {
	if v == VariantQuarterly {
		return 4
	}
	return 36
}

// PeriodsPerYear returns the period granularity of one year.
func (v Variant) PeriodsPerYear() int {
	if v == VariantQuarterly {
		return 4
	}
	return 12
}

// SheetName returns the primary grid's sheet name.
func (v Variant) SheetName() string {
	if v == VariantQuarterly {
		return "3 Statement Model"
	}
	return "36 Month Model"
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantQuarterly || v == VariantMonthly
}

// =============================================================================
// LINE ITEM KINDS
// =============================================================================

// CostKind classifies a COGS item.
type CostKind string

const (
	CostPercentOfRevenue CostKind = "% of Rev"
	CostFixedAmount      CostKind = "Fixed Amount"
)

// OpexKind classifies an operating-expense item.
type OpexKind string

const (
	OpexFixedAmount      OpexKind = "Fixed Amount"
	OpexPercentOfRevenue OpexKind = "% of Rev"
	OpexPersonnel        OpexKind = "Personnel"
)

// TaxTiming selects when income tax hits cash.
type TaxTiming string

const (
	TaxImmediate TaxTiming = "Immediate"
	TaxNextYear  TaxTiming = "Next Year"
)

// =============================================================================
// DRIVER ITEMS
// =============================================================================

// RevenueItem is one revenue stream. The quarterly variant reads the single
// Growth rate; the monthly variant reads the annualized Y1/Y2/Y3 rates and
// compounds them to period granularity.
type RevenueItem struct {
	Name     string        `yaml:"name" json:"name"`
	Value    ScenarioValue `yaml:"value" json:"value"` // annual start value ($)
	Growth   ScenarioValue `yaml:"growth" json:"growth"`
	GrowthY1 ScenarioValue `yaml:"growth_y1" json:"growth_y1"`
	GrowthY2 ScenarioValue `yaml:"growth_y2" json:"growth_y2"`
	GrowthY3 ScenarioValue `yaml:"growth_y3" json:"growth_y3"`
}

// COGSItem is one cost-of-goods line, either a % of revenue or a fixed amount.
type COGSItem struct {
	Name  string        `yaml:"name" json:"name"`
	Kind  CostKind      `yaml:"kind" json:"kind"`
	Value ScenarioValue `yaml:"value" json:"value"`
}

// OpexItem is one operating-expense line. Amount carries the fixed start
// amount or the %-of-revenue rate depending on Kind. Personnel items use
// Headcount and Salary; a non-nil RevenueThreshold enables dynamic hiring
// (one extra head per threshold dollars of revenue growth since period 0).
type OpexItem struct {
	Name             string        `yaml:"name" json:"name"`
	Kind             OpexKind      `yaml:"kind" json:"kind"`
	Amount           ScenarioValue `yaml:"amount" json:"amount"`
	Growth           ScenarioValue `yaml:"growth" json:"growth"`
	Headcount        ScenarioValue `yaml:"headcount" json:"headcount"`
	Salary           ScenarioValue `yaml:"salary" json:"salary"`
	RevenueThreshold ScenarioValue `yaml:"revenue_threshold" json:"revenue_threshold"`
}

// CapexItem is one capital asset depreciated straight-line.
type CapexItem struct {
	Name             string        `yaml:"name" json:"name"`
	Cost             ScenarioValue `yaml:"cost" json:"cost"`
	DepreciationRate ScenarioValue `yaml:"depreciation_rate" json:"depreciation_rate"`
}

// TaxAssumptions drive the tax block, including the NOL carryforward used by
// the monthly variant. NOLBalance and the payment timing are shared across
// scenarios, as in the source model.
type TaxAssumptions struct {
	Rate          ScenarioValue `yaml:"rate" json:"rate"`
	PaymentTiming TaxTiming     `yaml:"payment_timing" json:"payment_timing"`
	NOLBalance    float64       `yaml:"nol_balance" json:"nol_balance"`
}

// WorkingCapitalAssumptions drive AR, AP, inventory and deferred revenue.
type WorkingCapitalAssumptions struct {
	BeginningCash          float64       `yaml:"beginning_cash" json:"beginning_cash"`
	ARPercent              ScenarioValue `yaml:"ar_percent" json:"ar_percent"`
	APPercent              ScenarioValue `yaml:"ap_percent" json:"ap_percent"`
	DeferredRevenuePercent ScenarioValue `yaml:"deferred_rev_percent" json:"deferred_rev_percent"`
	DaysInventory          ScenarioValue `yaml:"days_inventory" json:"days_inventory"`
	DaysPayable            ScenarioValue `yaml:"days_payable" json:"days_payable"`
}

// FinancingAssumptions drive equity, debt and the three interest rates.
type FinancingAssumptions struct {
	EquityRaised          ScenarioValue `yaml:"equity_raised" json:"equity_raised"`
	DebtIssued            ScenarioValue `yaml:"debt_issued" json:"debt_issued"`
	DebtInterestRate      ScenarioValue `yaml:"debt_interest_rate" json:"debt_interest_rate"`
	CashInterestRate      ScenarioValue `yaml:"cash_interest_rate" json:"cash_interest_rate"`
	OverdraftInterestRate ScenarioValue `yaml:"overdraft_interest_rate" json:"overdraft_interest_rate"`
	DebtRepaymentTerm     ScenarioValue `yaml:"debt_repayment_term" json:"debt_repayment_term"` // years
}

// CapexPolicy holds the ongoing maintenance CapEx rate (monthly variant).
type CapexPolicy struct {
	MaintenancePercent ScenarioValue `yaml:"maintenance_percent" json:"maintenance_percent"`
}

// KPIAssumptions drive the KPI view. SalesMarketingItems names the OpEx items
// counted as S&M spend for CAC.
type KPIAssumptions struct {
	StartingCustomers   ScenarioValue `yaml:"starting_customers" json:"starting_customers"`
	NewCustomersPeriod  ScenarioValue `yaml:"new_customers_period" json:"new_customers_period"`
	ChurnRate           ScenarioValue `yaml:"churn_rate" json:"churn_rate"`
	SalesMarketingItems []string      `yaml:"sm_opex_items" json:"sm_opex_items"`
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the full assumption set for one planning model. Item slices keep
// declaration order so two generation passes lay out identical grids.
type Model struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`

	Revenue []RevenueItem `yaml:"revenue" json:"revenue"`
	COGS    []COGSItem    `yaml:"cogs" json:"cogs"`
	Opex    []OpexItem    `yaml:"opex" json:"opex"`
	Capex   []CapexItem   `yaml:"capex" json:"capex"`

	Tax            TaxAssumptions            `yaml:"tax" json:"tax"`
	WorkingCapital WorkingCapitalAssumptions `yaml:"working_capital" json:"working_capital"`
	Financing      FinancingAssumptions      `yaml:"financing" json:"financing"`
	CapexPolicy    CapexPolicy               `yaml:"capex_policy" json:"capex_policy"`
	KPI            KPIAssumptions            `yaml:"kpi" json:"kpi"`
}
