package model

import (
	"errors"
	"strings"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	m := New()
	if len(m.Scenarios) != 3 {
		t.Fatalf("expected 3 default scenarios, got %d", len(m.Scenarios))
	}
	if got := m.Tax.Rate.Get(ScenarioBase, 0); got != 0.25 {
		t.Errorf("default tax rate = %v, want 0.25", got)
	}
	if m.WorkingCapital.BeginningCash != 50000 {
		t.Errorf("default beginning cash = %v, want 50000", m.WorkingCapital.BeginningCash)
	}
	if got := m.Financing.DebtRepaymentTerm.Get(ScenarioPessimistic, 0); got != 5 {
		t.Errorf("default repayment term = %v, want 5", got)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("empty model should validate: %v", err)
	}
}

func TestExampleValidates(t *testing.T) {
	m := Example()
	if err := m.Validate(); err != nil {
		t.Fatalf("example model should validate: %v", err)
	}
	if len(m.Revenue) != 2 || len(m.COGS) != 2 || len(m.Opex) != 2 || len(m.Capex) != 2 {
		t.Errorf("unexpected example item counts: rev=%d cogs=%d opex=%d capex=%d",
			len(m.Revenue), len(m.COGS), len(m.Opex), len(m.Capex))
	}
	if m.Opex[1].RevenueThreshold == nil {
		t.Error("Sales Team should carry a revenue threshold")
	}
}

func TestAddDuplicateItem(t *testing.T) {
	m := New()
	if err := m.AddRevenueItem("Subscriptions"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	err := m.AddRevenueItem("Subscriptions")
	if err == nil {
		t.Fatal("duplicate add should fail")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("duplicate add should be a config error, got %v", err)
	}
}

func TestAddInitializesAllScenarios(t *testing.T) {
	m := New()
	if err := m.AddOpexItem("Rent", OpexFixedAmount); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// A fresh item must never violate the coverage invariant.
	if err := m.Validate(); err != nil {
		t.Errorf("model with fresh item should validate: %v", err)
	}
	for _, s := range m.Scenarios {
		if _, ok := m.Opex[0].Amount[s]; !ok {
			t.Errorf("new item missing entry for scenario %q", s)
		}
	}
}

func TestRemoveOpexDropsSMTag(t *testing.T) {
	m := Example()
	if err := m.RemoveOpexItem("Marketing"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	for _, sm := range m.KPI.SalesMarketingItems {
		if sm == "Marketing" {
			t.Error("S&M tag should be dropped with its OpEx item")
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("model should still validate after removal: %v", err)
	}
}

func TestValidateCoverage(t *testing.T) {
	m := Example()
	delete(m.Revenue[0].Value, ScenarioPessimistic)
	err := m.Validate()
	if err == nil {
		t.Fatal("missing scenario entry should fail validation")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("coverage failure should be a config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Pessimistic") {
		t.Errorf("error should name the missing scenario: %v", err)
	}
}

func TestValidateKinds(t *testing.T) {
	m := Example()
	m.COGS[0].Kind = "Percent"
	if err := m.Validate(); err == nil {
		t.Error("unrecognized COGS kind should fail validation")
	}

	m = Example()
	m.Tax.PaymentTiming = "Quarterly"
	if err := m.Validate(); err == nil {
		t.Error("unrecognized tax timing should fail validation")
	}

	m = Example()
	m.KPI.SalesMarketingItems = append(m.KPI.SalesMarketingItems, "Ghost Item")
	if err := m.Validate(); err == nil {
		t.Error("S&M tag for unknown OpEx item should fail validation")
	}
}

func TestScenarioValueGetLenient(t *testing.T) {
	var sv ScenarioValue
	if got := sv.Get(ScenarioBase, 0.42); got != 0.42 {
		t.Errorf("nil lookup = %v, want default 0.42", got)
	}
	sv = NewScenarioValue([]Scenario{ScenarioBase}, 7)
	if got := sv.Get("Custom", 3); got != 3 {
		t.Errorf("missing-entry lookup = %v, want default 3", got)
	}
	if got := sv.Get(ScenarioBase, 3); got != 7 {
		t.Errorf("present-entry lookup = %v, want 7", got)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	m := Example()
	data, err := m.ToYAML()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	back, err := FromYAML(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if err := back.Validate(); err != nil {
		t.Fatalf("round-tripped model should validate: %v", err)
	}
	if len(back.Revenue) != len(m.Revenue) {
		t.Errorf("revenue items lost in round trip: %d != %d", len(back.Revenue), len(m.Revenue))
	}
	if got := back.Opex[1].RevenueThreshold.Get(ScenarioBase, 0); got != 50000 {
		t.Errorf("threshold after round trip = %v, want 50000", got)
	}
}

func TestFromYAMLDefaultsScenarios(t *testing.T) {
	m, err := FromYAML([]byte("revenue:\n  - name: Sales\n    value:\n      Base: 1000\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(m.Scenarios) != 3 {
		t.Errorf("omitted scenarios should default to 3, got %d", len(m.Scenarios))
	}
}

func TestFromYAMLRejectsUnknownFields(t *testing.T) {
	_, err := FromYAML([]byte("bogus_field: 1\n"))
	if err == nil {
		t.Fatal("unknown field should be rejected")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("parse failure should be a config error, got %v", err)
	}
}
