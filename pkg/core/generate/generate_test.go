package generate

import (
	"errors"
	"testing"

	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/sheet"
)

func TestGenerateMonthlyWorkbook(t *testing.T) {
	wb, err := Generate(model.Example(), Options{
		Variant:  model.VariantMonthly,
		Scenario: model.ScenarioBase,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{"Assumptions", "36 Month Model", "Annual Summary", "KPIs"}
	if len(wb.Sheets) != len(want) {
		t.Fatalf("got %d sheets, want %d", len(wb.Sheets), len(want))
	}
	for i, name := range want {
		if wb.Sheets[i].Name != name {
			t.Errorf("sheet %d = %q, want %q", i, wb.Sheets[i].Name, name)
		}
	}
	if !wb.Calc.Iterative || wb.Calc.MaxIterations != 100 {
		t.Errorf("default calc settings not applied: %+v", wb.Calc)
	}
}

func TestGenerateQuarterlyWorkbook(t *testing.T) {
	wb, err := Generate(model.Example(), Options{
		Variant:  model.VariantQuarterly,
		Scenario: model.ScenarioOptimistic,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("quarterly workbook should have 2 sheets, got %d", len(wb.Sheets))
	}
	if wb.Sheet("3 Statement Model") == nil {
		t.Error("primary grid missing")
	}
	if wb.Sheet("Annual Summary") != nil || wb.Sheet("KPIs") != nil {
		t.Error("quarterly workbook should have no derived views")
	}
}

func TestGenerateCalcOverride(t *testing.T) {
	// An explicit override is taken as-is, including iteration switched off.
	wb, err := Generate(model.Example(), Options{
		Variant:  model.VariantQuarterly,
		Scenario: model.ScenarioBase,
		Calc:     &sheet.CalcSettings{Iterative: false},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if wb.Calc.Iterative {
		t.Error("explicitly disabled iteration should not be overridden")
	}

	custom := &sheet.CalcSettings{Iterative: true, MaxIterations: 25, Tolerance: 0.01}
	wb, err = Generate(model.Example(), Options{
		Variant:  model.VariantQuarterly,
		Scenario: model.ScenarioBase,
		Calc:     custom,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if wb.Calc != *custom {
		t.Errorf("calc override not applied: %+v", wb.Calc)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	m := model.Example()

	// Case 1: unknown variant
	_, err := Generate(m, Options{Variant: "weekly", Scenario: model.ScenarioBase})
	if !errors.Is(err, model.ErrConfig) {
		t.Errorf("unknown variant: got %v, want config error", err)
	}

	// Case 2: undeclared scenario
	_, err = Generate(m, Options{Variant: model.VariantMonthly, Scenario: "Stress"})
	if !errors.Is(err, model.ErrConfig) {
		t.Errorf("undeclared scenario: got %v, want config error", err)
	}

	// Case 3: invalid model; no partial workbook comes back
	m.COGS[0].Kind = "Broken"
	wb, err := Generate(m, Options{Variant: model.VariantMonthly, Scenario: model.ScenarioBase})
	if err == nil {
		t.Fatal("invalid model should fail generation")
	}
	if wb != nil {
		t.Error("failed generation must not return a workbook")
	}
}

func TestGenerateDoesNotMutateModel(t *testing.T) {
	m := model.Example()
	before := len(m.Opex)
	if _, err := Generate(m, Options{Variant: model.VariantMonthly, Scenario: model.ScenarioBase}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(m.Opex) != before {
		t.Error("generation must not mutate the model")
	}
	// A second pass over the same model emits the same registry rows.
	wb1, _ := Generate(m, Options{Variant: model.VariantMonthly, Scenario: model.ScenarioBase})
	wb2, _ := Generate(m, Options{Variant: model.VariantMonthly, Scenario: model.ScenarioBase})
	if len(wb1.Sheets[0].Rows) != len(wb2.Sheets[0].Rows) {
		t.Error("repeated generation should register identical assumptions")
	}
}
