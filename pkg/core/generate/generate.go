// Package generate is the one-call facade over the pipeline: validate the
// assumption model, register its drivers, lay out the primary grid, link the
// derived views, and assemble the workbook. It either returns a complete
// workbook or an error; there is no partial output.
package generate

import (
	"finmodeler/pkg/core/layout"
	"finmodeler/pkg/core/linker"
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/core/registry"
	"finmodeler/pkg/core/sheet"
)

// Options selects the axis and scenario of one generation pass.
type Options struct {
	Variant  model.Variant
	Scenario model.Scenario
	// Calc overrides the iterative-calculation settings. Nil means the
	// defaults; a non-nil value is taken as-is, so iteration can be
	// switched off explicitly.
	Calc *sheet.CalcSettings
}

// Generate runs the full pipeline for one (model, variant, scenario) triple.
func Generate(m *model.Model, opts Options) (*sheet.Workbook, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if !opts.Variant.Valid() {
		return nil, model.ConfigErrorf("unknown variant %q", opts.Variant)
	}
	if !m.HasScenario(opts.Scenario) {
		return nil, model.ConfigErrorf("scenario %q is not declared by the model", opts.Scenario)
	}

	reg := registry.New()
	refs := registry.Build(reg, m, opts.Variant, opts.Scenario)

	grid, err := layout.Build(m, refs, opts.Variant, opts.Scenario)
	if err != nil {
		return nil, err
	}

	sheets := []*sheet.Sheet{reg.Listing(), grid.Sheet}
	if opts.Variant == model.VariantMonthly {
		summary, err := linker.Summary(grid)
		if err != nil {
			return nil, err
		}
		kpis, err := linker.KPIs(m, grid)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, summary, kpis)
	}

	calc := sheet.DefaultCalcSettings()
	if opts.Calc != nil {
		calc = *opts.Calc
	}
	return &sheet.Workbook{Sheets: sheets, Calc: calc}, nil
}
