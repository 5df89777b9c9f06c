package main

import (
	"flag"
	"fmt"
	"os"

	"finmodeler/pkg/core/generate"
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/render/xlsx"
)

func main() {
	var (
		configPath = flag.String("config", "", "assumption model YAML (default: built-in example)")
		variant    = flag.String("variant", "monthly", "time axis: monthly or quarterly")
		scenario   = flag.String("scenario", "Base", "scenario to generate")
		out        = flag.String("out", "financial_model.xlsx", "output xlsx path")
	)
	flag.Parse()

	m := model.Example()
	if *configPath != "" {
		loaded, err := model.LoadFile(*configPath)
		if err != nil {
			fmt.Printf("[FATAL] Load config: %v\n", err)
			os.Exit(1)
		}
		m = loaded
	}

	wb, err := generate.Generate(m, generate.Options{
		Variant:  model.Variant(*variant),
		Scenario: model.Scenario(*scenario),
	})
	if err != nil {
		fmt.Printf("[FATAL] Generate: %v\n", err)
		os.Exit(1)
	}

	var w xlsx.Writer
	if err := w.WriteFile(wb, *out); err != nil {
		fmt.Printf("[FATAL] Write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d sheets, scenario %s)\n", *out, len(wb.Sheets), *scenario)
}
