package model

import (
	"os"

	"gopkg.in/yaml.v2"
)

// FromYAML decodes a model from YAML. Scenario values may be written either
// as a per-scenario mapping or omitted entirely; decoded models still go
// through Validate before generation.
func FromYAML(data []byte) (*Model, error) {
	var m Model
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, ConfigErrorf("parsing model YAML: %v", err)
	}
	if len(m.Scenarios) == 0 {
		m.Scenarios = DefaultScenarios()
	}
	return &m, nil
}

// LoadFile reads and decodes a model YAML file.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ConfigErrorf("reading model file: %v", err)
	}
	return FromYAML(data)
}

// ToYAML encodes the model, e.g. for seeding an assumptions file.
func (m *Model) ToYAML() ([]byte, error) {
	return yaml.Marshal(m)
}
