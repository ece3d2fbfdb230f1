// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadRegistry reads a registry file. An empty path yields Default().
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return &reg, nil
}

func (r *Registry) Validate() error {
	if len(r.NumericFields) == 0 {
		return fmt.Errorf("numericFields must not be empty")
	}
	seen := make(map[string]bool)
	for _, name := range r.Columns() {
		if name == "" {
			return fmt.Errorf("field names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = true
	}
	for _, f := range r.CategoricalFields {
		if len(f.Allowed) == 0 {
			return fmt.Errorf("categorical field %q has no allowed values", f.Name)
		}
	}
	return nil
}

// SaveRegistry writes the registry as indented JSON.
func SaveRegistry(path string, reg *Registry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
