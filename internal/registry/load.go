package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRegistry loads the device registry from a YAML file
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	reg, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}

	return reg, nil
}

// ParseRegistry decodes a YAML sequence of device descriptors
func ParseRegistry(data []byte) (Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry: %w", err)
	}

	for i, d := range reg {
		if d.Model == "" {
			return nil, fmt.Errorf("device %d: model is required", i)
		}
		if d.Vendor == "" {
			return nil, fmt.Errorf("device %d (%s): vendor is required", i, d.Model)
		}
	}

	return reg, nil
}

// LoadMapping loads the discovery mapping from a YAML file
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read discovery mapping: %w", err)
	}

	mapping, err := ParseMapping(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse discovery mapping %s: %w", path, err)
	}

	return mapping, nil
}

// ParseMapping decodes a YAML mapping of model to discovery variants
func ParseMapping(data []byte) (Mapping, error) {
	var mapping Mapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal discovery mapping: %w", err)
	}

	if mapping == nil {
		mapping = make(Mapping)
	}

	for model, variants := range mapping {
		for i, v := range variants {
			if v.Type == "" {
				return nil, fmt.Errorf("model %s: variant %d: type is required", model, i)
			}
		}
	}

	return mapping, nil
}
