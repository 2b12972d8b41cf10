package registry

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor represents one supported device in the registry
type Descriptor struct {
	Model       string `yaml:"model"`
	Vendor      string `yaml:"vendor"`
	Description string `yaml:"description"`
	Supports    string `yaml:"supports"`
}

// Registry is the ordered list of supported devices.
// The same model may be listed more than once.
type Registry []Descriptor

// Models returns the model of every listing, in registry order and with repeats
func (r Registry) Models() []string {
	models := make([]string, 0, len(r))
	for _, d := range r {
		models = append(models, d.Model)
	}
	return models
}

// Field is a single key/value pair of a discovery payload
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered list of payload fields. Order follows the source document.
type Fields []Field

// Get returns the value stored under key
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present, whatever its value
func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns the field keys in order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, field := range f {
		keys = append(keys, field.Key)
	}
	return keys
}

// UnmarshalYAML decodes a YAML mapping while keeping its key order
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*f = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: discovery payload must be a mapping", node.Line)
	}

	fields := make(Fields, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("line %d: invalid payload key: %w", keyNode.Line, err)
		}
		if seen[key] {
			return fmt.Errorf("line %d: duplicate payload key %q", keyNode.Line, key)
		}
		seen[key] = true

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("line %d: invalid value for %q: %w", valueNode.Line, key, err)
		}
		fields = append(fields, Field{Key: key, Value: value})
	}

	*f = fields
	return nil
}

// Variant is one discovery configuration of a model
type Variant struct {
	Type    string `yaml:"type"`
	Payload Fields `yaml:"discovery_payload"`
}

// Mapping maps a model to its discovery variants, in order
type Mapping map[string][]Variant

// Lookup returns the variants of model. A model that is absent or has no
// variants is a registry/mapping inconsistency.
func (m Mapping) Lookup(model string) ([]Variant, error) {
	variants, ok := m[model]
	if !ok {
		return nil, &DataIntegrityError{Model: model, Err: ErrMissingDiscovery}
	}
	if len(variants) == 0 {
		return nil, &DataIntegrityError{Model: model, Err: ErrNoVariants}
	}
	return variants, nil
}

// Validate checks every registry model against the mapping and reports all
// inconsistencies at once. Repeated listings of a model are reported once.
func (m Mapping) Validate(reg Registry) error {
	var errs []error
	checked := make(map[string]bool)
	for _, model := range reg.Models() {
		if checked[model] {
			continue
		}
		checked[model] = true

		if _, err := m.Lookup(model); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}
