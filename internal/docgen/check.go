package docgen

import (
	"errors"

	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

// Check reports every problem that would stop the integration guide from
// being generated: unmapped models, empty variant lists and malformed
// payload overrides. Each model is checked once.
func (a *Assembler) Check(reg registry.Registry, mapping registry.Mapping) error {
	var errs []error
	if err := mapping.Validate(reg); err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			errs = append(errs, joined.Unwrap()...)
		} else {
			errs = append(errs, err)
		}
	}

	checked := make(map[string]bool)
	for _, model := range reg.Models() {
		if checked[model] {
			continue
		}
		checked[model] = true

		// unresolved models were reported by Validate
		variants, err := mapping.Lookup(model)
		if err != nil {
			continue
		}
		for _, variant := range variants {
			if _, err := a.synth.Block(model, variant); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
