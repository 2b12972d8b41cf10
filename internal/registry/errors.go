package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDiscovery is returned when a registry model has no discovery mapping entry
	ErrMissingDiscovery = errors.New("no discovery mapping entry")

	// ErrNoVariants is returned when a discovery mapping entry lists no variants
	ErrNoVariants = errors.New("discovery mapping entry has no variants")
)

// DataIntegrityError reports a model whose discovery configuration cannot be resolved
type DataIntegrityError struct {
	Model string
	Err   error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: model %q: %v", e.Model, e.Err)
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
