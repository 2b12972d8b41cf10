package discovery

import "fmt"

// MalformedOverrideError reports a discovery payload override value that
// cannot be rendered as a single payload entry
type MalformedOverrideError struct {
	Model string
	Key   string
	Kind  string
}

func (e *MalformedOverrideError) Error() string {
	return fmt.Sprintf("malformed discovery payload for %s: key %q holds a %s, expected a scalar or a list of scalars", e.Model, e.Key, e.Kind)
}
