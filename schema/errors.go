package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema matches every SchemaError via errors.Is.
var ErrSchema = errors.New("schema error")

// SchemaError reports required columns that could not be resolved from the
// raw header row. It aborts the whole load; no partial dataset is returned.
type SchemaError struct {
	Missing []string // canonical headers that matched nothing
	Headers []string // trimmed raw headers that were searched
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: missing required column(s) %s (found %s)",
		strings.Join(quote(e.Missing), ", "), strings.Join(quote(e.Headers), ", "))
}

// Unwrap lets errors.Is(err, ErrSchema) succeed.
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

func quote(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
