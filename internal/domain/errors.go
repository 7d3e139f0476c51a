package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by aggregate operations that are mathematically
// undefined on zero elements. Callers that pre-guard with an empty check
// never see it.
var ErrEmptyInput = errors.New("empty input")

// SchemaError reports a required column missing from the raw input table.
// It is the only error class that aborts the pipeline; per-row parse
// failures are recovered locally by dropping the row.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: required column %q is missing", e.Column)
}

// IsSchemaError reports whether err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
