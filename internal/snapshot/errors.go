package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSnapshot is returned when a document does not match its schema.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrUnknownKind is returned when the kind of a document cannot be
	// determined or is not supported.
	ErrUnknownKind = errors.New("unknown snapshot kind")
)

// SchemaError describes every schema violation of one document.
// It matches ErrInvalidSnapshot with errors.Is.
type SchemaError struct {
	// Source names the document, usually its file path.
	Source string

	// Kind is the schema the document was checked against.
	Kind Kind

	// Violations lists the individual problems.
	Violations []Violation
}

// Error implements error.
func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s does not match the %s schema", ErrInvalidSnapshot, e.Source, e.Kind)
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "\n  - %s: %s", v.Field, v.Message)
	}
	return b.String()
}

// Is reports whether target is ErrInvalidSnapshot.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSnapshot
}
