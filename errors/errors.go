// Package errors holds the sentinel errors shared by the sorter, the template
// filter and the CLI, plus a small accumulator for reporting several problems
// at once.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongType is returned when a loosely typed argument (template filter
	// arguments, option values) cannot be converted to the type it needs.
	ErrWrongType = errors.New("wrong type")

	// ErrUnknownOption is returned when an options map carries a key the
	// sorter does not recognize.
	ErrUnknownOption = errors.New("unknown option")

	// ErrUnsupportedCollection is returned when a value handed to the
	// template filter or the CLI is not something that can be iterated.
	ErrUnsupportedCollection = errors.New("unsupported collection")

	// ErrPanicRecovery marks an error that was produced from a recovered panic.
	ErrPanicRecovery = errors.New("recovered from panic")
)

// Collection accumulates errors. It is not safe for concurrent use.
type Collection struct {
	errors []error
}

// Add appends err to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Addf wraps sentinel with a formatted message and adds the result.
func (c *Collection) Addf(sentinel error, format string, args ...any) {
	c.Add(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError reports whether at least one error was added.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns nil for an empty collection, the error itself when there
// is exactly one, and an errors.Join of all of them otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}

// PanicError converts a value obtained from recover() into an error wrapping
// ErrPanicRecovery. A nil value yields a nil error.
func PanicError(recovered any) error {
	if recovered == nil {
		return nil
	}

	if err, ok := recovered.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanicRecovery, err)
	}

	return fmt.Errorf("%w: %v", ErrPanicRecovery, recovered)
}
