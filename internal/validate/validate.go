// Package validate decodes untrusted JSON payloads into typed commands and
// checks their field constraints before anything else touches them.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Validator is implemented by command types that know their own field rules.
type Validator interface {
	// Validate returns nil or a *ValidationError listing every violated rule.
	Validate() error
}

// ParseError means the payload could not be decoded into the expected shape.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("json parse error: [%v]", e.err)
}

func (e *ParseError) Unwrap() error { return e.err }

// ValidationError means the payload decoded but violates field constraints.
// Violations holds every violated rule, not just the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: [%s]", strings.Join(e.Violations, ", "))
}

// Decode unmarshals data into dst and validates it. The two failure modes are
// distinguishable by the caller: a *ParseError for malformed input, a
// *ValidationError for constraint violations. Decode performs no I/O.
func Decode(data []byte, dst Validator) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return &ParseError{err: err}
	}
	return dst.Validate()
}

// IsParseError reports whether err is a payload-shape failure.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsValidationError reports whether err is a field-constraint failure.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
