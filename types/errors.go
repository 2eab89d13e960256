package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError reports malformed input: wrong length, out-of-range value,
// invalid point encoding, unknown chain or version. It names the offending
// field and is recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// WrapValidation wraps a lower-level decoding error as a ValidationError,
// keeping the cause in the reason text.
func WrapValidation(field string, cause error) error {
	return &ValidationError{Field: field, Reason: cause.Error()}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// CryptoError reports a well-formed operation that cannot succeed: an AEAD
// authentication failure, generator-construction exhaustion, RNG failure.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error { return e.Err }

// NewCryptoError wraps cause as a CryptoError for operation op.
func NewCryptoError(op string, cause error) error {
	return &CryptoError{Op: op, Err: cause}
}

// IsCryptoError reports whether err is (or wraps) a CryptoError.
func IsCryptoError(err error) bool {
	var c *CryptoError
	return errors.As(err, &c)
}
