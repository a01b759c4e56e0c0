package mvcpack

import (
	"errors"

	"github.com/pthm/mvcpack/lib/class"
	"github.com/pthm/mvcpack/lib/encoding"
)

// Sentinel errors for component operations.
var (
	ErrInvalidArgument    = errors.New("mvcpack: invalid argument")
	ErrInvalidModel       = errors.New("mvcpack: invalid model")
	ErrInvalidType        = errors.New("mvcpack: invalid type")
	ErrInvalidView        = errors.New("mvcpack: invalid view")
	ErrUndefinedReference = errors.New("mvcpack: undefined reference")
	ErrInvalidFormat      = errors.New("mvcpack: invalid snapshot format")
	ErrSignatureInvalid   = errors.New("mvcpack: snapshot signature verification failed")
	ErrDecryptFailed      = errors.New("mvcpack: snapshot decryption failed")
)

// IsInvalidArgument checks if err is an argument error, including the ones
// raised by the class builder.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, class.ErrInvalidArgument)
}

// IsInvalidModel checks if err is a model error.
func IsInvalidModel(err error) bool {
	return errors.Is(err, ErrInvalidModel)
}

// IsInvalidType checks if err reports a component of the wrong family.
func IsInvalidType(err error) bool {
	return errors.Is(err, ErrInvalidType) || errors.Is(err, ErrInvalidView)
}

// IsUndefinedReference checks if err is a failed name lookup.
func IsUndefinedReference(err error) bool {
	return errors.Is(err, ErrUndefinedReference) || errors.Is(err, class.ErrUndefinedReference)
}

// IsDecodeError checks if err is a snapshot format, signature or decryption
// error.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrSignatureInvalid) || errors.Is(err, ErrDecryptFailed)
}

// WrapDecodeError maps encoding package errors to mvcpack sentinel errors.
func WrapDecodeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}
