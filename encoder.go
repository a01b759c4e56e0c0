package mvcpack

import (
	"fmt"

	"github.com/pthm/mvcpack/lib/class"
	"github.com/pthm/mvcpack/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// Snapshotter is implemented by models whose state can be captured as a
// data bag. *class.Instance implements it.
type Snapshotter = encoding.Snapshotter

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeModel captures the model's data in a signed (or, when sensitive,
// encrypted) string.
func EncodeModel(enc *Encoder, model any, sensitive bool) (string, error) {
	s, ok := model.(Snapshotter)
	if !ok || isNil(model) {
		return "", fmt.Errorf("%w: model %T has no snapshot", ErrInvalidModel, model)
	}
	return enc.EncodeSnapshot(s, sensitive)
}

// DecodeModel restores a model of type t from a string made by EncodeModel.
// The decoded data is merged over t's defaults and t's constructors run with
// args, as for (*class.Type).NewWithData.
func DecodeModel(enc *Encoder, t *class.Type, encoded string, sensitive bool, args ...any) (*class.Instance, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil model type", ErrInvalidArgument)
	}
	data, err := enc.Decode(encoded, sensitive)
	if err != nil {
		return nil, WrapDecodeError(err)
	}
	return t.NewWithData(data, args...)
}
