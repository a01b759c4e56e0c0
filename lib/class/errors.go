package class

import "errors"

// Sentinel errors for type definition and construction.
var (
	ErrInvalidArgument    = errors.New("class: invalid argument")
	ErrUndefinedReference = errors.New("class: undefined reference")
	ErrReentrant          = errors.New("class: re-entrant singleton construction")
)
