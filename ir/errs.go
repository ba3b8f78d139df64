package ir

import "errors"

var (
	// ErrType reports a value used where its kind does not apply, such as
	// ordering two incompatible kinds or indexing an object with an integer.
	ErrType = errors.New("type error")

	// ErrValue reports a well-typed but invalid value, such as an unknown
	// patch operation or an out-of-range index.
	ErrValue = errors.New("value error")
)
