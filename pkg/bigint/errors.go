package bigint

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrOverflow is returned when an input value does not fit in the fixed
	// width of the target type.
	ErrOverflow = ErrorKind("ErrOverflow")

	// ErrNegative is returned when converting a negative math/big value.
	ErrNegative = ErrorKind("ErrNegative")

	// ErrInvalidHex is returned when a hex string cannot be decoded.
	ErrInvalidHex = ErrorKind("ErrInvalidHex")

	// ErrZeroModulus is returned when a modular context is requested for a
	// zero modulus.
	ErrZeroModulus = ErrorKind("ErrZeroModulus")

	// ErrEvenModulus is returned when Montgomery arithmetic is requested for
	// an even modulus.
	ErrEvenModulus = ErrorKind("ErrEvenModulus")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to fixed-width integers.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
