package curve

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrPubKeyInvalidLen is returned when an encoded point has a length
	// other than the compressed or uncompressed SEC1 length of the curve.
	ErrPubKeyInvalidLen = ErrorKind("ErrPubKeyInvalidLen")

	// ErrPubKeyInvalidFormat is returned when an encoded point does not start
	// with a supported SEC1 format byte.
	ErrPubKeyInvalidFormat = ErrorKind("ErrPubKeyInvalidFormat")

	// ErrPubKeyXTooBig is returned when an encoded point has an x coordinate
	// that is greater than or equal to the field prime.
	ErrPubKeyXTooBig = ErrorKind("ErrPubKeyXTooBig")

	// ErrPubKeyYTooBig is returned when an encoded point has a y coordinate
	// that is greater than or equal to the field prime.
	ErrPubKeyYTooBig = ErrorKind("ErrPubKeyYTooBig")

	// ErrPubKeyNotOnCurve is returned when a decoded point does not satisfy
	// the curve equation.
	ErrPubKeyNotOnCurve = ErrorKind("ErrPubKeyNotOnCurve")

	// ErrNoSquareRoot is returned when x^3 + ax + b has no square root in the
	// field, so no point with the given x coordinate exists.
	ErrNoSquareRoot = ErrorKind("ErrNoSquareRoot")

	// ErrInvalidCurve is returned when curve parameters are rejected.
	ErrInvalidCurve = ErrorKind("ErrInvalidCurve")

	// ErrUnknownCurve is returned when looking up a curve by an unsupported
	// name.
	ErrUnknownCurve = ErrorKind("ErrUnknownCurve")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to curve parameters or point encoding.
// It has full support for errors.Is and errors.As, so the caller can
// ascertain the specific reason for the error by checking the underlying
// error.
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
