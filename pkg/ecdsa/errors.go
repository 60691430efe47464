package ecdsa

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// Error classes.  Errors returned by the verification and parsing functions
// additionally match one of these with errors.Is, which separates input that
// is malformed from input that is well formed but does not verify.
const (
	// ErrInvalidFormat is the class of malformed signatures and keys.  They
	// can be rejected without performing any curve arithmetic.
	ErrInvalidFormat = ErrorKind("ErrInvalidFormat")

	// ErrVerificationFailed is the class of well-formed signatures that are
	// not valid for the given key and digest.
	ErrVerificationFailed = ErrorKind("ErrVerificationFailed")
)

// These constants are used to identify a specific Error.
const (
	// ErrSigRIsZero is returned when a signature has R set to the value zero.
	ErrSigRIsZero = ErrorKind("ErrSigRIsZero")

	// ErrSigRTooBig is returned when a signature has R with a value that is
	// greater than or equal to the group order.
	ErrSigRTooBig = ErrorKind("ErrSigRTooBig")

	// ErrSigSIsZero is returned when a signature has S set to the value zero.
	ErrSigSIsZero = ErrorKind("ErrSigSIsZero")

	// ErrSigSTooBig is returned when a signature has S with a value that is
	// greater than or equal to the group order.
	ErrSigSTooBig = ErrorKind("ErrSigSTooBig")

	// ErrSigInvalidDER is returned when a signature that should be DER
	// encoded cannot be parsed.
	ErrSigInvalidDER = ErrorKind("ErrSigInvalidDER")

	// ErrSigInvalidLen is returned when a signature that should be a compact
	// signature is not the required length.
	ErrSigInvalidLen = ErrorKind("ErrSigInvalidLen")

	// ErrPubKeyInvalid is returned when a public key is missing, is the point
	// at infinity or does not lie on its curve.
	ErrPubKeyInvalid = ErrorKind("ErrPubKeyInvalid")

	// ErrSigNoInverse is returned when S has no inverse modulo the group
	// order.
	ErrSigNoInverse = ErrorKind("ErrSigNoInverse")

	// ErrSigPointAtInfinity is returned when u1*G + u2*Q is the point at
	// infinity.
	ErrSigPointAtInfinity = ErrorKind("ErrSigPointAtInfinity")

	// ErrSigMismatch is returned when the x coordinate of the computed point
	// does not equal R.
	ErrSigMismatch = ErrorKind("ErrSigMismatch")
)

// Errors from the signing and key handling helpers.  They belong to no class.
const (
	// ErrInvalidPrivateKey is returned when a private scalar is zero or not
	// less than the group order.
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrInvalidNonce is returned when a signing nonce is out of range or
	// produces a zero R or S.
	ErrInvalidNonce = ErrorKind("ErrInvalidNonce")

	// ErrUnsupportedCurve is returned when an operation is not available on
	// the curve of the key.
	ErrUnsupportedCurve = ErrorKind("ErrUnsupportedCurve")

	// ErrSigInvalidRecoveryCode is returned when a public key recovery code
	// is not in [0, 3].
	ErrSigInvalidRecoveryCode = ErrorKind("ErrSigInvalidRecoveryCode")

	// ErrSigOverflowsPrime is returned when the recovery code has the
	// overflow bit set but R + N is not less than the field prime.
	ErrSigOverflowsPrime = ErrorKind("ErrSigOverflowsPrime")

	// ErrPointNotOnCurve is returned when public key recovery produces a
	// point that is not on the curve.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

func (e ErrorKind) class() ErrorKind {
	switch e {
	case ErrSigRIsZero, ErrSigRTooBig, ErrSigSIsZero, ErrSigSTooBig,
		ErrSigInvalidDER, ErrSigInvalidLen, ErrPubKeyInvalid:
		return ErrInvalidFormat
	case ErrSigNoInverse, ErrSigPointAtInfinity, ErrSigMismatch:
		return ErrVerificationFailed
	}
	return ""
}

// Error identifies an error related to ECDSA signatures.  It has full support
// for errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error, or its class with
// ErrInvalidFormat and ErrVerificationFailed.
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

// Is reports whether target is the class of the wrapped kind.
func (e Error) Is(target error) bool {
	kind, ok := e.Err.(ErrorKind)
	if !ok {
		return false
	}
	class := kind.class()
	return class != "" && target == error(class)
}

// signatureError creates an Error given a set of arguments.
func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
