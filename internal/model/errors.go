package model

// Code is a stable classification for a failure. Every error crossing a
// component boundary carries exactly one code.
type Code int

const (
	CodeAccountAlreadyExists Code = iota + 1
	CodeAccountNotFound
	CodeInvalidCredential
	CodeTokenInvalid
	CodeStorageFailure
	CodeHashingFailure
	CodeConfigInvalid
)

// Kind sentinels for errors.Is matching. Two classified errors match when
// their codes are equal, regardless of message or wrapped cause.
var (
	ErrAccountAlreadyExists = &Error{Code: CodeAccountAlreadyExists, Message: "account already exists"}
	ErrAccountNotFound      = &Error{Code: CodeAccountNotFound, Message: "account not found"}
	ErrInvalidCredential    = &Error{Code: CodeInvalidCredential, Message: "invalid credential"}
	ErrTokenInvalid         = &Error{Code: CodeTokenInvalid, Message: "invalid token"}
	ErrStorageFailure       = &Error{Code: CodeStorageFailure, Message: "storage failure"}
	ErrHashingFailure       = &Error{Code: CodeHashingFailure, Message: "hashing failure"}
	ErrConfigInvalid        = &Error{Code: CodeConfigInvalid, Message: "invalid configuration"}
)

// Error is a classified failure with a human-readable message. The
// backend-specific cause is kept only for wrapping; callers see the message
// and the code, never raw backend text.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// NewError builds a classified error. cause may be nil.
func NewError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for logging and errors.Is chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the classification of err, or 0 when err carries none.
func CodeOf(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}
		err = u.Unwrap()
	}
	return 0
}
