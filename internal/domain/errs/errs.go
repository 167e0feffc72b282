package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The HTTP boundary maps each kind to a
// status code; domain code never touches net/http.
type Kind int

const (
	Unexpected Kind = iota
	Validation
	Duplicate
	NotFound
	Forbidden
	Unauthenticated
	Conflict
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf walks the wrap chain and returns the outermost classified kind,
// or Unexpected when the error carries no classification.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return Unexpected
}

// Message returns the user-facing message for classified errors. Unexpected
// errors get a generic message so internal detail never leaks to callers.
func Message(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Kind != Unexpected {
		return domainErr.Msg
	}
	return "internal server error"
}
