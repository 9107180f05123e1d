package fixture

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines fixture error kinds.
type ErrorKind string

const (
	KindParse      ErrorKind = "parse"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindIO         ErrorKind = "io"
	KindCanceled   ErrorKind = "canceled"
	KindInternal   ErrorKind = "internal"
	KindNotImpl    ErrorKind = "not_implemented"
)

// FixtureError wraps errors with a kind.
type FixtureError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *FixtureError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *FixtureError) Unwrap() error {
	return e.Err
}

// NewError creates a new fixture error.
func NewError(kind ErrorKind, msg string, err error) *FixtureError {
	return &FixtureError{Kind: kind, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var fixErr *FixtureError
	if errors.As(err, &fixErr) {
		kind = fixErr.Kind
		if fixErr.Msg != "" {
			msg = fixErr.Msg
		}
	}

	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}

	switch kind {
	case KindParse:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("parse")
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
	case KindIO:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("io")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	case KindNotImpl:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("not_implemented")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its fixture error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var fixErr *FixtureError
	if errors.As(err, &fixErr) {
		return fixErr.Kind
	}

	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}
