// Package simerr defines the typed failures returned by the GM engine.
package simerr

import (
	"context"
	"errors"
	"fmt"
)

// Code classifies an engine failure.
type Code string

const (
	CodeValidation          Code = "validation"
	CodeUnknownSport        Code = "unknown_sport"
	CodeTeamNotFound        Code = "team_not_found"
	CodeTradeNotFound       Code = "trade_not_found"
	CodeProviderUnavailable Code = "provider_unavailable"
	CodeTimeout             Code = "simulation_timeout"
	CodeCancelled           Code = "cancelled"
	CodeInvariant           Code = "invariant_violation"
)

// Error is the engine error type. Two errors match under errors.Is when
// their codes are equal.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation          = &Error{Code: CodeValidation, Message: "invalid request"}
	ErrUnknownSport        = &Error{Code: CodeUnknownSport, Message: "unknown sport"}
	ErrTeamNotFound        = &Error{Code: CodeTeamNotFound, Message: "team not found"}
	ErrTradeNotFound       = &Error{Code: CodeTradeNotFound, Message: "trade not found"}
	ErrProviderUnavailable = &Error{Code: CodeProviderUnavailable, Message: "team strength provider unavailable"}
	ErrTimeout             = &Error{Code: CodeTimeout, Message: "simulation timed out"}
	ErrCancelled           = &Error{Code: CodeCancelled, Message: "simulation cancelled"}
	ErrInvariant           = &Error{Code: CodeInvariant, Message: "invariant violation"}
)

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

func Invariantf(format string, args ...any) *Error {
	return Newf(CodeInvariant, format, args...)
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FromContext converts a context error into the matching engine error.
// Any other error is returned unchanged.
func FromContext(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return Wrap(CodeCancelled, "simulation cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(CodeTimeout, "simulation exceeded its deadline", err)
	default:
		return err
	}
}
