package pos

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error. Every failure the engine surfaces is
// recoverable: the cart is never corrupted and the caller may retry or
// cancel.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindInsufficientFunds
	KindConflict
	KindStockUnavailable
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindConflict:
		return "conflict"
	case KindStockUnavailable:
		return "stock_unavailable"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the structured error returned by engine operations.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

func errValidation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func errInsufficientFunds(format string, args ...interface{}) error {
	return &Error{Kind: KindInsufficientFunds, Msg: fmt.Sprintf(format, args...)}
}

func errConflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func errStockUnavailable(format string, args ...interface{}) error {
	return &Error{Kind: KindStockUnavailable, Msg: fmt.Sprintf(format, args...)}
}

// WrapNetwork marks a failed repository call. The zero-value message is
// kept short; handlers map this to a retryable upstream failure.
func WrapNetwork(msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindNetwork, Msg: msg, Err: err}
}
