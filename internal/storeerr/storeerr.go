// Package storeerr classifies failures coming back from the store into a
// typed taxonomy: transport-unreachable versus rejected-operation. Handlers
// branch on the type instead of matching substrings of provider messages.
package storeerr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	// KindRejected covers constraint violations, missing tables, bad
	// references: the store answered and said no.
	KindRejected Kind = iota

	// KindUnreachable covers dial failures, timeouts, dropped connections:
	// the store never answered.
	KindUnreachable
)

type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string { return e.cause.Error() }
func (e *Error) Unwrap() error { return e.cause }

// Classify wraps a store failure with its kind. Nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return err
	}

	if isUnreachable(err) {
		return &Error{Kind: KindUnreachable, cause: err}
	}
	return &Error{Kind: KindRejected, cause: err}
}

func isUnreachable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 = connection exceptions, 57P0x = server shutdown.
		code := pgErr.Code
		return len(code) >= 2 && (code[:2] == "08" || code == "57P01" || code == "57P02" || code == "57P03")
	}
	return false
}

func IsUnreachable(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindUnreachable
}

// UnreachableHint is shown whenever the store cannot be reached at all.
const UnreachableHint = "The clinic server is currently unreachable. Check if the project is paused."

// Message returns the operator-facing text for a classified error: the fixed
// hint for unreachable stores, the raw store message otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if IsUnreachable(err) {
		return UnreachableHint
	}
	return err.Error()
}
