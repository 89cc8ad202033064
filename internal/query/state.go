// Package query drives one screen's request lifecycle and publishes it as
// an observable State.
package query

import (
	"context"
	"errors"

	"github.com/bft-labs/distclient/internal/domain"
)

// Status is the view-state of a query.
type Status int

const (
	// StatusIdle means no query has run since creation or Reset.
	StatusIdle Status = iota
	// StatusLoading means a query is in flight.
	StatusLoading
	// StatusSuccess means the last query returned data.
	StatusSuccess
	// StatusEmpty means the last query succeeded with no data.
	StatusEmpty
	// StatusError means the last query failed.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is one published view-state. Data is set for Success and Empty,
// Err for Error. Seq is the invocation that produced it.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
	Seq    uint64
}

// Terminal reports whether the state ends an invocation.
func (s State[T]) Terminal() bool {
	return s.Status == StatusSuccess || s.Status == StatusEmpty || s.Status == StatusError
}

// Message is the user-facing text of an Error state.
func (s State[T]) Message() string {
	if s.Err == nil {
		return ""
	}
	return ErrorMessage(s.Err)
}

// ReloginMessage is shown for every failure that a new login resolves.
const ReloginMessage = "please log in again"

// ErrorMessage maps an error from any layer to user-facing text.
func ErrorMessage(err error) string {
	var (
		verr *domain.ValidationError
		aerr *domain.AuthError
		herr *domain.HTTPError
		terr *domain.TransportError
		serr *domain.StorageError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrTokenMissing), errors.As(err, &aerr), errors.As(err, &serr):
		return ReloginMessage
	case errors.As(err, &herr):
		if herr.Unauthorized() {
			return ReloginMessage
		}
		return herr.Error()
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "network error: request timed out"
	case errors.As(err, &terr):
		return "network error: " + terr.Err.Error()
	}
	return err.Error()
}
