package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the public API. Check with errors.Is.
var (
	// ErrTokenMissing is returned when an authenticated operation is
	// attempted without a stored token.
	ErrTokenMissing = errors.New("distclient: no stored token")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("distclient: invalid configuration")

	// ErrClosed is returned by a client after Close.
	ErrClosed = errors.New("distclient: client closed")
)

// ValidationError reports a rejected query parameter. It is raised before
// any network request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid query: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthReason classifies an AuthError.
type AuthReason int

const (
	// InvalidCredentials means the login endpoint rejected the username or password.
	InvalidCredentials AuthReason = iota
	// AccountDisabled means the account exists but has been deactivated.
	AccountDisabled
	// TokenMissing means no token was stored when one was required.
	TokenMissing
	// TokenExpired means the stored token's exp claim is in the past.
	TokenExpired
	// TokenRejected means the server refused the stored token.
	TokenRejected
)

func (r AuthReason) String() string {
	switch r {
	case InvalidCredentials:
		return "invalid credentials"
	case AccountDisabled:
		return "account disabled"
	case TokenMissing:
		return "token missing"
	case TokenExpired:
		return "token expired"
	case TokenRejected:
		return "token rejected"
	default:
		return "unknown"
	}
}

// AuthError is an authentication failure.
type AuthError struct {
	Reason AuthReason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason.String()
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches ErrTokenMissing for the TokenMissing reason, and any AuthError
// with the same reason.
func (e *AuthError) Is(target error) bool {
	if target == ErrTokenMissing {
		return e.Reason == TokenMissing
	}
	t, ok := target.(*AuthError)
	return ok && t.Reason == e.Reason
}

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	StatusCode int
	// Body is the raw response body
	Body string
	// Detail is the server's "detail" message, if it sent one
	Detail string
}

func (e *HTTPError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	if msg == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, msg)
}

// Unauthorized reports whether the server refused the credentials.
func (e *HTTPError) Unauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// TransportError is a network failure or an undecodable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StorageError is a failure of the session backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("session storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
