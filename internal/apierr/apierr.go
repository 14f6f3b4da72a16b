// Package apierr defines the closed set of error kinds the client deals in,
// so callers can branch on kind instead of matching message text.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindNetwork covers transport failures: the request never produced an
	// HTTP response.
	KindNetwork Kind = iota
	// KindHTTP covers non-2xx responses, carrying the status and the server
	// message when the body had one.
	KindHTTP
	// KindValidation covers client-side field checks that block submission
	// before any network call.
	KindValidation
)

type Error struct {
	Kind    Kind
	Status  int    // set for KindHTTP
	Field   string // set for KindValidation
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Network(err error, message string) *Error {
	return &Error{Kind: KindNetwork, Message: message, cause: err}
}

func HTTP(status int, message string) *Error {
	return &Error{Kind: KindHTTP, Status: status, Message: message}
}

func Validation(field, reason string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf("%s %s", field, reason)}
}

// KindOf reports the kind of err when it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is an HTTP 404 failure.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindHTTP && e.Status == http.StatusNotFound
}
