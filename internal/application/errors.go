package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a domain failure for the transport layer.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalidRequest
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Messages is the fixed code/message table of user errors.
var Messages = map[int]string{
	100: "A user with this e-mail already exists",
	101: "A user with this credential doesn't exist",
	102: "'new_password' value must be different than 'current_password' value",
	103: "'new_password' value must be equal to 'confirm_new_password' value",
	104: "The informed 'current_password' value doesn't match the current user password",
	105: "The informed password doesn't match this user password",
	106: "A user with this e-mail doesn't exist",
	107: "This user credentials aren't valid",
	108: "A user with this e-mail already exists",
}

// Error is a domain failure carrying a code from Messages.
type Error struct {
	Code    int
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("user error %d: %s", e.Code, e.Message)
}

func newError(code int, kind Kind) *Error {
	return &Error{Code: code, Message: Messages[code], Kind: kind}
}

var (
	ErrUserNotFound             = newError(101, KindNotFound)
	ErrPasswordUnchanged        = newError(102, KindInvalidRequest)
	ErrPasswordConfirmMismatch  = newError(103, KindInvalidRequest)
	ErrCurrentPasswordIncorrect = newError(104, KindInvalidRequest)
	ErrInvalidCredentials       = newError(107, KindUnauthorized)
	ErrEmailAlreadyExists       = newError(108, KindConflict)
)

// AsError extracts a domain *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ValidationError reports inputs rejected before any store access.
// Details maps a JSON field name to a human readable reason.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+e.Details[f])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
