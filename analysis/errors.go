package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// Caller errors. An empty result is never reported through these; it is a
// normal outcome signalled on the returned table itself.
var (
	// ErrInvalidParams indicates that the caller passed parameters the engine
	// cannot act on.
	ErrInvalidParams = errors.New("invalid analysis parameters")

	// ErrUnknownLabel indicates a focal label that no game in the catalog carries.
	ErrUnknownLabel = errors.New("unknown label")
)

// ParamError describes a rejected parameter. It always matches
// ErrInvalidParams under errors.Is, and also matches Err when set.
type ParamError struct {
	Field  string
	Reason string
	// Suggestions holds close label matches when Err is ErrUnknownLabel.
	Suggestions []string
	Err         error
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Unwrap exposes both the generic and the specific cause.
func (e *ParamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidParams}
	}
	return []error{ErrInvalidParams, e.Err}
}

func paramErr(field, format string, args ...any) *ParamError {
	return &ParamError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
