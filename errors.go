package oledgen

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error matches exactly one of these with errors.Is.
var (
	ErrConfiguration         = errors.New("invalid configuration")
	ErrNotFound              = errors.New("not found")
	ErrFormat                = errors.New("invalid format")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
)

// Error records a failure against a manifest field, such as
// "animations.idle.frames[2]", and optionally the file involved.
type Error struct {
	Kind  error
	Field string
	Path  string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("oledgen: ")
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func configErrorf(field, format string, args ...interface{}) error {
	return &Error{
		Kind:  ErrConfiguration,
		Field: field,
		Err:   fmt.Errorf(format, args...),
	}
}
