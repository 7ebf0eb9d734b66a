package history

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputFile is returned for unreadable or malformed exports and bad date arguments.
	ErrInvalidInputFile = errors.New("not a valid location history file")

	// ErrInvalidDate is returned when a date argument cannot be converted.
	// It also matches ErrInvalidInputFile with errors.Is.
	ErrInvalidDate error = invalidDateError{}

	// ErrEmptyResultSet is returned when no records are left to work on.
	ErrEmptyResultSet = errors.New("no location records in the selected range")
)

type invalidDateError struct{}

func (invalidDateError) Error() string { return "invalid date" }

func (invalidDateError) Is(target error) bool { return target == ErrInvalidInputFile }

// ParseError describes why an export could not be loaded.
// It matches ErrInvalidInputFile with errors.Is.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := ErrInvalidInputFile.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInputFile}
	}
	return []error{ErrInvalidInputFile, e.Err}
}

func parseError(reason string, err error) *ParseError {
	return &ParseError{Reason: reason, Err: err}
}
