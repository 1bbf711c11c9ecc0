package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is matching against the typed errors below.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrMissingArgument     = errors.New("missing argument")
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// InvalidArgumentError reports a value outside its allowed set.
type InvalidArgumentError struct {
	Param   string
	Value   string
	Allowed []string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("unrecognized %s %q (allowed: %s)", e.Param, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// MissingArgumentError reports a conditionally required parameter that was
// not supplied.
type MissingArgumentError struct {
	Param     string
	Condition string
}

func (e *MissingArgumentError) Error() string {
	if e.Condition == "" {
		return fmt.Sprintf("%s must be specified", e.Param)
	}
	return fmt.Sprintf("%s must be specified %s", e.Param, e.Condition)
}

func (e *MissingArgumentError) Is(target error) bool { return target == ErrMissingArgument }

// ResourceUnavailableError reports a bundled data file that is missing,
// unreadable, or malformed.
type ResourceUnavailableError struct {
	Path string
	Err  error
}

func (e *ResourceUnavailableError) Error() string {
	if e == nil {
		return "resource unavailable"
	}
	return fmt.Sprintf("resource unavailable: %s: %v", e.Path, e.Err)
}

func (e *ResourceUnavailableError) Unwrap() error { return e.Err }

func (e *ResourceUnavailableError) Is(target error) bool { return target == ErrResourceUnavailable }
