package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every pipeline failure wraps exactly one of these; all of them abort the run.
var (
	ErrMalformedInput  = errors.New("malformed input")
	ErrAlignment       = errors.New("alignment error")
	ErrArithmetic      = errors.New("arithmetic error")
	ErrPrecondition    = errors.New("precondition violated")
	ErrDataUnavailable = errors.New("data unavailable")
)

// PipelineError carries the series and position a failure was detected at.
type PipelineError struct {
	Kind   error
	Series SeriesName
	Index  int // -1 when not tied to a position
	Msg    string
	Err    error
}

func (e *PipelineError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Series != "" {
		b.WriteString(": series=")
		b.WriteString(string(e.Series))
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " index=%d", e.Index)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is lets errors.Is match on the kind sentinel.
func (e *PipelineError) Is(target error) bool {
	return e.Kind == target
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewError builds a PipelineError with a formatted message.
func NewError(kind error, series SeriesName, index int, format string, a ...interface{}) *PipelineError {
	return &PipelineError{Kind: kind, Series: series, Index: index, Msg: fmt.Sprintf(format, a...)}
}

// WithCause attaches an underlying error.
func (e *PipelineError) WithCause(err error) *PipelineError {
	e.Err = err
	return e
}

// KindOf returns the sentinel wrapped by err, or nil for foreign errors.
func KindOf(err error) error {
	for _, k := range []error{ErrMalformedInput, ErrAlignment, ErrArithmetic, ErrPrecondition, ErrDataUnavailable} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindLabel is a short metric/log label for err.
func KindLabel(err error) string {
	switch KindOf(err) {
	case ErrMalformedInput:
		return "malformed_input"
	case ErrAlignment:
		return "alignment"
	case ErrArithmetic:
		return "arithmetic"
	case ErrPrecondition:
		return "precondition"
	case ErrDataUnavailable:
		return "data_unavailable"
	default:
		return "other"
	}
}
