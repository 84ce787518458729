package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidItem marks items that violate the placement contract
	// (non-positive duration or negative start).
	ErrInvalidItem = errors.New("invalid timeline item")
	// ErrInvalidKind marks append requests for an unrecognized item variant.
	ErrInvalidKind = errors.New("unknown item kind")
)

// ItemError wraps validation failures raised at the placement entry point.
type ItemError struct {
	Kind error
	Msg  string
}

func (e *ItemError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ItemError) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &ItemError{Kind: ErrInvalidItem, Msg: fmt.Sprintf(format, args...)}
}

func badKindf(format string, args ...any) error {
	return &ItemError{Kind: ErrInvalidKind, Msg: fmt.Sprintf(format, args...)}
}
