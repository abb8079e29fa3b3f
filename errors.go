package boxwin

import (
	"errors"
	"fmt"

	"github.com/dshills/boxwin/box"
)

// Session errors. The registry errors are re-exported so callers need only
// this package for errors.Is checks.
var (
	// ErrNoViewport indicates a text operation with no box selected.
	ErrNoViewport = errors.New("no box selected")

	// ErrInvalidSnapshot indicates a malformed LoadSlots document.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	ErrInvalidHandle    = box.ErrInvalidHandle
	ErrCapacityExceeded = box.ErrCapacityExceeded
	ErrGeometryTooSmall = box.ErrGeometryTooSmall
)

// OpError records the session operation that failed and what it acted on.
type OpError struct {
	Op     string // Operation name (e.g., "draw", "select", "save")
	Target string // Box or slot acted on, empty when none
	Err    error  // Underlying error
}

func opError(op, target string, err error) *OpError {
	return &OpError{Op: op, Target: target, Err: err}
}

func boxTarget(h box.Handle) string {
	return fmt.Sprintf("box %d", h)
}

func slotTarget(i int) string {
	return fmt.Sprintf("slot %d", i)
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	msg := "boxwin: " + e.Op
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the wrapper itself or anything it wraps.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OpError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
