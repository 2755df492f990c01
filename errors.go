package signals

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidCallback is returned when a connect target is not callable.
	ErrInvalidCallback = errors.New("tried to connect non-callable to event")

	// ErrArityMismatch is returned when a callback's parameter count does not
	// match what the contract or the emitted arguments require.
	ErrArityMismatch = errors.New("callback parameter count mismatch")

	// ErrTypeMismatch is returned when emitted argument types do not match a
	// typed event's declared parameter types.
	ErrTypeMismatch = errors.New("emitted argument types mismatch")
)

// ArityError carries the expected versus actual parameter counts of a failed
// dispatch or connect. It matches ErrArityMismatch under errors.Is.
type ArityError struct {
	Expected int
	Got      int
	Args     []any
}

func (e ArityError) Error() string {
	if e.Args == nil {
		return fmt.Sprintf("expected %d parameters, target declares %d", e.Expected, e.Got)
	}
	return fmt.Sprintf("callback declares %d parameters, emit carried %d: %v", e.Expected, e.Got, e.Args)
}

func (e ArityError) Unwrap() error { return ErrArityMismatch }

// TypeError carries the declared versus emitted argument types of a typed
// event emission. It matches ErrTypeMismatch under errors.Is.
type TypeError struct {
	Expected []reflect.Type
	Got      []reflect.Type
}

func (e TypeError) Error() string {
	return fmt.Sprintf("emit expected argument types %v, but got %v", e.Expected, e.Got)
}

func (e TypeError) Unwrap() error { return ErrTypeMismatch }
