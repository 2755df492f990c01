package signals

import (
	"reflect"
)

// TypedEvent is an Event with a fixed parameter-type contract: connections
// must declare exactly as many parameters as there are declared types, and
// emitted arguments must match those types exactly, position by position.
// The comparison is type identity, not assignability, so signature drift is
// caught at the subscription boundary instead of at the first bad call.
type TypedEvent struct {
	Event
	paramTypes []reflect.Type
}

// NewTypedEvent declares the parameter-type contract once; it is immutable
// afterwards. Options apply to the embedded Event.
func NewTypedEvent(paramTypes []reflect.Type, opts ...Option) *TypedEvent {
	te := &TypedEvent{
		paramTypes: make([]reflect.Type, len(paramTypes)),
	}
	copy(te.paramTypes, paramTypes)

	te.Event.init(opts)
	te.Event.connectCheck = te.checkConnect
	te.Event.emitCheck = te.checkEmit
	te.Event.register()
	return te
}

// ParamTypes returns a copy of the declared contract.
func (te *TypedEvent) ParamTypes() []reflect.Type {
	out := make([]reflect.Type, len(te.paramTypes))
	copy(out, te.paramTypes)
	return out
}

// checkConnect runs before every connect, with the receiver parameter of
// bound methods already excluded from count. Variadic callbacks never satisfy
// a typed contract: their declared count is open-ended.
func (te *TypedEvent) checkConnect(count int, variadic bool) error {
	if variadic || count != len(te.paramTypes) {
		return ArityError{Expected: len(te.paramTypes), Got: count}
	}
	return nil
}

// checkEmit runs before every emit, ahead of any manager involvement. A
// violation is always fatal, never downgraded to a warning.
func (te *TypedEvent) checkEmit(args []any) error {
	if len(args) != len(te.paramTypes) {
		return te.typeError(args)
	}
	for i, arg := range args {
		if reflect.TypeOf(arg) != te.paramTypes[i] {
			return te.typeError(args)
		}
	}
	return nil
}

func (te *TypedEvent) typeError(args []any) error {
	got := make([]reflect.Type, len(args))
	for i, arg := range args {
		got[i] = reflect.TypeOf(arg)
	}
	return TypeError{Expected: te.ParamTypes(), Got: got}
}
