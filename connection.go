package signals

import (
	"reflect"
	"weak"
)

// ConnectFlags alter how a single connection is dispatched. Flags are fixed at
// connect time; changing the policy of a live connection requires disconnect
// plus reconnect.
type ConnectFlags uint8

const (
	// ConnectOneShot removes the connection after its first successful delivery.
	ConnectOneShot ConnectFlags = 1 << iota

	// ConnectDirect always dispatches synchronously within Emit, bypassing any
	// attached manager or queue.
	ConnectDirect
)

func (f ConnectFlags) Has(other ConnectFlags) bool {
	return f&other != 0
}

// Connection is one subscription: a non-owning reference to a callback plus
// behavior flags.
type Connection struct {
	ref   callbackRef
	flags ConnectFlags

	// fired marks a one-shot connection that already delivered, so that stale
	// queue snapshots cannot deliver it a second time.
	fired bool
}

// Flags returns the bitmask the connection was made with.
func (c *Connection) Flags() ConnectFlags { return c.flags }

// callbackRef is a non-owning handle to a callable. resolve yields a strong
// handle for the duration of one dispatch; a dead resolution is an implicit
// disconnect, pruned lazily by the next traversal.
type callbackRef interface {
	// resolve returns the func to invoke plus any bound arguments to prepend
	// to the emitted ones.
	resolve() (fn reflect.Value, prefix []reflect.Value, ok bool)

	// arity is the externally visible parameter count, excluding a receiver
	// parameter.
	arity() (count int, variadic bool)

	// matches reports whether this reference points at the given target.
	// owner narrows the match for bound references; nil matches any owner.
	matches(fnPtr uintptr, owner any) bool
}

// funcRef holds a free function. A plain func has no owner whose lifetime a
// subscription could extend, so the value is held directly.
type funcRef struct {
	fn reflect.Value
}

func (r funcRef) resolve() (reflect.Value, []reflect.Value, bool) {
	return r.fn, nil, true
}

func (r funcRef) arity() (int, bool) {
	t := r.fn.Type()
	if t.IsVariadic() {
		return t.NumIn() - 1, true
	}
	return t.NumIn(), false
}

func (r funcRef) matches(fnPtr uintptr, owner any) bool {
	return owner == nil && r.fn.Pointer() == fnPtr
}

// boundRef holds a method plus a weak pointer to its receiver. The event never
// keeps the receiver alive; once the receiver is collected the connection is
// logically absent.
type boundRef[T any] struct {
	owner weak.Pointer[T]
	fn    reflect.Value
}

func (r boundRef[T]) resolve() (reflect.Value, []reflect.Value, bool) {
	o := r.owner.Value()
	if o == nil {
		return reflect.Value{}, nil, false
	}
	return r.fn, []reflect.Value{reflect.ValueOf(o)}, true
}

func (r boundRef[T]) arity() (int, bool) {
	t := r.fn.Type()
	if t.IsVariadic() {
		return t.NumIn() - 2, true
	}
	return t.NumIn() - 1, false
}

func (r boundRef[T]) matches(fnPtr uintptr, owner any) bool {
	if r.fn.Pointer() != fnPtr {
		return false
	}
	if owner == nil {
		return true
	}
	o := r.owner.Value()
	return o != nil && any(o) == owner
}
