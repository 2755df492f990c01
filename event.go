package signals

import (
	"reflect"
	"weak"

	"github.com/pkg/errors"
)

// Option configures an Event at construction time.
type Option func(*Event)

// WithManager attaches a dispatch manager. The event registers itself with the
// manager at construction and deregisters on Close.
func WithManager(m EventManager) Option {
	return func(e *Event) {
		e.manager = m
	}
}

// WithLogger installs the sink for dispatch warnings.
func WithLogger(l Logger) Option {
	return func(e *Event) {
		e.logger = l
	}
}

// WithErrorCatching toggles whether dispatch-time arity mismatches are
// downgraded to logged warnings (true, the default) or surfaced as errors.
func WithErrorCatching(enabled bool) Option {
	return func(e *Event) {
		e.catchErrors = enabled
	}
}

// Event holds an ordered list of connections and delivers argument tuples to
// them on Emit. Connections fire in connect order. An Event is a
// single-goroutine object: callbacks may re-enter Connect, Erase or Emit on
// the same event, but use from several goroutines needs external
// synchronization.
type Event struct {
	receivers   []*Connection
	manager     EventManager
	logger      Logger
	catchErrors bool

	// contract hooks, installed by TypedEvent.
	connectCheck func(count int, variadic bool) error
	emitCheck    func(args []any) error
}

// NewEvent creates an event and, when a manager is attached, registers the
// event with it.
func NewEvent(opts ...Option) *Event {
	e := &Event{}
	e.init(opts)
	e.register()
	return e
}

func (e *Event) init(opts []Option) {
	e.catchErrors = true
	for _, opt := range opts {
		opt(e)
	}
}

func (e *Event) register() {
	if e.manager != nil {
		e.manager.Setup(e)
	}
}

// Connect subscribes callback, any func value, to this event. There is no
// de-duplication: connecting the same callback twice yields two independent
// deliveries.
func (e *Event) Connect(callback any, flags ...ConnectFlags) error {
	fn := reflect.ValueOf(callback)
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return errors.Wrapf(ErrInvalidCallback, "got %T", callback)
	}
	return e.connect(funcRef{fn: fn}, mergeFlags(flags))
}

// ConnectMethod subscribes a method bound to owner without keeping owner
// alive: the event holds only a weak pointer to it, and a collected owner
// counts as an implicit disconnect, pruned by the next traversal. method must
// be a func whose first parameter accepts *T, typically a method expression
// such as (*T).Handle. The receiver parameter does not count towards arity.
func ConnectMethod[T any](e *Event, owner *T, method any, flags ...ConnectFlags) error {
	if owner == nil {
		return errors.Wrap(ErrInvalidCallback, "nil owner")
	}
	fn, err := boundFunc[T](method)
	if err != nil {
		return err
	}
	return e.connect(boundRef[T]{owner: weak.Make(owner), fn: fn}, mergeFlags(flags))
}

func boundFunc[T any](method any) (reflect.Value, error) {
	fn := reflect.ValueOf(method)
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return reflect.Value{}, errors.Wrapf(ErrInvalidCallback, "got %T", method)
	}
	t := fn.Type()
	if t.NumIn() == 0 || !reflect.TypeFor[*T]().AssignableTo(t.In(0)) {
		return reflect.Value{}, errors.Wrapf(ErrInvalidCallback,
			"method %s does not take %s as its first parameter", t, reflect.TypeFor[*T]())
	}
	return fn, nil
}

func mergeFlags(flags []ConnectFlags) ConnectFlags {
	var merged ConnectFlags
	for _, f := range flags {
		merged |= f
	}
	return merged
}

func (e *Event) connect(ref callbackRef, flags ConnectFlags) error {
	if e.connectCheck != nil {
		count, variadic := ref.arity()
		if err := e.connectCheck(count, variadic); err != nil {
			return err
		}
	}
	e.receivers = append(e.receivers, &Connection{ref: ref, flags: flags})
	return nil
}

// Erase removes every connection whose referent equals callback. Free
// functions compare by code pointer; for bound connections a bare method
// expression matches regardless of owner (use EraseMethod to narrow by
// owner). Unknown callbacks are a no-op, not an error.
func (e *Event) Erase(callback any) {
	fn := reflect.ValueOf(callback)
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return
	}
	e.erase(fn.Pointer(), nil)
}

// Disconnect is an alias of Erase.
func (e *Event) Disconnect(callback any) {
	e.Erase(callback)
}

// EraseMethod removes every connection made with ConnectMethod for the same
// owner and method.
func EraseMethod[T any](e *Event, owner *T, method any) {
	fn := reflect.ValueOf(method)
	if owner == nil || !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return
	}
	e.erase(fn.Pointer(), any(owner))
}

func (e *Event) erase(fnPtr uintptr, owner any) {
	kept := e.receivers[:0]
	for _, c := range e.receivers {
		if !c.ref.matches(fnPtr, owner) {
			kept = append(kept, c)
		}
	}
	e.receivers = kept
}

// Clear removes all connections.
func (e *Event) Clear() {
	e.receivers = nil
}

// Emit delivers args to every connection. With a manager attached, direct
// connections fire synchronously here and everything else is handed to the
// manager, which decides whether and when delivery happens. Without a
// manager all receivers are traversed synchronously, in connect order.
func (e *Event) Emit(args ...any) error {
	if e.emitCheck != nil {
		if err := e.emitCheck(args); err != nil {
			return err
		}
	}

	if e.manager != nil {
		if err := e.dispatch(args, scopeDirectOnly); err != nil {
			return err
		}
		return e.manager.Emit(e, args)
	}

	return e.dispatch(args, scopeAll)
}

// Dispatch traverses all receivers synchronously, bypassing any manager.
func (e *Event) Dispatch(args ...any) error {
	return e.dispatch(args, scopeAll)
}

type dispatchScope uint8

const (
	scopeAll dispatchScope = iota
	scopeDirectOnly
	scopeSkipDirect
)

// dispatch walks the receiver list in order, pruning dead references and
// fired one-shots in place without skipping the element that shifts into the
// freed slot.
func (e *Event) dispatch(args []any, scope dispatchScope) error {
	for i := 0; i < len(e.receivers); {
		c := e.receivers[i]

		if (scope == scopeDirectOnly && !c.flags.Has(ConnectDirect)) ||
			(scope == scopeSkipDirect && c.flags.Has(ConnectDirect)) {
			i++
			continue
		}

		retain, err := e.Send(c, args...)
		if err != nil {
			return err
		}
		if retain {
			i++
			continue
		}
		e.receivers = append(e.receivers[:i], e.receivers[i+1:]...)
	}
	return nil
}

// Send attempts delivery of args to a single connection and reports whether
// the connection should be retained. Expired references and fired one-shots
// report retain=false and the caller prunes; expiry is routine cleanup, never
// an error. Arity mismatches skip delivery: they are downgraded to a logged
// warning unless error catching is disabled, in which case they surface as
// ErrArityMismatch. Managers draining deferred emissions reuse Send as their
// dispatch primitive.
func (e *Event) Send(c *Connection, args ...any) (bool, error) {
	fn, prefix, ok := c.ref.resolve()
	if !ok {
		return false, nil
	}
	if c.fired && c.flags.Has(ConnectOneShot) {
		return false, nil
	}

	count, variadic := c.ref.arity()
	if len(args) != count && !(variadic && len(args) > count) {
		return true, e.mismatch(ArityError{Expected: count, Got: len(args), Args: args})
	}

	in, ok := callArgs(fn.Type(), prefix, args)
	if !ok {
		return true, e.mismatch(ArityError{Expected: count, Got: len(args), Args: args})
	}

	fn.Call(in)

	if c.flags.Has(ConnectOneShot) {
		c.fired = true
		return false, nil
	}
	return true, nil
}

// mismatch applies the error-catching policy: warn and skip delivery, or fail.
func (e *Event) mismatch(detail ArityError) error {
	if !e.catchErrors {
		return detail
	}
	if e.logger != nil {
		e.logger.Warnf("skipping delivery: %s", detail)
	}
	return nil
}

// callArgs converts args to the callback's parameter types, prepending any
// bound receiver. ok is false when an argument cannot be assigned to its
// parameter; the dynamic call would panic otherwise.
func callArgs(t reflect.Type, prefix []reflect.Value, args []any) ([]reflect.Value, bool) {
	in := make([]reflect.Value, 0, len(prefix)+len(args))
	in = append(in, prefix...)

	for _, arg := range args {
		var pt reflect.Type
		if i := len(in); t.IsVariadic() && i >= t.NumIn()-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(i)
		}

		v := reflect.ValueOf(arg)
		switch {
		case !v.IsValid():
			v = reflect.Zero(pt)
		case !v.Type().AssignableTo(pt):
			return nil, false
		}
		in = append(in, v)
	}
	return in, true
}

// Receivers returns a copy of the current connection list, in dispatch order.
// Managers snapshot it at emit time.
func (e *Event) Receivers() []*Connection {
	out := make([]*Connection, len(e.receivers))
	copy(out, e.receivers)
	return out
}

// Remove prunes a single connection by identity. Managers call it when Send
// reports the connection should not be retained. Unknown connections are a
// no-op.
func (e *Event) Remove(c *Connection) {
	for i, rc := range e.receivers {
		if rc == c {
			e.receivers = append(e.receivers[:i], e.receivers[i+1:]...)
			return
		}
	}
}

// Close deregisters the event from its manager, if any, and drops all
// connections. Emissions a queue already snapshotted against this event still
// drain.
func (e *Event) Close() {
	if e.manager != nil {
		e.manager.Delete(e)
		e.manager = nil
	}
	e.receivers = nil
}
