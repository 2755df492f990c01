package signals

// EventManager is the pluggable dispatch strategy of the core and its sole
// extension point. An event's owner never needs to know whether emission is
// immediate or deferred; the manager decides.
type EventManager interface {
	// Setup registers an event as known to this manager. Implementations may
	// assume each event calls Setup at most once, at its own construction.
	Setup(e *Event)

	// Emit accepts responsibility for delivering args to the event's current
	// non-direct receivers, synchronously or deferred, per policy. Direct
	// connections have already fired inside Event.Emit by the time Emit runs.
	Emit(e *Event, args []any) error

	// Delete deregisters the event. After it returns the manager holds no
	// reference to the event.
	Delete(e *Event)
}

// EmitNow synchronously delivers args to every current non-direct receiver of
// e, pruning expired references and fired one-shots as it goes. It never
// re-enters e's manager, so any manager may use it to implement immediate
// passthrough delivery.
func EmitNow(e *Event, args []any) error {
	return e.dispatch(args, scopeSkipDirect)
}
