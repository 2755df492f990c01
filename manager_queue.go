package signals

// pendingEmission is one deferred delivery: the argument tuple plus the
// receiver snapshot taken at emit time. The snapshot is the unit of
// commitment: disconnecting after the emission is queued does not retract it,
// and connections made afterwards do not join it.
type pendingEmission struct {
	event     *Event
	args      []any
	receivers []*Connection
}

// EventQueue is an EventManager that defers delivery: managed emissions are
// enqueued FIFO and drained only by explicit Execute or ExecuteAll calls. No
// timer or background goroutine ever pulls from the queue.
//
// Like Event, an EventQueue is a single-goroutine object.
type EventQueue struct {
	events  []*Event
	pending []pendingEmission
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Setup registers the event with this queue.
func (q *EventQueue) Setup(e *Event) {
	q.events = append(q.events, e)
}

// Delete deregisters the event. Emissions already snapshotted against it
// still drain.
func (q *EventQueue) Delete(e *Event) {
	for i, ev := range q.events {
		if ev == e {
			q.events = append(q.events[:i], q.events[i+1:]...)
			return
		}
	}
}

// Emit snapshots the event's current non-direct receivers and appends the
// emission to the queue tail. Nothing is delivered here.
func (q *EventQueue) Emit(e *Event, args []any) error {
	var snapshot []*Connection
	for _, c := range e.Receivers() {
		if c.Flags().Has(ConnectDirect) {
			// already fired synchronously inside Event.Emit
			continue
		}
		snapshot = append(snapshot, c)
	}

	q.pending = append(q.pending, pendingEmission{
		event:     e,
		args:      args,
		receivers: snapshot,
	})
	return nil
}

// Execute pops up to n pending emissions from the head and delivers each one
// to its snapshot, in FIFO order. One-shot connections are pruned from the
// live event even though delivery used the snapshot. Stops early once the
// queue empties. A dispatch error aborts the drain mid-emission; the failed
// emission is not re-queued.
func (q *EventQueue) Execute(n int) error {
	for ; n > 0; n-- {
		if q.Empty() {
			return nil
		}
		pe := q.pending[0]
		q.pending = q.pending[1:]

		for _, c := range pe.receivers {
			retain, err := pe.event.Send(c, pe.args...)
			if !retain {
				pe.event.Remove(c)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ExecuteAll drains the queue until it is empty, including emissions enqueued
// by callbacks running during the drain. A callback that unconditionally
// re-emits on a queued event therefore never lets ExecuteAll return.
func (q *EventQueue) ExecuteAll() error {
	for !q.Empty() {
		if err := q.Execute(1); err != nil {
			return err
		}
	}
	return nil
}

// QueuedCount returns the number of pending emissions.
func (q *EventQueue) QueuedCount() int {
	return len(q.pending)
}

// Empty reports whether nothing is pending.
func (q *EventQueue) Empty() bool {
	return len(q.pending) == 0
}

// Registered returns how many events are currently registered with the queue.
func (q *EventQueue) Registered() int {
	return len(q.events)
}
