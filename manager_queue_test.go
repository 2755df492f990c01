package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDefersAndDrainsFIFO(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	var got []string
	require.NoError(t, ev.Connect(func(s string) {
		got = append(got, s)
	}))

	require.NoError(t, ev.Emit("1"))
	require.NoError(t, ev.Emit("2"))

	assert.Equal(t, 2, q.QueuedCount())
	assert.Empty(t, got)

	require.NoError(t, q.Execute(1))
	assert.Equal(t, []string{"1"}, got)
	assert.Equal(t, 1, q.QueuedCount())

	require.NoError(t, q.ExecuteAll())
	assert.Equal(t, []string{"1", "2"}, got)
	assert.True(t, q.Empty())
}

func TestQueueFIFOAcrossEvents(t *testing.T) {
	q := NewEventQueue()
	a := NewEvent(WithManager(q))
	b := NewEvent(WithManager(q))

	var got []string
	require.NoError(t, a.Connect(func(s string) { got = append(got, "a:"+s) }))
	require.NoError(t, b.Connect(func(s string) { got = append(got, "b:"+s) }))

	require.NoError(t, a.Emit("1"))
	require.NoError(t, b.Emit("2"))
	require.NoError(t, a.Emit("3"))

	require.NoError(t, q.ExecuteAll())
	assert.Equal(t, []string{"a:1", "b:2", "a:3"}, got)
}

func TestQueueExecuteOnEmptyIsNoop(t *testing.T) {
	q := NewEventQueue()

	require.NoError(t, q.Execute(1))
	require.NoError(t, q.ExecuteAll())
	assert.True(t, q.Empty())
	assert.Zero(t, q.QueuedCount())
}

func TestQueueExecuteStopsEarly(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	calls := 0
	require.NoError(t, ev.Connect(func() { calls++ }))
	require.NoError(t, ev.Emit())

	require.NoError(t, q.Execute(10))
	assert.Equal(t, 1, calls)
	assert.True(t, q.Empty())
}

func TestQueueSnapshotCommitsDelivery(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	early, late := 0, 0
	cb := func(s string) { early++ }
	require.NoError(t, ev.Connect(cb))

	require.NoError(t, ev.Emit("x"))

	// disconnecting after the emission is queued does not retract it
	ev.Disconnect(cb)
	// connecting after the emission is queued does not join it
	require.NoError(t, ev.Connect(func(s string) { late++ }))

	require.NoError(t, q.ExecuteAll())
	assert.Equal(t, 1, early)
	assert.Zero(t, late)
}

func TestQueueOneShotFiresOnceAcrossQueuedEmissions(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	calls := 0
	require.NoError(t, ev.Connect(func() { calls++ }, ConnectOneShot))

	// both snapshots contain the one-shot connection
	require.NoError(t, ev.Emit())
	require.NoError(t, ev.Emit())

	require.NoError(t, q.ExecuteAll())
	assert.Equal(t, 1, calls)
	assert.Empty(t, ev.Receivers())
}

func TestQueueOneShotPrunedFromLiveEvent(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	calls := 0
	require.NoError(t, ev.Connect(func() { calls++ }, ConnectOneShot))
	require.NoError(t, ev.Emit())

	require.Len(t, ev.Receivers(), 1)
	require.NoError(t, q.Execute(1))

	// pruning happened against the live receiver list, not the snapshot
	assert.Empty(t, ev.Receivers())
	assert.Equal(t, 1, calls)
}

func TestQueueDirectExcludedFromSnapshot(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	var direct, deferred []string
	require.NoError(t, ev.Connect(func(s string) {
		direct = append(direct, s)
	}, ConnectDirect))
	require.NoError(t, ev.Connect(func(s string) {
		deferred = append(deferred, s)
	}))

	require.NoError(t, ev.Emit("x"))

	// direct fired synchronously inside Emit, nothing delivered twice
	assert.Equal(t, []string{"x"}, direct)
	assert.Empty(t, deferred)
	assert.Equal(t, 1, q.QueuedCount())

	require.NoError(t, q.ExecuteAll())
	assert.Equal(t, []string{"x"}, direct)
	assert.Equal(t, []string{"x"}, deferred)
}

func TestQueueExecuteAllDrainsReentrantEmissions(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	var got []string
	require.NoError(t, ev.Connect(func(s string) {
		got = append(got, s)
		if s == "first" {
			require.NoError(t, ev.Emit("second"))
		}
	}))

	require.NoError(t, ev.Emit("first"))
	require.NoError(t, q.ExecuteAll())

	assert.Equal(t, []string{"first", "second"}, got)
	assert.True(t, q.Empty())
}

func TestQueueDispatchErrorAbortsDrain(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q), WithErrorCatching(false))

	calls := 0
	require.NoError(t, ev.Connect(func(a int) { calls++ }))

	require.NoError(t, ev.Emit(1, 2)) // enqueue only, no delivery yet

	err := q.Execute(1)
	assert.ErrorIs(t, err, ErrArityMismatch)
	assert.Zero(t, calls)
	assert.True(t, q.Empty())
}

func TestQueueSetupAndDelete(t *testing.T) {
	q := NewEventQueue()

	a := NewEvent(WithManager(q))
	b := NewEvent(WithManager(q))
	assert.Equal(t, 2, q.Registered())

	a.Close()
	assert.Equal(t, 1, q.Registered())

	// deleting an unknown event is a no-op
	q.Delete(a)
	assert.Equal(t, 1, q.Registered())

	b.Close()
	assert.Zero(t, q.Registered())
}

func TestQueueDrainsAfterEventClose(t *testing.T) {
	q := NewEventQueue()
	ev := NewEvent(WithManager(q))

	calls := 0
	require.NoError(t, ev.Connect(func() { calls++ }))
	require.NoError(t, ev.Emit())

	// the snapshot is the unit of commitment even across Close
	ev.Close()
	require.NoError(t, q.ExecuteAll())

	assert.Equal(t, 1, calls)
}
