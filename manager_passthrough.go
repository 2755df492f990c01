package signals

// PassthroughManager delivers every managed emission immediately, making a
// managed event behave like an unmanaged one. It doubles as the reference
// implementation of the EventManager contract.
type PassthroughManager struct {
	events []*Event
}

func NewPassthroughManager() *PassthroughManager {
	return &PassthroughManager{}
}

func (m *PassthroughManager) Setup(e *Event) {
	m.events = append(m.events, e)
}

func (m *PassthroughManager) Emit(e *Event, args []any) error {
	return EmitNow(e, args)
}

func (m *PassthroughManager) Delete(e *Event) {
	for i, ev := range m.events {
		if ev == e {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return
		}
	}
}
