package signals

import (
	"github.com/stretchr/testify/mock"
)

type mockManager struct {
	mock.Mock

	tapEmit func(e *Event, args []any)
}

func (m *mockManager) Setup(e *Event) {
	m.Called(e)
}

func (m *mockManager) Emit(e *Event, args []any) error {
	if m.tapEmit != nil {
		m.tapEmit(e, args)
	}
	ret := m.Called(e, args)
	return ret.Error(0)
}

func (m *mockManager) Delete(e *Event) {
	m.Called(e)
}
