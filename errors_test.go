package signals

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestArityErrorMatchesSentinel(t *testing.T) {
	err := ArityError{Expected: 1, Got: 2, Args: []any{1, 2}}

	assert.ErrorIs(t, err, ErrArityMismatch)
	assert.NotErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "declares 1 parameters")
	assert.Contains(t, err.Error(), "carried 2")
}

func TestArityErrorConnectTimeMessage(t *testing.T) {
	err := ArityError{Expected: 1, Got: 3}
	assert.Contains(t, err.Error(), "expected 1 parameters, target declares 3")
}

func TestTypeErrorMatchesSentinel(t *testing.T) {
	err := TypeError{
		Expected: []reflect.Type{reflect.TypeFor[string]()},
		Got:      []reflect.Type{reflect.TypeFor[int]()},
	}

	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "string")
	assert.Contains(t, err.Error(), "int")
}

func TestSentinelsWrapWithContext(t *testing.T) {
	wrapped := errors.Wrap(ErrInvalidCallback, "connecting handler")

	assert.ErrorIs(t, wrapped, ErrInvalidCallback)
	assert.Contains(t, wrapped.Error(), "connecting handler")
}
