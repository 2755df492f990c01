package signals

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	l.Debug("d")
	l.Infof("i=%d", 7)
	l.Warnln("w")
	l.Error("e")

	out := buf.String()
	assert.Contains(t, out, "DEBUG: d")
	assert.Contains(t, out, "INFO: i=7")
	assert.Contains(t, out, "WARN: w")
	assert.Contains(t, out, "ERROR: e")
}

func TestWriterLoggerFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf).
		WithField("zeta", 1).
		WithField("alpha", "x")

	l.Warn("msg")

	assert.Contains(t, buf.String(), "[alpha=x, zeta=1]: msg")
}

func TestWriterLoggerWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWriterLogger(&buf)
	_ = parent.WithField("child", true)

	parent.Info("plain")

	assert.NotContains(t, buf.String(), "child")
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf)).WithField("event", "orders")

	l.Warnf("skipping %s", "delivery")

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"event":"orders"`)
	assert.Contains(t, out, "skipping delivery")
}

func TestZerologLoggerLineTrimsNewline(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf))

	l.Infoln("a", "b")

	assert.Contains(t, buf.String(), `"message":"a b"`)
}
