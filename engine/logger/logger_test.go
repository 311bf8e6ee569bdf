package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(prefix string, debug bool) (*DefaultLogger, *bytes.Buffer, *bytes.Buffer) {
	l := NewDefaultLogger(prefix, debug)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	l.out = log.New(out, "", 0)
	l.err = log.New(errOut, "", 0)
	return l, out, errOut
}

func TestDefaultLogger_Levels(t *testing.T) {
	l, out, errOut := newBufferedLogger("globe", false)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[globe] INFO: shown 2")
	assert.Contains(t, errOut.String(), "[globe] WARN: careful")
	assert.Contains(t, errOut.String(), "[globe] ERROR: broken")

	l.SetDebug(true)
	l.Debugf("visible")
	assert.Contains(t, out.String(), "[globe] DEBUG: visible")
}

func TestDefaultLogger_WithSharesDebugSwitch(t *testing.T) {
	l, out, _ := newBufferedLogger("globe", false)
	child := l.With("viewport")

	l.SetDebug(true)
	child.Debugf("attached")

	assert.True(t, child.DebugEnabled())
	assert.Contains(t, out.String(), "[globe/viewport] DEBUG: attached")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	assert.False(t, OrNop(nil).DebugEnabled())

	l := NewDefaultLogger("", false)
	assert.Same(t, l, OrNop(l))
}
