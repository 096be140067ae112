package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestManager_AcquireBeforeStart(t *testing.T) {
	m := NewManager(zap.NewNop())

	session, err := m.Acquire()

	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestManager_NotReadyByDefault(t *testing.T) {
	m := NewManager(zap.NewNop())
	assert.False(t, m.Ready())
}

func TestManager_ShutdownWhenNotReady(t *testing.T) {
	m := NewManager(zap.NewNop())

	// Shutting down a manager that never started must be a no-op.
	assert.NoError(t, m.Shutdown())
	assert.False(t, m.Ready())

	_, err := m.Acquire()
	assert.ErrorIs(t, err, ErrNotReady)
}
