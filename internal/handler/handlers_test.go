package handler

import (
	"context"
	"testing"

	"github.com/clinicore/clinic-registry/internal/config"
	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a no-op logger suitable for use in tests.
func newTestLogger() *logger.Logger {
	return logger.Nop()
}

// nopPinger always reports a reachable store.
type nopPinger struct{}

func (nopPinger) Ping(_ context.Context) error { return nil }

func TestNewHandlers_HTTPConfigured(t *testing.T) {
	handlers, err := NewHandlers(&service.Services{}, nopPinger{}, config.Server{HTTPAddress: ":5000"}, newTestLogger())
	require.NoError(t, err)
	assert.NotNil(t, handlers.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	handlers, err := NewHandlers(&service.Services{}, nopPinger{}, config.Server{}, newTestLogger())
	require.Error(t, err)
	assert.Nil(t, handlers)
}
