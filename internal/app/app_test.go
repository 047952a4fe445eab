package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloseTracingInvokesShutdown(t *testing.T) {
	called := false
	a := &App{
		tracerShutdown: func(ctx context.Context) error {
			called = true
			return nil
		},
	}

	a.closeTracing(context.Background())
	assert.True(t, called)
}

func TestCloseTracingWithoutTracerIsNoop(t *testing.T) {
	a := &App{}
	assert.NotPanics(t, func() {
		a.closeTracing(context.Background())
	})
}

func TestCloseTracingLogsShutdownError(t *testing.T) {
	a := &App{
		tracerShutdown: func(ctx context.Context) error {
			return errors.New("exporter unreachable")
		},
	}
	assert.NotPanics(t, func() {
		a.closeTracing(context.Background())
	})
}
