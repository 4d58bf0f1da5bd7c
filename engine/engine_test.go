package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTickRateBeforeRun(t *testing.T) {
	t.Parallel()

	e := NewEngine().(*engine)

	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.engineTickRate)

	// Non-positive rates fall back to the 60Hz default.
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
}

func TestSetTickRateWhileRunningQueuesUpdate(t *testing.T) {
	t.Parallel()

	e := NewEngine().(*engine)
	e.running.Store(true)

	e.SetTickRate(144)
	// A second call before the loop drains the channel replaces the
	// pending value; only the latest rate survives.
	e.SetTickRate(30)

	select {
	case rate := <-e.tickRateChannel:
		assert.Equal(t, time.Second/30, rate)
	default:
		t.Fatal("expected a pending tick rate update")
	}
}

func TestQuitIsIdempotent(t *testing.T) {
	t.Parallel()

	e := NewEngine().(*engine)

	e.Quit()
	require.NotPanics(t, e.Quit)

	select {
	case <-e.quitChannel:
	default:
		t.Fatal("quit channel should be closed")
	}
	assert.False(t, e.running.Load())
}

func TestSetTickRateConcurrentWithQuit(t *testing.T) {
	t.Parallel()

	// SetTickRate may be called from any goroutine while the engine shuts
	// down; the race detector verifies the running flag is safe to share.
	e := NewEngine(WithTickRate(240)).(*engine)
	e.running.Store(true)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			e.SetTickRate(float64(30 + j))
		}
	}()
	go func() {
		defer wg.Done()
		e.Quit()
	}()
	wg.Wait()

	assert.False(t, e.running.Load())
}
