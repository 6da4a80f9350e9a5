package store

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	fired := make(chan struct{}, 1)

	d := NewDebouncer(30 * time.Millisecond)
	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			calls.Add(1)
			fired <- struct{}{}
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	// quiet period passed; no further calls may arrive
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32

	d := NewDebouncer(20 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// Stop with nothing pending is fine
	d.Stop()
}
