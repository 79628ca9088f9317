// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time { return m.now }

var errUpstream = errors.New("upstream down")

func fail() error { return errUpstream }
func ok() error   { return nil }

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	clock := &mockClock{now: time.Now()}
	cb := NewCircuitBreaker("test", 3, 30*time.Second, WithClock(clock))

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	}
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)

	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(ok))
	_ = cb.Execute(fail)
	assert.Equal(t, StateClosed, cb.State(), "failures must be consecutive")
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	clock := &mockClock{now: time.Now()}
	cb := NewCircuitBreaker("test", 1, 10*time.Second, WithClock(clock))

	_ = cb.Execute(fail)
	require.Equal(t, StateOpen, cb.State())

	clock.now = clock.now.Add(11 * time.Second)
	_ = cb.Execute(fail)
	assert.Equal(t, StateOpen, cb.State(), "failed probe reopens")
	assert.ErrorIs(t, cb.Execute(ok), ErrCircuitOpen)

	clock.now = clock.now.Add(11 * time.Second)
	require.NoError(t, cb.Execute(ok))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_SingleProbeInFlight(t *testing.T) {
	clock := &mockClock{now: time.Now()}
	cb := NewCircuitBreaker("test", 1, time.Second, WithClock(clock))
	_ = cb.Execute(fail)
	clock.now = clock.now.Add(2 * time.Second)

	release := make(chan struct{})
	done := make(chan error, 1)
	entered := make(chan struct{})
	go func() {
		done <- cb.Execute(func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	assert.ErrorIs(t, cb.Execute(ok), ErrCircuitOpen)
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_FailurePredicate(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, time.Minute, WithFailurePredicate(func(err error) bool {
		return !errors.Is(err, context.Canceled)
	}))

	assert.ErrorIs(t, cb.Execute(func() error { return context.Canceled }), context.Canceled)
	assert.Equal(t, StateClosed, cb.State())

	_ = cb.Execute(fail)
	assert.Equal(t, StateOpen, cb.State())
}
