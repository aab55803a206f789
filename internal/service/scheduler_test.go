package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsCleanupImmediately(t *testing.T) {
	store := newMockStore()
	scheduler := NewScheduler(store, 14, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return store.cleanupCount() >= 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 14, store.firstCleanupRetention())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}
}

func TestSchedulerRunsPeriodically(t *testing.T) {
	store := newMockStore()
	scheduler := NewScheduler(store, 7, 10*time.Millisecond, testLogger())

	go scheduler.Start(context.Background())
	defer scheduler.Stop()

	require.Eventually(t, func() bool {
		return store.cleanupCount() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerStop(t *testing.T) {
	store := newMockStore()
	scheduler := NewScheduler(store, 7, time.Hour, testLogger())

	done := make(chan struct{})
	go func() {
		scheduler.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return store.cleanupCount() >= 1
	}, time.Second, 5*time.Millisecond)

	scheduler.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
