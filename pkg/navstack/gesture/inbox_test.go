package gesture_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navstack/pkg/navstack/gesture"
)

func TestInboxDrainAppliesInOrder(t *testing.T) {
	locker := newRecordingLocker()
	c := gesture.New(locker)
	in := gesture.NewInbox(8)

	in.Begin("home", "feed")
	in.Progress(0.05)
	in.Progress(0.1)
	in.Progress(0.2)

	// begin + one coalesced progress
	require.Equal(t, 2, in.Drain(c))
	require.Equal(t, gesture.PhaseTracking, c.State().Phase)
	require.Equal(t, 0.2, c.State().Progress)

	in.Progress(0.4)
	in.Cancel()
	require.Equal(t, 2, in.Drain(c))
	require.Equal(t, gesture.PhaseCancelling, c.State().Phase)

	settle(t, c)
	require.True(t, locker.balanced())
	require.Zero(t, in.Drain(c))
}

func TestInboxParksOverflowingProgress(t *testing.T) {
	c := gesture.New(newRecordingLocker())
	in := gesture.NewInbox(1)

	in.Begin("a", "b")
	require.Equal(t, 1, in.Drain(c))

	in.Progress(0.01) // queued
	in.Progress(0.02) // parked
	in.Progress(0.03) // replaces the parked value
	in.Progress(0.04) // replaces the parked value
	require.Equal(t, int64(2), in.Coalesced())

	require.Equal(t, 2, in.Drain(c))
	require.Equal(t, 0.04, c.State().Progress)
	require.Zero(t, c.IgnoredEvents())
}

func TestInboxDropsParkedProgressAfterCancel(t *testing.T) {
	c := gesture.New(newRecordingLocker())
	in := gesture.NewInbox(3)

	in.Begin("a", "b")
	require.Equal(t, 1, in.Drain(c))

	in.Progress(0.01)
	in.Progress(0.02)
	in.Cancel()      // fills the queue
	in.Progress(0.2) // parked

	// one collapsed progress + cancel
	require.Equal(t, 2, in.Drain(c))
	require.Equal(t, gesture.PhaseCancelling, c.State().Phase)
	require.Zero(t, c.IgnoredEvents())
	require.Zero(t, in.Drain(c))
}

func TestInboxConcurrentProducer(t *testing.T) {
	locker := newRecordingLocker()
	backs := 0
	c := gesture.New(locker, gesture.WithBackAction(func() { backs++ }))
	in := gesture.NewInbox(4)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		in.Begin("a", "b")
		for i := range 100 {
			in.Progress(float64(i) / 100)
		}
		in.Commit()
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		in.Drain(c)
		select {
		case <-done:
			in.Drain(c)
			settle(t, c)
			require.Equal(t, 1, backs)
			require.True(t, locker.balanced())
			return
		default:
		}
	}
}
