package gesture_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navstack/pkg/navstack/cache"
	naverrors "github.com/BrandonKowalski/navstack/pkg/navstack/errors"
	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
	"github.com/BrandonKowalski/navstack/pkg/navstack/gesture"
	"github.com/BrandonKowalski/navstack/pkg/navstack/motion"
)

const frame = 16 * time.Millisecond

// recordingLocker counts lock operations per key and remembers their order.
type recordingLocker struct {
	counts map[string]int
	log    []string
	fail   string
}

func newRecordingLocker() *recordingLocker {
	return &recordingLocker{counts: make(map[string]int)}
}

func (l *recordingLocker) Lock(key string) {
	if key == l.fail {
		panic(naverrors.NewDefectError("lock", key, naverrors.ErrUnknownEntry))
	}
	l.counts[key]++
	l.log = append(l.log, "lock "+key)
}

func (l *recordingLocker) Unlock(key string) {
	l.counts[key]--
	l.log = append(l.log, "unlock "+key)
}

func (l *recordingLocker) balanced() bool {
	for _, n := range l.counts {
		if n != 0 {
			return false
		}
	}
	return true
}

func settle(t *testing.T, c *gesture.Controller) {
	t.Helper()
	for i := 0; c.Active(); i++ {
		require.Less(t, i, 1000, "gesture never settled")
		c.Tick(frame)
	}
}

func TestCancelledGestureLeavesNoTrace(t *testing.T) {
	locker := newRecordingLocker()
	backs := 0
	c := gesture.New(locker, gesture.WithBackAction(func() { backs++ }))

	require.True(t, c.Begin("home", "feed"))
	require.Equal(t, gesture.PhaseTracking, c.State().Phase)

	for _, p := range []float64{0.0, 0.1, 0.4} {
		require.True(t, c.Update(p))
	}
	require.Equal(t, 0.25, c.State().Progress)

	require.True(t, c.Cancel())
	require.Equal(t, gesture.PhaseCancelling, c.State().Phase)
	settle(t, c)

	require.Equal(t, gesture.PhaseIdle, c.State().Phase)
	require.Zero(t, c.State().Progress)
	require.True(t, locker.balanced())
	require.Zero(t, backs)
}

func TestCommittedGesture(t *testing.T) {
	locker := newRecordingLocker()
	backs := 0
	c := gesture.New(locker, gesture.WithBackAction(func() { backs++ }))

	c.Begin("detail", "list")
	c.Update(0.2)
	require.True(t, c.Commit())
	require.Equal(t, 1, backs)
	require.Equal(t, gesture.PhaseCommitting, c.State().Phase)

	c.Tick(frame)
	require.Greater(t, c.State().Progress, 0.2)
	require.LessOrEqual(t, c.State().Progress, 0.25)

	settle(t, c)
	require.True(t, locker.balanced())
	require.Equal(t, []string{
		"lock detail",
		"lock list",
		"unlock detail",
		"unlock list",
	}, locker.log)
}

func TestZeroDurationsFinishImmediately(t *testing.T) {
	locker := newRecordingLocker()
	cfg := gesture.DefaultConfig()
	cfg.CommitDuration = 0
	cfg.CancelDuration = 0
	c := gesture.New(locker, gesture.WithConfig(cfg))

	c.Begin("a", "b")
	c.Cancel()
	require.False(t, c.Active())

	c.Begin("a", "b")
	c.Commit()
	require.False(t, c.Active())
	require.True(t, locker.balanced())
}

func TestCancelWhileIdleIsNoop(t *testing.T) {
	locker := newRecordingLocker()
	c := gesture.New(locker)

	require.False(t, c.Cancel())
	require.False(t, c.Cancel())
	require.Empty(t, locker.log)
	require.Zero(t, c.IgnoredEvents())
}

func TestOutOfPhaseEventsAreIgnored(t *testing.T) {
	locker := newRecordingLocker()
	backs := 0
	c := gesture.New(locker, gesture.WithBackAction(func() { backs++ }))

	require.False(t, c.Update(0.1))
	require.False(t, c.Commit())
	require.False(t, c.Begin("a", ""))

	c.Begin("a", "b")
	require.False(t, c.Begin("c", "d"))
	c.Cancel()
	require.False(t, c.Commit())
	require.False(t, c.Update(0.2))
	require.False(t, c.Cancel())

	settle(t, c)
	require.Equal(t, int64(7), c.IgnoredEvents())
	require.Zero(t, backs)
	require.True(t, locker.balanced())
}

func TestAbortReleasesFromAnyPhase(t *testing.T) {
	tests := []struct {
		name  string
		drive func(c *gesture.Controller)
	}{
		{"tracking", func(c *gesture.Controller) { c.Update(0.1) }},
		{"committing", func(c *gesture.Controller) { c.Commit() }},
		{"cancelling", func(c *gesture.Controller) { c.Cancel() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locker := newRecordingLocker()
			c := gesture.New(locker)
			c.Begin("a", "b")
			tt.drive(c)

			c.Abort()
			require.False(t, c.Active())
			require.True(t, locker.balanced())

			c.Abort()
			require.True(t, locker.balanced())
		})
	}
}

func TestBackActionPanicReleasesLocks(t *testing.T) {
	locker := newRecordingLocker()
	c := gesture.New(locker, gesture.WithBackAction(func() { panic("navigator gone") }))

	c.Begin("a", "b")
	require.PanicsWithValue(t, "navigator gone", func() { c.Commit() })
	require.False(t, c.Active())
	require.True(t, locker.balanced())
}

func TestFailedBeginReleasesPartialLocks(t *testing.T) {
	locker := newRecordingLocker()
	locker.fail = "missing"
	c := gesture.New(locker)

	require.Panics(t, func() { c.Begin("a", "missing") })
	require.False(t, c.Active())
	require.True(t, locker.balanced())
}

func TestTransformsFollowProgress(t *testing.T) {
	c := gesture.New(newRecordingLocker())

	current, previous := c.Transforms()
	require.Equal(t, motion.Identity, current)
	require.Equal(t, motion.Hidden, previous)

	c.Begin("a", "b")
	c.Update(0.25)
	current, _ = c.Transforms()
	require.InDelta(t, 0.25*1080, current.TranslateX, 1e-9)
}

func TestGestureAgainstSurfaceCache(t *testing.T) {
	surfaces := cache.New()
	for _, key := range []string{"home", "feed"} {
		_, err := surfaces.GetOrCreate(key, func() (any, error) { return key, nil })
		require.NoError(t, err)
	}

	c := gesture.New(surfaces)
	c.Begin("home", "feed")
	require.Equal(t, 1, surfaces.LockCount("home"))
	require.Equal(t, 1, surfaces.LockCount("feed"))

	// A pass that no longer references either surface must not evict them
	// mid gesture.
	require.Empty(t, surfaces.Reconcile(nil, flatten.CachingHints{}))
	require.Equal(t, 2, surfaces.Len())

	c.Update(0.4)
	c.Cancel()
	settle(t, c)

	require.Zero(t, surfaces.Len())
	require.Zero(t, surfaces.Stats().Locked)
}
