package gesture

import (
	"log/slog"
	"math"
	"time"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
	"github.com/BrandonKowalski/navstack/pkg/navstack/motion"
)

// Phase is the controller's position in the gesture lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTracking
	PhaseCommitting
	PhaseCancelling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTracking:
		return "tracking"
	case PhaseCommitting:
		return "committing"
	case PhaseCancelling:
		return "cancelling"
	default:
		return "unknown"
	}
}

// State is a snapshot of the gesture.
type State struct {
	Phase       Phase
	CurrentKey  string
	PreviousKey string
	Progress    float64 // visual progress, within [0, Config.MaxProgress]
}

// Locker is the part of the surface cache the controller needs.
type Locker interface {
	Lock(key string)
	Unlock(key string)
}

// Config tunes the gesture.
type Config struct {
	MaxProgress    float64       // visual progress ceiling while tracking
	CommitDuration time.Duration // completion animation length
	CancelDuration time.Duration // return animation length
	Back           motion.BackConfig
}

// DefaultConfig returns the standard predictive back tuning.
func DefaultConfig() Config {
	return Config{
		MaxProgress:    constants.DefaultMaxBackProgress,
		CommitDuration: constants.DefaultCommitDuration,
		CancelDuration: constants.DefaultCancelDuration,
		Back: motion.BackConfig{
			Width:    constants.DefaultBackWidth,
			MinScale: constants.DefaultBackMinScale,
			Edge:     motion.EdgeLeft,
		},
	}
}

type animation struct {
	from, to float64
	elapsed  time.Duration
	duration time.Duration
}

// Controller drives one predictive back gesture at a time. While a gesture
// is active it holds a lock on both the current and the previous surface so
// neither can be evicted; every way out of the gesture releases both.
//
// All methods must be called from the render thread. Use an Inbox to carry
// events over from an input goroutine.
type Controller struct {
	locker Locker
	cfg    Config
	onBack func()
	logger *slog.Logger

	state State
	lease *lease
	anim  animation

	ignored *atomic.Int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithBackAction sets the navigation performed when a gesture commits.
func WithBackAction(fn func()) Option {
	return func(c *Controller) {
		c.onBack = fn
	}
}

// WithLogger sets the logger. Defaults to the navstack internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates an idle Controller locking surfaces through locker.
func New(locker Locker, opts ...Option) *Controller {
	c := &Controller{
		locker:  locker,
		cfg:     DefaultConfig(),
		ignored: atomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = internal.GetInternalLogger()
	}
	return c
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	return c.state.Phase != PhaseIdle
}

// IgnoredEvents returns how many events arrived out of phase. Safe to call
// from any goroutine.
func (c *Controller) IgnoredEvents() int64 {
	return c.ignored.Load()
}

func (c *Controller) ignore(event string, attrs ...any) bool {
	c.ignored.Inc()
	c.logger.Debug("gesture event ignored", append([]any{"event", event, "phase", c.state.Phase.String()}, attrs...)...)
	return false
}

// Begin starts tracking a back gesture from current to previous and locks
// both surfaces. Returns false if a gesture is already active.
func (c *Controller) Begin(current, previous string) bool {
	if c.state.Phase != PhaseIdle {
		return c.ignore("begin", "current", current, "previous", previous)
	}
	if current == "" || previous == "" {
		return c.ignore("begin", "reason", "no back target")
	}

	c.lease = acquire(c.locker, current, previous)
	c.state = State{Phase: PhaseTracking, CurrentKey: current, PreviousKey: previous}
	return true
}

// Update applies a raw progress value. Values are clamped to [0,1] and then
// to Config.MaxProgress so the transition never visually completes before
// commit. Ignored unless tracking.
func (c *Controller) Update(raw float64) bool {
	if c.state.Phase != PhaseTracking {
		return c.ignore("progress", "value", raw)
	}
	if math.IsNaN(raw) {
		return c.ignore("progress", "value", "NaN")
	}
	c.state.Progress = min(motion.Clamp01(raw), c.cfg.MaxProgress)
	return true
}

// Commit performs the back navigation and plays the completion animation.
// Ignored unless tracking.
func (c *Controller) Commit() bool {
	if c.state.Phase != PhaseTracking {
		return c.ignore("commit")
	}

	defer func() {
		if r := recover(); r != nil {
			c.Abort()
			panic(r)
		}
	}()

	// The back action may apply the resulting navigation state before it
	// returns, so the gesture is already committing when it runs.
	c.state.Phase = PhaseCommitting
	if c.onBack != nil {
		c.onBack()
	}
	c.animateTo(c.cfg.MaxProgress, c.cfg.CommitDuration)
	return true
}

// Cancel abandons the gesture and animates back to the start. Calling it
// while idle is a no-op, so it is safe to call any number of times.
func (c *Controller) Cancel() bool {
	switch c.state.Phase {
	case PhaseIdle:
		return false
	case PhaseTracking:
		c.state.Phase = PhaseCancelling
		c.animateTo(0, c.cfg.CancelDuration)
		return true
	default:
		return c.ignore("cancel")
	}
}

// Tick advances a running commit or cancel animation by dt.
func (c *Controller) Tick(dt time.Duration) {
	if c.state.Phase != PhaseCommitting && c.state.Phase != PhaseCancelling {
		return
	}

	c.anim.elapsed += dt
	t := 1.0
	if c.anim.duration > 0 {
		t = min(float64(c.anim.elapsed)/float64(c.anim.duration), 1)
	}
	c.state.Progress = c.anim.from + (c.anim.to-c.anim.from)*t

	if t >= 1 {
		c.finish()
	}
}

// Abort tears the gesture down immediately from any phase, releasing every
// lock it holds. No navigation is performed.
func (c *Controller) Abort() {
	if c.lease != nil {
		c.lease.releaseAll()
		c.lease = nil
	}
	c.state = State{Phase: PhaseIdle}
}

// Transforms returns the transforms for the current and previous surface at
// the present progress.
func (c *Controller) Transforms() (current, previous motion.Transform) {
	if c.state.Phase == PhaseIdle {
		return motion.Identity, motion.Hidden
	}
	return motion.PredictiveBack(c.state.Progress, c.cfg.Back)
}

func (c *Controller) animateTo(target float64, duration time.Duration) {
	c.anim = animation{from: c.state.Progress, to: target, duration: duration}
	if duration <= 0 {
		c.state.Progress = target
		c.finish()
	}
}

func (c *Controller) finish() {
	if c.state.Phase == PhaseCommitting && c.lease != nil {
		// The exited surface goes first; the revealed one is now current and
		// is kept alive by the next flatten pass.
		c.lease.release(c.state.CurrentKey)
	}
	c.Abort()
}
