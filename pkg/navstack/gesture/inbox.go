package gesture

import (
	"go.uber.org/atomic"
)

const defaultInboxCapacity = 64

// EventKind identifies a gesture input event.
type EventKind int

const (
	EventBegin EventKind = iota
	EventProgress
	EventCommit
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventBegin:
		return "begin"
	case EventProgress:
		return "progress"
	case EventCommit:
		return "commit"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one gesture input as seen by the input thread.
type Event struct {
	Kind        EventKind
	Progress    float64 // EventProgress only
	CurrentKey  string  // EventBegin only
	PreviousKey string  // EventBegin only
}

// Inbox carries gesture events from an input goroutine to the render
// thread. The input side calls Post; the render thread calls Drain between
// frames, which is the only place the Controller is touched.
//
// Progress events never block the input side: when the queue is full the
// newest value is parked and applied at the end of the next Drain, older
// parked values are overwritten. A parked value is dropped when that Drain
// also dequeues a lifecycle event, since it may belong to a gesture that has
// already ended. Lifecycle events (begin, commit, cancel) are never dropped
// and block until there is room.
type Inbox struct {
	events chan Event

	parked    *atomic.Float64
	hasParked *atomic.Bool
	coalesced *atomic.Int64
}

// NewInbox creates an Inbox with room for capacity queued events.
func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = defaultInboxCapacity
	}
	return &Inbox{
		events:    make(chan Event, capacity),
		parked:    atomic.NewFloat64(0),
		hasParked: atomic.NewBool(false),
		coalesced: atomic.NewInt64(0),
	}
}

// Post enqueues e. Safe to call from any goroutine.
func (in *Inbox) Post(e Event) {
	if e.Kind != EventProgress {
		in.events <- e
		return
	}

	select {
	case in.events <- e:
		// a newer queued value supersedes anything parked
		in.hasParked.Store(false)
	default:
		in.parked.Store(e.Progress)
		if in.hasParked.Swap(true) {
			in.coalesced.Inc()
		}
	}
}

// Begin posts a begin event.
func (in *Inbox) Begin(current, previous string) {
	in.Post(Event{Kind: EventBegin, CurrentKey: current, PreviousKey: previous})
}

// Progress posts a raw progress value.
func (in *Inbox) Progress(raw float64) {
	in.Post(Event{Kind: EventProgress, Progress: raw})
}

// Commit posts a commit event.
func (in *Inbox) Commit() {
	in.Post(Event{Kind: EventCommit})
}

// Cancel posts a cancel event.
func (in *Inbox) Cancel() {
	in.Post(Event{Kind: EventCancel})
}

// Coalesced returns how many parked progress values were overwritten
// before a Drain applied them.
func (in *Inbox) Coalesced() int64 {
	return in.coalesced.Load()
}

// Drain applies every queued event to c without blocking and returns how
// many controller calls were made. Runs of progress events collapse to the
// last value of the run. Must be called on the render thread.
func (in *Inbox) Drain(c *Controller) int {
	applied := 0
	var pending *float64

	flush := func() {
		if pending != nil {
			c.Update(*pending)
			pending = nil
			applied++
		}
	}

	for {
		select {
		case e := <-in.events:
			if e.Kind == EventProgress {
				p := e.Progress
				pending = &p
				continue
			}
			flush()
			in.hasParked.Store(false)
			switch e.Kind {
			case EventBegin:
				c.Begin(e.CurrentKey, e.PreviousKey)
			case EventCommit:
				c.Commit()
			case EventCancel:
				c.Cancel()
			}
			applied++
		default:
			flush()
			if in.hasParked.Swap(false) {
				c.Update(in.parked.Load())
				applied++
			}
			return applied
		}
	}
}
