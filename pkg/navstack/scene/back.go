package scene

import (
	"fmt"
	"time"
)

// BeginBack starts a predictive back gesture on the back edge of the current
// result. The surface being revealed is rendered first if the cache does not
// hold it. Returns false when there is nothing to go back to or a gesture is
// already running.
func (s *Scene) BeginBack() (bool, error) {
	if s.result == nil || s.result.Back == nil || s.back.Active() {
		return false, nil
	}

	edge := *s.result.Back
	if err := s.renderEntry(edge.PreviousID); err != nil {
		return false, fmt.Errorf("render back target %q: %w", edge.PreviousID, err)
	}
	return s.back.Begin(edge.CurrentID, edge.PreviousID), nil
}

// UpdateBack feeds raw gesture progress to the controller.
func (s *Scene) UpdateBack(raw float64) bool {
	return s.back.Update(raw)
}

// CommitBack runs the back action and plays the completion animation.
func (s *Scene) CommitBack() bool {
	return s.back.Commit()
}

// CancelBack abandons the gesture. Safe to call when no gesture is running.
func (s *Scene) CancelBack() bool {
	return s.back.Cancel()
}

// Tick advances the gesture animation by dt. Once the gesture is over, the
// cache is reconciled so the surfaces it kept alive can go.
func (s *Scene) Tick(dt time.Duration) {
	if !s.back.Active() {
		return
	}
	s.back.Tick(dt)
	if !s.back.Active() && s.result != nil {
		s.surfaces.Reconcile(s.result.LiveSet(), s.result.Hints)
	}
}
