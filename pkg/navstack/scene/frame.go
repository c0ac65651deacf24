package scene

import (
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
	"github.com/BrandonKowalski/navstack/pkg/navstack/motion"
	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
	"github.com/BrandonKowalski/navstack/pkg/navstack/wrapper"
)

// DrawOp is one cached output to draw with a transform.
type DrawOp struct {
	Surface   flatten.Surface
	Output    any
	Transform motion.Transform
}

// Frame returns the draw list for the current result in z-order.
// progress is the position in [0,1] of the transitions started by the last
// Apply; it is ignored once they are settled. While a back gesture is active
// its transforms replace the transition transforms of its surfaces.
//
// Outgoing surfaces are drawn directly below the surface replacing them.
// In compact pane mode the secondary slot and everything inside it is
// skipped.
func (s *Scene) Frame(progress float64) []DrawOp {
	if s.result == nil {
		return nil
	}

	pairs := make(map[string]flatten.AnimationPair)
	if !s.settled {
		for _, pair := range s.result.AnimationPairs {
			pairs[pair.CurrentID] = pair
		}
	}
	live := s.result.LiveSet()
	gst := s.back.State()
	skipped := make(map[string]struct{})

	var ops []DrawOp
	for _, surface := range s.result.Surfaces {
		if s.hidden(surface, skipped) {
			skipped[surface.ID] = struct{}{}
			continue
		}

		current := motion.Identity
		if s.back.Active() && surface.ID == gst.CurrentKey {
			var previous motion.Transform
			current, previous = s.back.Transforms()
			ops = s.appendOutgoing(ops, gst.PreviousKey, surface, live, previous)
		} else if pair, ok := pairs[surface.ID]; ok {
			var previous motion.Transform
			current, previous = motion.Interpolate(pair.Type, progress, s.width)
			ops = s.appendOutgoing(ops, pair.PreviousID, surface, live, previous)
		}

		if op, ok := s.op(surface, current); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// TransitionDuration returns the longest animation of the last Apply.
func (s *Scene) TransitionDuration() time.Duration {
	var longest time.Duration
	if s.result == nil {
		return 0
	}
	for _, surface := range s.result.Surfaces {
		longest = max(longest, surface.Animation.Duration)
	}
	return longest
}

// hidden reports whether the default layout leaves surface undrawn, either
// itself or through an enclosing surface already skipped.
func (s *Scene) hidden(surface flatten.Surface, skipped map[string]struct{}) bool {
	if _, ok := skipped[surface.ParentWrapperID]; ok {
		return true
	}
	if s.layout.Mode != wrapper.PaneCompact || surface.NodeType != navnode.KindPane || surface.Mode != flatten.ModeContent {
		return false
	}
	return surface.Metadata[constants.MetaRole] != navnode.RolePrimary.String()
}

// appendOutgoing adds the draw op of an outgoing surface below the one
// replacing it. Surfaces still live are drawn in their own place instead.
func (s *Scene) appendOutgoing(ops []DrawOp, id string, incoming flatten.Surface, live map[string]struct{}, t motion.Transform) []DrawOp {
	if _, ok := live[id]; ok || id == "" {
		return ops
	}
	surface := flatten.Surface{ID: id, ZOrder: incoming.ZOrder, ParentWrapperID: incoming.ParentWrapperID}
	if s.previous != nil {
		if prior, ok := s.previous.Surface(id); ok {
			surface = prior
		}
	}
	if op, ok := s.op(surface, t); ok {
		ops = append(ops, op)
	}
	return ops
}

func (s *Scene) op(surface flatten.Surface, t motion.Transform) (DrawOp, bool) {
	e, ok := s.surfaces.Get(surface.ID)
	if !ok {
		return DrawOp{}, false
	}
	return DrawOp{Surface: surface, Output: e.Output(), Transform: t}, true
}
