package flatten

import (
	"slices"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
)

// RenderingMode says whether a surface is container chrome or a body.
type RenderingMode int

const (
	ModeContent RenderingMode = iota // destination or branch body
	ModeWrapper                      // container chrome around content
)

func (m RenderingMode) String() string {
	switch m {
	case ModeWrapper:
		return "wrapper"
	default:
		return "content"
	}
}

func (m RenderingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// TransitionType selects how two surfaces animate against each other.
type TransitionType int

const (
	TransitionNone      TransitionType = iota // no predecessor, nothing to animate
	TransitionPush                            // stack grew
	TransitionPop                             // stack shrank
	TransitionTabSwitch                       // tab branch changed
	TransitionCrossFade                       // node type changed at a boundary
)

func (t TransitionType) String() string {
	switch t {
	case TransitionPush:
		return "push"
	case TransitionPop:
		return "pop"
	case TransitionTabSwitch:
		return "tab_switch"
	case TransitionCrossFade:
		return "cross_fade"
	default:
		return "none"
	}
}

func (t TransitionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// AnimationSpec is the transition a surface plays when it appears.
type AnimationSpec struct {
	Type     TransitionType `json:"type"`
	Duration time.Duration  `json:"duration"`
}

// Surface is one drawable unit of a flatten pass.
type Surface struct {
	ID       string        `json:"id"`
	ZOrder   int           `json:"z_order"`
	NodeType navnode.Kind  `json:"node_type"`
	Mode     RenderingMode `json:"rendering_mode"`

	// ParentWrapperID names the enclosing surface in the same Result.
	ParentWrapperID string `json:"parent_wrapper_id,omitempty"`

	// PreviousSurfaceID names a surface of the prior Result this one animates
	// from. It need not exist in the current Result.
	PreviousSurfaceID string `json:"previous_surface_id,omitempty"`

	Animation AnimationSpec     `json:"animation"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AnimationPair links a surface to the prior surface it replaces.
type AnimationPair struct {
	CurrentID  string         `json:"current_id"`
	PreviousID string         `json:"previous_id"`
	Type       TransitionType `json:"type"`
}

// CachingHints tell the surface cache what to keep and what to drop.
// CacheableIDs and InvalidatedIDs are disjoint; WrapperIDs and ContentIDs
// partition their union. All slices are sorted.
type CachingHints struct {
	CacheableIDs              []string `json:"cacheable_ids"`
	InvalidatedIDs            []string `json:"invalidated_ids"`
	WrapperIDs                []string `json:"wrapper_ids"`
	ContentIDs                []string `json:"content_ids"`
	IsCrossNodeTypeNavigation bool     `json:"is_cross_node_type_navigation"`
}

// IsCacheable reports whether id is hinted as cacheable.
func (h CachingHints) IsCacheable(id string) bool {
	_, found := slices.BinarySearch(h.CacheableIDs, id)
	return found
}

// IsInvalidated reports whether id is hinted as invalidated.
func (h CachingHints) IsInvalidated(id string) bool {
	_, found := slices.BinarySearch(h.InvalidatedIDs, id)
	return found
}

// BackEdge names the surfaces a predictive back gesture moves between:
// the active entry of the deepest back stack and the entry beneath it.
// Only that entry is kept cacheable for the gesture.
type BackEdge struct {
	CurrentID  string `json:"current_id"`
	PreviousID string `json:"previous_id"`
}

// Result is the output of one flatten pass.
type Result struct {
	Surfaces       []Surface       `json:"surfaces"` // ascending ZOrder
	AnimationPairs []AnimationPair `json:"animation_pairs"`
	Hints          CachingHints    `json:"hints"`
	Back           *BackEdge       `json:"back,omitempty"`
}

// SurfaceIDs returns surface ids in z-order.
func (r *Result) SurfaceIDs() []string {
	ids := make([]string, len(r.Surfaces))
	for i, s := range r.Surfaces {
		ids[i] = s.ID
	}
	return ids
}

// Surface returns the surface with the given id.
func (r *Result) Surface(id string) (Surface, bool) {
	for _, s := range r.Surfaces {
		if s.ID == id {
			return s, true
		}
	}
	return Surface{}, false
}

// LiveSet returns the ids of every surface in the result.
func (r *Result) LiveSet() map[string]struct{} {
	live := make(map[string]struct{}, len(r.Surfaces))
	for _, s := range r.Surfaces {
		live[s.ID] = struct{}{}
	}
	return live
}
