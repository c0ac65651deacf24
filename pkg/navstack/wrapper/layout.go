package wrapper

import (
	"fmt"
	"slices"

	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
)

// PaneMode controls how many pane slots the default layout shows.
type PaneMode int

const (
	PaneExpanded PaneMode = iota // every visible slot side by side
	PaneCompact                  // primary slot only
)

func (m PaneMode) String() string {
	if m == PaneCompact {
		return "compact"
	}
	return "expanded"
}

func (m PaneMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *PaneMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "expanded", "":
		*m = PaneExpanded
	case "compact":
		*m = PaneCompact
	default:
		return &UnknownPaneModeError{Value: string(text)}
	}
	return nil
}

// UnknownPaneModeError is returned when decoding an unrecognised pane mode.
type UnknownPaneModeError struct {
	Value string
}

func (e *UnknownPaneModeError) Error() string {
	return fmt.Sprintf("wrapper: unknown pane mode %q", e.Value)
}

// Passthrough is the output of the default layout. It carries no chrome;
// the renderer draws the container's content directly.
type Passthrough struct {
	Key string
}

// DefaultLayout applies when no wrapper resolves. It holds no state.
type DefaultLayout struct {
	Mode PaneMode
}

// Render returns the passthrough output for c.
func (DefaultLayout) Render(c Container) (any, error) {
	return Passthrough{Key: c.Key}, nil
}

// VisibleRoles returns the roles of the slots of p that are drawn: every
// visible slot when expanded, only the primary slot when compact.
func (l DefaultLayout) VisibleRoles(p navnode.Pane) []navnode.Role {
	var roles []navnode.Role
	for _, s := range p.VisibleSlots() {
		if l.Mode == PaneCompact && s.Role != navnode.RolePrimary {
			continue
		}
		roles = append(roles, s.Role)
	}
	return roles
}

// Shows reports whether the slot with role r of p is drawn.
func (l DefaultLayout) Shows(p navnode.Pane, r navnode.Role) bool {
	return slices.Contains(l.VisibleRoles(p), r)
}

// ContainerFor describes n for a wrapper function. n must be a Tab or Pane.
func (l DefaultLayout) ContainerFor(n navnode.Node) Container {
	c := Container{Key: n.Key(), Kind: n.Kind()}
	switch v := n.(type) {
	case navnode.Tab:
		c.ActiveBranch = v.ActiveIndex
	case navnode.Pane:
		c.VisibleRoles = l.VisibleRoles(v)
	}
	return c
}

// RenderWith resolves and runs the wrapper for n through r, falling back to l.
// A nil resolver always falls back.
func RenderWith(r Resolver, l DefaultLayout, n navnode.Node) (any, error) {
	c := l.ContainerFor(n)
	if r != nil {
		if fn, ok := r.Resolve(c.Key); ok {
			return fn(c)
		}
	}
	return l.Render(c)
}
