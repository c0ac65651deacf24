package scene

import (
	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
)

// ContentFunc renders the body of a destination screen.
type ContentFunc func(screen navnode.Screen) (any, error)

// ContentResolver looks up content renderers by destination.
type ContentResolver interface {
	Resolve(destination string) (ContentFunc, bool)
}

// Contents is a ContentResolver backed by a map from destination to renderer.
type Contents map[string]ContentFunc

func (c Contents) Resolve(destination string) (ContentFunc, bool) {
	fn, ok := c[destination]
	return fn, ok && fn != nil
}

// Region is the cached output of a Tab or Pane content surface. It marks the
// area a container hands to its active branch or slot.
type Region struct {
	Container string
	Branch    string // tab branch index, empty for panes
	Role      string // pane slot role, empty for tabs
}
