package navnode

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	naverrors "github.com/BrandonKowalski/navstack/pkg/navstack/errors"
)

// Entry describes where a node sits in a tree.
type Entry struct {
	Node      Node
	Path      string // e.g. "$.branches[1].children[0]"
	Reachable bool   // on the active path or in a visible pane slot
}

// Tree is a validated, immutable navigation snapshot. Keys are unique across
// the whole tree, so they can be used directly as cache keys.
type Tree struct {
	root    Node
	entries map[string]Entry
	screens []Screen
}

// NewTree validates root and indexes every node by key. Keys are compared
// after NFC normalization so canonically equivalent spellings collide.
func NewTree(root Node) (*Tree, error) {
	b := &treeBuilder{
		entries: make(map[string]Entry),
		seen:    make(map[string]string),
	}
	if err := b.visit(root, "$", true); err != nil {
		return nil, err
	}
	return &Tree{root: root, entries: b.entries, screens: b.screens}, nil
}

// MustTree is like NewTree but panics on an invalid tree.
func MustTree(root Node) *Tree {
	t, err := NewTree(root)
	if err != nil {
		panic(err)
	}
	return t
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.root
}

// Lookup returns the node with the given key.
func (t *Tree) Lookup(key string) (Node, bool) {
	e, ok := t.entries[key]
	return e.Node, ok
}

// Entry returns the index entry for key.
func (t *Tree) Entry(key string) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Reachable reports whether key is on the active path of the tree.
func (t *Tree) Reachable(key string) bool {
	return t.entries[key].Reachable
}

// ReachableScreens returns every reachable screen in depth-first order.
func (t *Tree) ReachableScreens() []Screen {
	out := make([]Screen, len(t.screens))
	copy(out, t.screens)
	return out
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.entries)
}

type treeBuilder struct {
	entries map[string]Entry
	seen    map[string]string // normalized key or generated surface id -> path
	screens []Screen
}

// claim records id as taken by the node at path. Node keys and the surface
// ids generated for containers share one namespace, since both end up as
// cache keys.
func (b *treeBuilder) claim(id, path string) error {
	normalized := norm.NFC.String(id)
	if first, dup := b.seen[normalized]; dup {
		return naverrors.NewDuplicateKeyError(id, first, path)
	}
	b.seen[normalized] = path
	return nil
}

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", naverrors.ErrInvalidTree, path, fmt.Sprintf(format, args...))
}

func (b *treeBuilder) visit(n Node, path string, reachable bool) error {
	if n == nil {
		return invalid(path, "nil node")
	}
	key := n.Key()
	if key == "" {
		return invalid(path, "empty key")
	}

	if err := b.claim(key, path); err != nil {
		return err
	}
	for _, id := range surfaceIDs(n) {
		if err := b.claim(id, path); err != nil {
			return err
		}
	}
	b.entries[key] = Entry{Node: n, Path: path, Reachable: reachable}

	switch node := n.(type) {
	case Screen:
		if reachable {
			b.screens = append(b.screens, node)
		}
		return nil

	case Stack:
		if len(node.Children) == 0 {
			if node.ActiveIndex != 0 {
				return invalid(path, "empty stack %q has active index %d", key, node.ActiveIndex)
			}
			return nil
		}
		if node.ActiveIndex < 0 || node.ActiveIndex >= len(node.Children) {
			return invalid(path, "stack %q active index %d out of range [0,%d)", key, node.ActiveIndex, len(node.Children))
		}
		for i, child := range node.Children {
			childPath := fmt.Sprintf("%s.children[%d]", path, i)
			if err := b.visit(child, childPath, reachable && i == node.ActiveIndex); err != nil {
				return err
			}
		}
		return nil

	case Tab:
		if len(node.Branches) == 0 {
			return invalid(path, "tab %q has no branches", key)
		}
		if node.ActiveIndex < 0 || node.ActiveIndex >= len(node.Branches) {
			return invalid(path, "tab %q active index %d out of range [0,%d)", key, node.ActiveIndex, len(node.Branches))
		}
		if prev, ok := node.Previous(); ok && (prev < 0 || prev >= len(node.Branches)) {
			return invalid(path, "tab %q previous index %d out of range [0,%d)", key, prev, len(node.Branches))
		}
		for i, branch := range node.Branches {
			branchPath := fmt.Sprintf("%s.branches[%d]", path, i)
			if err := b.visit(branch, branchPath, reachable && i == node.ActiveIndex); err != nil {
				return err
			}
		}
		return nil

	case Pane:
		roles := make(map[Role]bool, len(node.Slots))
		for i, slot := range node.Slots {
			slotPath := fmt.Sprintf("%s.slots[%d]", path, i)
			if roles[slot.Role] {
				return invalid(slotPath, "pane %q repeats role %s", key, slot.Role)
			}
			roles[slot.Role] = true
			if err := b.visit(slot.Node, slotPath, reachable && slot.Visible); err != nil {
				return err
			}
		}
		return nil

	default:
		return invalid(path, "unsupported node type %T", n)
	}
}
