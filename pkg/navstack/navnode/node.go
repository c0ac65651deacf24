package navnode

// Kind enumerates the node variants of a navigation tree.
type Kind int

const (
	KindScreen Kind = iota // leaf destination
	KindStack              // transparent back stack
	KindTab                // tabbed container, one active branch
	KindPane               // multi-pane container, several visible slots
)

func (k Kind) String() string {
	switch k {
	case KindScreen:
		return "screen"
	case KindStack:
		return "stack"
	case KindTab:
		return "tab"
	case KindPane:
		return "pane"
	default:
		return "unknown"
	}
}

// Node is one element of a navigation tree. The variant set is closed:
// Screen, Stack, Tab and Pane are the only implementations.
type Node interface {
	Key() string
	Kind() Kind
	node() // marker method restricting implementations to this package
}

// Screen is a leaf destination.
type Screen struct {
	NodeKey     string
	Destination string // Route the content resolver renders for this screen
}

func (s Screen) Key() string { return s.NodeKey }
func (s Screen) Kind() Kind  { return KindScreen }
func (Screen) node()         {}

// Stack is a back stack. Only the active child is ever visible; a stack
// never draws anything of its own.
type Stack struct {
	NodeKey     string
	Children    []Node
	ActiveIndex int
}

func (s Stack) Key() string { return s.NodeKey }
func (s Stack) Kind() Kind  { return KindStack }
func (Stack) node()         {}

// Active returns the active child. Returns false for an empty stack.
func (s Stack) Active() (Node, bool) {
	if len(s.Children) == 0 {
		return nil, false
	}
	return s.Children[s.ActiveIndex], true
}

// Tab holds one branch per tab; ActiveIndex selects the visible one.
// PreviousActiveIndex, when set, names the branch that was active before
// the most recent switch.
type Tab struct {
	NodeKey             string
	Branches            []Node
	ActiveIndex         int
	PreviousActiveIndex *int
}

func (t Tab) Key() string { return t.NodeKey }
func (t Tab) Kind() Kind  { return KindTab }
func (Tab) node()         {}

// Active returns the active branch.
func (t Tab) Active() Node {
	return t.Branches[t.ActiveIndex]
}

// Previous returns the previously active branch index, if recorded.
func (t Tab) Previous() (int, bool) {
	if t.PreviousActiveIndex == nil {
		return 0, false
	}
	return *t.PreviousActiveIndex, true
}

// Role identifies the purpose of a pane slot.
type Role int

const (
	RolePrimary Role = iota
	RoleSecondary
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Slot is one pane position.
type Slot struct {
	Role    Role
	Node    Node
	Visible bool
}

// Pane shows several slots side by side.
type Pane struct {
	NodeKey string
	Slots   []Slot
}

func (p Pane) Key() string { return p.NodeKey }
func (p Pane) Kind() Kind  { return KindPane }
func (Pane) node()         {}

// VisibleSlots returns the visible slots in declaration order.
func (p Pane) VisibleSlots() []Slot {
	visible := make([]Slot, 0, len(p.Slots))
	for _, slot := range p.Slots {
		if slot.Visible {
			visible = append(visible, slot)
		}
	}
	return visible
}

// NewScreen creates a Screen.
func NewScreen(key, destination string) Screen {
	return Screen{NodeKey: key, Destination: destination}
}

// NewStack creates a Stack whose last child is active.
func NewStack(key string, children ...Node) Stack {
	active := 0
	if len(children) > 0 {
		active = len(children) - 1
	}
	return Stack{NodeKey: key, Children: children, ActiveIndex: active}
}

// NewTab creates a Tab with the given active branch and no switch history.
func NewTab(key string, active int, branches ...Node) Tab {
	return Tab{NodeKey: key, Branches: branches, ActiveIndex: active}
}

// NewPane creates a Pane.
func NewPane(key string, slots ...Slot) Pane {
	return Pane{NodeKey: key, Slots: slots}
}

// PrimarySlot creates a visible primary slot.
func PrimarySlot(n Node) Slot {
	return Slot{Role: RolePrimary, Node: n, Visible: true}
}

// SecondarySlot creates a secondary slot.
func SecondarySlot(n Node, visible bool) Slot {
	return Slot{Role: RoleSecondary, Node: n, Visible: visible}
}

// Index returns a pointer to i, for PreviousActiveIndex literals.
func Index(i int) *int {
	return &i
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
