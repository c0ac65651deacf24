package navnode

// The helpers below never mutate their receiver; each returns a new value
// sharing unchanged children with the original.

// Push returns a stack with n appended after the active child. Children
// above the active one are discarded.
func (s Stack) Push(n Node) Stack {
	keep := 0
	if len(s.Children) > 0 {
		keep = s.ActiveIndex + 1
	}
	children := make([]Node, keep, keep+1)
	copy(children, s.Children[:keep])
	children = append(children, n)
	return Stack{NodeKey: s.NodeKey, Children: children, ActiveIndex: len(children) - 1}
}

// Pop returns a stack without its active child. Returns false when there is
// nothing beneath the active child to return to.
func (s Stack) Pop() (Stack, bool) {
	if s.ActiveIndex == 0 {
		return s, false
	}
	children := make([]Node, s.ActiveIndex)
	copy(children, s.Children[:s.ActiveIndex])
	return Stack{NodeKey: s.NodeKey, Children: children, ActiveIndex: s.ActiveIndex - 1}, true
}

// Depth returns the number of entries up to and including the active child.
func (s Stack) Depth() int {
	if len(s.Children) == 0 {
		return 0
	}
	return s.ActiveIndex + 1
}

// Select returns a tab with branch i active, recording the old active branch
// as PreviousActiveIndex.
func (t Tab) Select(i int) Tab {
	branches := make([]Node, len(t.Branches))
	copy(branches, t.Branches)
	return Tab{
		NodeKey:             t.NodeKey,
		Branches:            branches,
		ActiveIndex:         i,
		PreviousActiveIndex: Index(t.ActiveIndex),
	}
}

// WithBranch returns a tab with branch i replaced by n. Switch history is kept.
func (t Tab) WithBranch(i int, n Node) Tab {
	branches := make([]Node, len(t.Branches))
	copy(branches, t.Branches)
	branches[i] = n
	out := t
	out.Branches = branches
	return out
}

// SetVisible returns a pane with the visibility of the slot with role r set.
func (p Pane) SetVisible(r Role, visible bool) Pane {
	slots := make([]Slot, len(p.Slots))
	copy(slots, p.Slots)
	for i := range slots {
		if slots[i].Role == r {
			slots[i].Visible = visible
		}
	}
	return Pane{NodeKey: p.NodeKey, Slots: slots}
}

// WithSlotNode returns a pane with the node of the slot with role r replaced.
func (p Pane) WithSlotNode(r Role, n Node) Pane {
	slots := make([]Slot, len(p.Slots))
	copy(slots, p.Slots)
	for i := range slots {
		if slots[i].Role == r {
			slots[i].Node = n
		}
	}
	return Pane{NodeKey: p.NodeKey, Slots: slots}
}
