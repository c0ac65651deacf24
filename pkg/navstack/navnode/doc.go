// Package navnode defines the navigation-state tree consumed by the flattener.
//
// A tree is built from four node variants:
//
//	Screen  leaf destination
//	Stack   back stack; only the active child is visible, draws nothing itself
//	Tab     one branch per tab; draws a wrapper around the active branch
//	Pane    several slots shown together; draws a wrapper around visible slots
//
// Trees are immutable snapshots. The navigator builds a new one on every
// state change, using the helpers on each variant (Stack.Push, Tab.Select,
// Pane.SetVisible, ...) which return modified copies.
//
// # Validation
//
// Node keys double as cache keys, so they must be unique across the whole
// tree. NewTree enforces this up front and rejects the snapshot with a
// *errors.DuplicateKeyError on collision:
//
//	tree, err := navnode.NewTree(navnode.NewTab("tabs", 0,
//	    navnode.NewStack("home", navnode.NewScreen("feed", "/feed")),
//	    navnode.NewStack("profile", navnode.NewScreen("me", "/me")),
//	))
//	if err != nil {
//	    return err
//	}
//
// Only validated trees can be flattened.
package navnode
