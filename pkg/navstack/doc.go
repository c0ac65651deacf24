// Package navstack renders hierarchical navigation state (stacks, tabs and
// panes) as a flat, z-ordered list of cached surfaces.
//
// A navigator owns the navigation state and hands a new immutable
// navnode.Tree to a scene.Scene on every change. The scene flattens the tree,
// keeps rendered output in a reference counted cache, resolves container
// chrome through a wrapper registry and drives the predictive back gesture.
//
// # Basic Usage
//
//	cfg, err := navstack.LoadConfig("navstack.toml")
//	if err != nil {
//	    return err
//	}
//
//	s := navstack.New(scene.Contents{
//	    "/home":   renderHome,
//	    "/detail": renderDetail,
//	}, cfg)
//
//	tree, err := navnode.NewTree(navnode.NewStack("root",
//	    navnode.NewScreen("home", "/home"),
//	))
//	if err != nil {
//	    return err
//	}
//	if _, err := s.Apply(tree); err != nil {
//	    return err
//	}
//
// # Configuration
//
//	[log]
//	level = "info"
//
//	[gesture]
//	max_progress = 0.25
//	commit_duration = "200ms"
//	cancel_duration = "150ms"
//	edge = "left"
//
//	[animation]
//	push = "300ms"
//	tab_switch = "200ms"
//
//	[layout]
//	pane_mode = "compact"
//
// NAVSTACK_LOG_LEVEL and NAVSTACK_MAX_PROGRESS override the file.
package navstack
