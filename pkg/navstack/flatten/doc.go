// Package flatten turns a navigation tree into an ordered list of drawable
// surfaces, annotated with caching hints and animation pairings.
//
// Each node variant flattens differently:
//
//	Screen  one content surface with the screen key as id
//	Stack   nothing of its own; flattens its active child only, handing it
//	        the previous active child's surface for push/pop pairing
//	Tab     "{key}-wrapper" plus "{key}-content-{activeIndex}", then the
//	        active branch beneath the content surface
//	Pane    "{key}-wrapper" plus "{key}-content-{role}" per visible slot
//
// Z-order grows by constants.ZLevelStep per nesting level, so ancestors
// always draw below descendants and siblings never collide.
//
// # Basic Usage
//
//	prev := navnode.MustTree(oldRoot)
//	cur := navnode.MustTree(newRoot)
//
//	result := flatten.Flatten(cur, prev)
//	for _, s := range result.Surfaces {
//	    // draw s, fetching its output from the surface cache by s.ID
//	}
//	for _, pair := range result.AnimationPairs {
//	    // animate pair.CurrentID in over pair.PreviousID
//	}
//
// # Caching Hints
//
// Navigating across node types (a Stack root becoming a Tab root, a Tab
// pushed onto a stack of screens) recaches the entered container's wrapper
// and content and sets IsCrossNodeTypeNavigation. Switching branches within
// a Tab caches only the new content and invalidates the old; the wrapper is
// left alone.
package flatten
