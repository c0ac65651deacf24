// Package scene drives the flattener, the surface cache, wrapper resolution
// and the back gesture from one render thread.
//
// A Scene owns the prior tree and the prior flatten result. Each navigation
// state change goes through Apply; each frame calls Frame to get the draw
// list in z-order with a transform per surface.
//
// # Basic Usage
//
//	s := scene.New(scene.Contents{
//	    "/home":   renderHome,
//	    "/detail": renderDetail,
//	}, scene.WithWrappers(registry))
//
//	if _, err := s.Apply(tree); err != nil {
//	    return err
//	}
//
//	for _, op := range s.Frame(progress) {
//	    draw(op.Output, op.Transform)
//	}
//	if progress >= 1 {
//	    s.SettleTransitions()
//	}
//
// Surfaces taking part in a transition stay locked in the cache from the
// Apply that started it until SettleTransitions or the next Apply.
package scene
