// Package gesture drives an interruptible predictive back transition.
//
// The controller is a small state machine:
//
//	Idle --Begin--> Tracking --Commit--> Committing --Tick...--> Idle
//	                         --Cancel--> Cancelling --Tick...--> Idle
//
// Begin locks the current and previous surface in the surface cache. While
// tracking, Update takes raw progress, clamps it to Config.MaxProgress and
// the transforms are recomputed from it; the cached output is never touched.
// Commit runs the back action and animates to MaxProgress; Cancel animates
// back to zero. Both release every lock when their animation ends, and
// Abort releases them immediately.
//
// # Basic Usage
//
//	ctrl := gesture.New(surfaces, gesture.WithBackAction(navigator.Back))
//
//	ctrl.Begin(back.CurrentID, back.PreviousID)
//	ctrl.Update(0.1)
//	ctrl.Update(0.4) // clamped to 0.25
//	ctrl.Cancel()
//	for ctrl.Active() {
//	    ctrl.Tick(frameTime)
//	}
//
// Events received in the wrong phase (progress while idle, a second Begin)
// are ignored and logged at debug level; input timing races make them
// routine.
package gesture
