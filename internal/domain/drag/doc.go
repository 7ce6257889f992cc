// Package drag converts pointer gestures on a window's title bar into
// clamped position updates.
//
// The Tracker is a three-state machine (Idle -> Dragging -> Idle) that reads
// from a single in-flight Session record. Pointer moves only record the
// latest pointer; Flush, called once per animation frame, turns it into a
// position, so intermediate moves between frames are dropped rather than
// queued.
//
// Each axis is clamped to [0, viewport - margin] so a window can never be
// dragged fully off-screen, whatever the pointer velocity.
//
// Example Usage:
//
//	tracker := drag.NewTracker(viewport, store.UpdatePosition, drag.DefaultOptions())
//	tracker.Begin(drag.Gesture{WindowID: "terminal", Target: drag.RegionTitleBar, Pointer: p, Origin: w.Position})
//	tracker.Move(next)
//	pos, moved := tracker.Flush()
//	tracker.End()
package drag
