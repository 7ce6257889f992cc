// Package types provides shared data structures for the WebDesk backend.
//
// This package defines the geometry and wire types used across the desktop
// domain and the API layer, so neither depends on the other for them.
//
// Geometry:
//   - Point: a position in desktop pixels
//   - Size: a width/height pair
//   - Rect: a positioned size
//
// Request Types:
//   - PositionRequest, SizeRequest: REST window geometry bodies
//
// Example Usage:
//
//	r := types.RectOf(types.Point{X: 50, Y: 50}, types.Size{Width: 800, Height: 600})
//	if r.Contains(types.Point{X: 60, Y: 70}) {
//	    // pointer is over the window
//	}
package types
