// Package window provides the window manager store for a desktop session.
//
// The Store is the sole authority over open windows: their geometry,
// visibility flags and z-order. Every other component requests mutations
// through its methods and never touches a Window directly.
//
// Invariants:
//   - At most one window per application id; reopening focuses (and
//     restores) the existing window instead of creating a duplicate
//   - Z-indexes come from a counter that only grows, so a later open or
//     focus always lands above every earlier one
//   - Operations on unknown ids are silent no-ops that return false
//
// Example Usage:
//
//	store := window.NewStore(window.DefaultOptions())
//	w, created := store.Open(desc)
//	store.Focus(w.ID)
//	store.UpdatePosition(w.ID, types.Point{X: 120, Y: 80})
//	store.Close(w.ID)
package window
