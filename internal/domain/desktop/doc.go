// Package desktop is the per-tab composition root. A Desktop owns one window
// store, its drag tracker, the chrome controllers and the app instances, and
// serializes every mutation on a single event loop goroutine that publishes
// scenes to subscribers once per frame.
package desktop
