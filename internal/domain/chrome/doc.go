// Package chrome sequences the cosmetic transitions of a window's title bar
// controls. The store mutation is applied immediately; the visual settle is
// deferred through a Scheduler so an exit animation can play.
package chrome
