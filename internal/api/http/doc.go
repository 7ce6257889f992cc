// Package http implements the REST surface of the desktop server: the
// application registry, desktop sessions and their windows, the content
// store edit endpoints, and metrics.
//
// Window operations on unknown windows are not errors; they answer 200 with
// "applied": false, mirroring the store's silent no-op semantics.
package http
