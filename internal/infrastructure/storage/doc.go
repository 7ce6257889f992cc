// Package storage is the key-value content store behind the desktop apps.
//
// Values are plain strings (JSON documents for structured content). Every
// successful Set is broadcast to subscribers so open windows can refresh.
//
// Drivers:
//   - memory: process-local map, lost on restart
//   - sqlite: single-file database via modernc.org/sqlite (no cgo)
package storage
