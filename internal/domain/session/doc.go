// Package session tracks the live desktops, one per connected browser tab.
//
// Sessions are ephemeral: a desktop's loop runs from Create until Close (or
// CloseAll at shutdown) and nothing about it is persisted.
//
// Example Usage:
//
//	manager := session.NewManager(cfg, deps, logger)
//	desk, err := manager.Create(ctx)
//	defer manager.Close(desk.ID())
package session
