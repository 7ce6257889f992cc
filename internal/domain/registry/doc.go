// Package registry provides the application descriptor registry for WebDesk.
//
// The registry is the static, process-wide list of launchable applications.
// It is seeded once at startup and read-only afterwards, so every desktop
// session shares the same descriptors.
//
// Components:
//   - Descriptor: id, display name, icon, kind and default window size
//   - Kind: closed set of application kinds (terminal, files, music, ...)
//   - App: the "render into a container" capability created per window
//   - Manager: ordered, read-only descriptor lookup
//   - Seeder: loads the embedded manifest and optional YAML/TOML overrides
//
// Manifest Format (YAML):
//
//	apps:
//	  - id: terminal
//	    name: Terminal
//	    icon: terminal
//	    kind: terminal
//	    default_size: {width: 900, height: 600}
//
// Example Usage:
//
//	manager := registry.NewManager()
//	if err := registry.NewSeeder(manager, logger).Seed(""); err != nil {
//	    // handle error
//	}
//	desc, ok := manager.Get("terminal")
package registry
