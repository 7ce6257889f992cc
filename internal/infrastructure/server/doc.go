// Package server wires the desktop service together.
//
// Server Lifecycle:
//  1. Validate configuration
//  2. Initialize logger and metrics
//  3. Open the content store
//  4. Seed the application registry (embedded manifest or override file)
//  5. Build the app catalog and session manager
//  6. Setup HTTP routes, middleware and the /desktop WebSocket
//  7. Serve until the context is cancelled
//  8. Close sessions, storage and flush logs
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
