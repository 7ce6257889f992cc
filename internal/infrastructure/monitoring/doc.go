/*
Package monitoring provides Prometheus metrics for the desktop server.

# Overview

Each Metrics value owns a private registry, so tests and multiple servers in
one process never collide on metric names. It implements the desktop and
session metric hooks directly.

# Features

- HTTP request metrics (count, latency, response size) by route template
- Desktop session gauge
- Window open/close counters by application kind
- Window operation, drag update and scene publish counters
- WebSocket connection gauge and message counters

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	sessions.SetMetrics(metrics)
*/
package monitoring
