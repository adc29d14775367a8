/*
Package monitoring provides metrics collection for the file manager service.

# Overview

Metrics are Prometheus collectors held on a per-instance registry, so a
process (or a test) may create as many collectors as it needs.

# Features

- HTTP request metrics (count, latency)
- File operation metrics (paste, delete, create, rename, restore, empty)
- Navigation outcomes (ok, mount prompt, not a directory, not found)
- Undo attempts and stack depth
- Recycle bin, clipboard and mount gauges
- WebSocket connection metrics

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "paste")
	err := ops.PasteItems(ctx, dest)
	timer.Stop(err)
*/
package monitoring
