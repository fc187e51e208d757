// Package server exposes a workbench over HTTP.
//
// # Endpoints
//
//	GET  /                          HTML tree chart of the selected tree
//	GET  /api/v1/health             liveness and uptime
//	GET  /api/v1/tree               kind, order, version, keys and snapshot
//	POST /api/v1/tree/insert        {"key": n}
//	POST /api/v1/tree/delete        {"key": n}
//	GET  /api/v1/tree/search?key=n  {"found": bool}, marks the holding node
//	PUT  /api/v1/tree/settings      {"kind": "bplustree", "order": 4}
//	POST /api/v1/tree/reset
//	GET  /api/v1/tree/feed          WebSocket stream of tree states
//
// # Errors
//
// Failures are reported as JSON:
//
//	{"error": "invalid_order", "code": 400, "message": "..."}
//
// # Concurrency
//
// The workbench is single threaded, so every request that touches it holds
// one mutex. Feed clients receive states through their own buffered
// channels; a slow client loses intermediate states, never the latest one.
package server
