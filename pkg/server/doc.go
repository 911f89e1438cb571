// Package server exposes routerstore over HTTP.
//
// It is the glue between a router and the state container: a client posts the
// router state snapshot of every completed navigation, the server serializes
// it, feeds it to connected devtools and optionally archives it.
//
// Routes:
//
//	POST /v1/serialize?serializer=full|minimal[&archive=<id>]
//	GET  /v1/devtools            WebSocket feed of serialized states
//	GET  /v1/devtools/history    recorded states as JSON
//	GET  /v1/archive             archived state ids
//	GET  /v1/archive/{id}        one archived state
//	GET  /metrics                Prometheus metrics
//	GET  /healthz                liveness
package server
