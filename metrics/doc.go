// Package metrics holds the Prometheus collectors for the relay.
//
// Collectors live on the default registry under the "chessroom" namespace
// and are incremented directly by the transport and service layers. The api
// package exposes them on GET /metrics.
package metrics
