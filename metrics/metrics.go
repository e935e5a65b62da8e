package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chessroom"

// Collectors are registered on the default registry and exposed via the
// /metrics route.
var (
	// EventsReceived counts inbound client events by type tag. Frames that
	// fail to decode are counted under the pseudo-type "invalid".
	EventsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_received_total",
		Help:      "Inbound client events by type.",
	}, []string{"type"})

	// EventsRejected counts events that were refused or silently dropped.
	EventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_rejected_total",
		Help:      "Inbound events rejected or dropped, by reason.",
	}, []string{"reason"})

	// BroadcastsTotal counts room fan-outs (one per event, not per receiver).
	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_total",
		Help:      "Events fanned out to room audiences.",
	})

	// MessagesDropped counts payloads lost to closed or slow connections.
	MessagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_dropped_total",
		Help:      "Outbound payloads dropped instead of delivered.",
	})

	// ConnectionsActive tracks open websocket connections.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connections_active",
		Help:      "Currently open websocket connections.",
	})

	// RoomsActive tracks rooms held by the registry.
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rooms_active",
		Help:      "Rooms currently held in the registry.",
	})

	// EventHandleSeconds times event handling from decode to fan-out.
	EventHandleSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_handle_seconds",
		Help:      "Time spent handling one inbound event.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type"})
)
