package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(BroadcastsTotal)
	BroadcastsTotal.Inc()
	after := testutil.ToFloat64(BroadcastsTotal)

	if after != before+1 {
		t.Errorf("Expected broadcasts counter to rise by 1, got %f -> %f", before, after)
	}
}

func TestLabeledCounters(t *testing.T) {
	before := testutil.ToFloat64(EventsReceived.WithLabelValues("join_game"))
	EventsReceived.WithLabelValues("join_game").Inc()
	EventsReceived.WithLabelValues("chess_move").Inc()
	after := testutil.ToFloat64(EventsReceived.WithLabelValues("join_game"))

	if after != before+1 {
		t.Errorf("Expected join_game counter to rise by 1, got %f -> %f", before, after)
	}
}

func TestGauges(t *testing.T) {
	ConnectionsActive.Set(3)
	if got := testutil.ToFloat64(ConnectionsActive); got != 3 {
		t.Errorf("Expected connections gauge 3, got %f", got)
	}
	ConnectionsActive.Set(0)

	RoomsActive.Set(2)
	if got := testutil.ToFloat64(RoomsActive); got != 2 {
		t.Errorf("Expected rooms gauge 2, got %f", got)
	}
	RoomsActive.Set(0)
}
