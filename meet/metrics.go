package meet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meet_active_rooms",
		Help: "Rooms with at least one connected peer",
	})

	metricConnectedPeers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meet_connected_peers",
		Help: "Currently connected signalling peers",
	})

	metricRelayedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meet_relayed_messages_total",
		Help: "Envelopes relayed between peers",
	}, []string{"type"})
)
