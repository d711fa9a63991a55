// Package metrics exposes the prometheus collectors for the bridge
// orchestrator: accepted/rejected messages per type, the paused gauge, and
// committee voting power, following the lazy-singleton registry pattern used
// throughout this codebase's metrics packages.
package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type bridgeMetrics struct {
	messagesTotal   *prometheus.CounterVec
	limitRejections *prometheus.CounterVec
	paused          prometheus.Gauge
	committeePower  prometheus.Gauge
	committeeEpoch  prometheus.Gauge
}

var (
	bridgeOnce     sync.Once
	bridgeRegistry *bridgeMetrics
)

// Bridge returns the lazily-initialised bridge metrics registry.
func Bridge() *bridgeMetrics {
	bridgeOnce.Do(func() {
		bridgeRegistry = &bridgeMetrics{
			messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "nhbridge",
				Subsystem: "bridge",
				Name:      "messages_total",
				Help:      "Count of bridge messages processed segmented by message type and outcome.",
			}, []string{"message_type", "outcome"}),
			limitRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "nhbridge",
				Subsystem: "bridge",
				Name:      "limit_rejections_total",
				Help:      "Count of claims rejected because the route's rolling notional limit was exceeded.",
			}, []string{"route"}),
			paused: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "nhbridge",
				Subsystem: "bridge",
				Name:      "paused",
				Help:      "Indicates whether the bridge is in the emergency-paused state (1) or not (0).",
			}),
			committeePower: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "nhbridge",
				Subsystem: "committee",
				Name:      "total_voting_power_bps",
				Help:      "Total voting power in basis points held by the active committee.",
			}),
			committeeEpoch: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "nhbridge",
				Subsystem: "committee",
				Name:      "epoch",
				Help:      "Current committee epoch number.",
			}),
		}
		prometheus.MustRegister(
			bridgeRegistry.messagesTotal,
			bridgeRegistry.limitRejections,
			bridgeRegistry.paused,
			bridgeRegistry.committeePower,
			bridgeRegistry.committeeEpoch,
		)
	})
	return bridgeRegistry
}

// RecordMessage increments the message counter for messageType/outcome.
// outcome should be one of "accepted", "rejected", "idempotent".
func (m *bridgeMetrics) RecordMessage(messageType, outcome string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(labelOrUnknown(messageType), labelOrUnknown(outcome)).Inc()
}

// RecordLimitRejection increments the limiter-rejection counter for a route,
// identified by a caller-formatted "source->destination" label.
func (m *bridgeMetrics) RecordLimitRejection(route string) {
	if m == nil {
		return
	}
	m.limitRejections.WithLabelValues(labelOrUnknown(route)).Inc()
}

// SetPaused updates the paused gauge.
func (m *bridgeMetrics) SetPaused(paused bool) {
	if m == nil {
		return
	}
	if paused {
		m.paused.Set(1)
		return
	}
	m.paused.Set(0)
}

// SetCommitteeState updates the committee gauges after a roster change.
func (m *bridgeMetrics) SetCommitteeState(epoch uint64, totalVotingPowerBps uint32) {
	if m == nil {
		return
	}
	m.committeeEpoch.Set(float64(epoch))
	m.committeePower.Set(float64(totalVotingPowerBps))
}

func labelOrUnknown(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
