// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the assistant
// service: websocket connection gauges, relayed message counters and
// generation latency histograms.
//
// Metrics are exposed via the /metrics endpoint. All operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "shopglow"

// Subsystem for chat relay metrics
const chatSubsystem = "chat"

// ChatMetrics holds all Prometheus metrics for the chat relay.
//
// Initialize once at startup via InitMetrics().
type ChatMetrics struct {
	// ActiveConnections tracks currently joined websocket connections.
	ActiveConnections prometheus.Gauge

	// MessagesTotal counts relayed messages by sender.
	// Labels: sender (user, admin, violet)
	MessagesTotal *prometheus.CounterVec

	// AdminActivationsTotal counts customer->admin mode transitions.
	AdminActivationsTotal prometheus.Counter

	// RelayErrorsTotal counts error events sent to clients.
	// Labels: reason (unknown_session, duplicate_join, rate_limited,
	// invalid_event, unsupported_type)
	RelayErrorsTotal *prometheus.CounterVec

	// GenerationSeconds measures response generation duration,
	// including context assembly and the backend call.
	GenerationSeconds prometheus.Histogram

	// IntentRequestsTotal counts intent classifications by result.
	// Labels: intent
	IntentRequestsTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of ChatMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *ChatMetrics

// InitMetrics creates and registers all Prometheus metrics on the given
// registerer. Call once at application startup with
// prometheus.DefaultRegisterer; tests pass their own registry.
func InitMetrics(reg prometheus.Registerer) *ChatMetrics {
	factory := promauto.With(reg)
	DefaultMetrics = &ChatMetrics{
		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: chatSubsystem,
				Name:      "active_connections",
				Help:      "Number of currently joined websocket connections",
			},
		),

		MessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: chatSubsystem,
				Name:      "messages_total",
				Help:      "Total relayed chat messages by sender",
			},
			[]string{"sender"},
		),

		AdminActivationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: chatSubsystem,
				Name:      "admin_activations_total",
				Help:      "Total customer to admin mode transitions",
			},
		),

		RelayErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: chatSubsystem,
				Name:      "relay_errors_total",
				Help:      "Total error events sent to clients by reason",
			},
			[]string{"reason"},
		),

		GenerationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: chatSubsystem,
				Name:      "generation_seconds",
				Help:      "Response generation duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
		),

		IntentRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: chatSubsystem,
				Name:      "intent_requests_total",
				Help:      "Total intent classification requests by resulting intent",
			},
			[]string{"intent"},
		),
	}

	return DefaultMetrics
}
