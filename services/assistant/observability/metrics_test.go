// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	m := InitMetrics(prometheus.NewRegistry())
	require.NotNil(t, m)
	assert.Same(t, m, DefaultMetrics)

	m.ActiveConnections.Inc()
	m.MessagesTotal.WithLabelValues("user").Inc()
	m.MessagesTotal.WithLabelValues("violet").Inc()
	m.AdminActivationsTotal.Inc()
	m.RelayErrorsTotal.WithLabelValues("unknown_session").Inc()
	m.GenerationSeconds.Observe(0.3)
	m.IntentRequestsTotal.WithLabelValues("general_inquiry").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesTotal.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdminActivationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RelayErrorsTotal.WithLabelValues("unknown_session")))
}

func TestInitMetrics_FreshRegistryPerCall(t *testing.T) {
	first := InitMetrics(prometheus.NewRegistry())
	second := InitMetrics(prometheus.NewRegistry())

	// Re-initializing on a new registry replaces the singleton without
	// a duplicate-registration panic.
	assert.NotSame(t, first, second)
	assert.Same(t, second, DefaultMetrics)
}
