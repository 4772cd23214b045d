// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Set(t *testing.T) {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.rtt))
	require.NoError(t, reg.Register(m.attempts))

	m.Set("10.0.0.1", Reply{Status: StatusReply, RTT: 20 * time.Millisecond})
	m.Set("10.0.0.1", Reply{Status: StatusTimeout})
	m.Set("10.0.0.1", Reply{Status: StatusTimeout})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attempts.WithLabelValues("10.0.0.1", "reply")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("10.0.0.1", "timeout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.rtt, "kestrel_ping_rtt_seconds"), "timeouts must not be observed")
}

func TestMetrics_GetCollectors(t *testing.T) {
	m := newMetrics()
	assert.Len(t, m.GetCollectors(), 2)
}
