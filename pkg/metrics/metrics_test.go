// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNew(t *testing.T) {
	m := New(Config{}, "v0.0.0")

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "go and process collectors must be registered")

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_gauge"})
	assert.NoError(t, m.GetRegistry().Register(gauge))
}

func TestMetrics_InitTracing(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "success - stdout exporter",
			config: Config{Exporter: STDOUT},
		},
		{
			name:   "success - otlp http exporter",
			config: Config{Exporter: HTTP, Url: "http://localhost:4318"},
		},
		{
			name:   "success - otlp grpc exporter with token",
			config: Config{Exporter: GRPC, Url: "http://localhost:4317", Token: "my-super-secret-token"},
		},
		{
			name:   "success - otlp grpc exporter with tls",
			config: Config{Exporter: GRPC, Url: "https://localhost:4317", TLS: TLSConfig{Enabled: true}},
		},
		{
			name:   "success - no exporter",
			config: Config{Exporter: NOOP},
		},
		{
			name:    "failure - unsupported exporter",
			config:  Config{Exporter: "unsupported"},
			wantErr: true,
		},
		{
			name:    "failure - missing certificate",
			config:  Config{Exporter: HTTP, Url: "https://localhost:4318", TLS: TLSConfig{Enabled: true, CertPath: "/does/not/exist.pem"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.config, "v0.0.0")
			err := m.InitTracing(t.Context())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			assert.True(t, ok, "InitTracing() must install an sdk tracer provider, got %T", otel.GetTracerProvider())
			require.NoError(t, m.Shutdown(t.Context()))
		})
	}
}

func TestMetrics_Shutdown_WithoutTracing(t *testing.T) {
	assert.NoError(t, New(Config{}, "v0.0.0").Shutdown(t.Context()))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	t.Run("no path configured", func(t *testing.T) {
		assert.NoError(t, New(Config{}, "v0.0.0").WriteTextfile(t.Context()))
	})

	t.Run("writes registry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kestrel.prom")
		m := New(Config{Textfile: path}, "v0.0.0")
		counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "kestrel_test_total", Help: "Test counter."})
		counter.Add(3)
		m.GetRegistry().MustRegister(counter)

		require.NoError(t, m.WriteTextfile(t.Context()))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "kestrel_test_total 3"), "textfile content:\n%s", b)
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "kestrel.prom")
		assert.Error(t, New(Config{Textfile: path}, "v0.0.0").WriteTextfile(t.Context()))
	})
}
