// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

// Exporter selects where the traces of a run are sent to.
type Exporter string

const (
	// NOOP drops all spans. This is the default.
	NOOP Exporter = ""
	// STDOUT writes spans as JSON to stderr, keeping stdout for probe output.
	STDOUT Exporter = "stdout"
	// HTTP exports spans to an OTLP collector over HTTP.
	HTTP Exporter = "http"
	// GRPC exports spans to an OTLP collector over gRPC.
	GRPC Exporter = "grpc"
)

func (e Exporter) String() string {
	if e == NOOP {
		return "noop"
	}
	return string(e)
}

// Validate checks whether the exporter is supported.
func (e Exporter) Validate() error {
	switch e {
	case NOOP, "noop", STDOUT, HTTP, GRPC:
		return nil
	default:
		return fmt.Errorf("unsupported exporter %q, must be one of noop, stdout, http or grpc", string(e))
	}
}

// IsExporting reports whether the exporter sends spans to a collector.
func (e Exporter) IsExporting() bool {
	return e == HTTP || e == GRPC
}

// Create builds the span exporter described by config.
func (e Exporter) Create(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	switch e {
	case NOOP, "noop":
		return &noopExporter{}, nil
	case STDOUT:
		return stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	case HTTP:
		return newHTTPExporter(ctx, config)
	case GRPC:
		return newGRPCExporter(ctx, config)
	default:
		return nil, e.Validate()
	}
}

func newHTTPExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(config.Url)}
	if config.Token != "" {
		opts = append(opts, otlptracehttp.WithHeaders(authHeader(config.Token)))
	}

	if !config.TLS.Enabled {
		opts = append(opts, otlptracehttp.WithInsecure())
		return otlptracehttp.New(ctx, opts...)
	}

	tlsCfg, err := config.TLS.clientConfig()
	if err != nil {
		return nil, err
	}
	return otlptracehttp.New(ctx, append(opts, otlptracehttp.WithTLSClientConfig(tlsCfg))...)
}

func newGRPCExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(config.Url)}
	if config.Token != "" {
		opts = append(opts, otlptracegrpc.WithHeaders(authHeader(config.Token)))
	}

	if !config.TLS.Enabled {
		opts = append(opts, otlptracegrpc.WithInsecure())
		return otlptracegrpc.New(ctx, opts...)
	}

	tlsCfg, err := config.TLS.clientConfig()
	if err != nil {
		return nil, err
	}
	return otlptracegrpc.New(ctx, append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(tlsCfg)))...)
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)}
}

// clientConfig returns the tls configuration trusting the configured certificate
// in addition to the system pool.
func (c TLSConfig) clientConfig() (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.CertPath == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(c.CertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificate found in %s", c.CertPath)
	}
	cfg.RootCAs = pool
	return cfg, nil
}

var _ sdktrace.SpanExporter = (*noopExporter)(nil)

// noopExporter drops every span.
type noopExporter struct{}

func (*noopExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (*noopExporter) Shutdown(context.Context) error                             { return nil }
