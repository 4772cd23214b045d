// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/telekom/kestrel/internal/logger"
	"github.com/telekom/kestrel/internal/report"
	"github.com/telekom/kestrel/internal/traceroute"
	"github.com/telekom/kestrel/pkg/config"
)

// tracerouteCmd runs the traceroute command against a single host.
type tracerouteCmd struct {
	version   string
	out       io.Writer
	newClient func(r traceroute.Reporter) traceroute.Client
}

// traceDocument is the structured output of a trace.
type traceDocument struct {
	Target string           `json:"target" yaml:"target"`
	Hops   []traceroute.Hop `json:"hops" yaml:"hops"`
}

// NewCmdTraceroute creates the traceroute command
func NewCmdTraceroute(version string) *cobra.Command {
	c := &tracerouteCmd{
		version: version,
		out:     os.Stdout,
		newClient: func(r traceroute.Reporter) traceroute.Client {
			return traceroute.NewClient(traceroute.WithReporter(r))
		},
	}

	cmd := &cobra.Command{
		Use:   "traceroute HOST",
		Short: "Discovers the routers on the path to a host",
		Long: "Sends UDP probes with an increasing TTL to the host and prints the router\n" +
			"answering each of them, until the host itself answers or the hop ceiling is hit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logger.IntoContext(ctx, logger.NewLogger())

			cfg, err := loadConfig(ctx, viper.GetViper())
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			return c.run(ctx, cfg, traceroute.Target{Address: args[0]})
		},
	}

	cmd.Flags().IntP("max-hops", "m", traceroute.DefaultMaxTTL, "maximum number of hops")
	cmd.Flags().DurationP("timeout", "w", traceroute.DefaultTimeout, "time to wait for the response of each hop")
	cmd.Flags().IntP("port", "p", 0, "UDP destination port of the probes, random if 0")
	cmd.Flags().Bool("unprivileged", false, "receive ICMP errors through the socket error queue, which does not require root")
	cmd.Flags().Bool("resolve-names", false, "look up the names of the hops")
	bindFlags(cmd.Flags(), map[string]string{
		"traceroute.maxHops":      "max-hops",
		"traceroute.timeout":      "timeout",
		"traceroute.port":         "port",
		"traceroute.unprivileged": "unprivileged",
		"traceroute.resolveNames": "resolve-names",
	})

	return cmd
}

// run traces the route to target and prints the result in the configured format.
func (c *tracerouteCmd) run(ctx context.Context, cfg *config.Config, target traceroute.Target) (err error) {
	log := logger.FromContext(ctx)

	tel, err := startTelemetry(ctx, cfg, "traceroute", c.version)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, tel.finish(ctx))
	}()

	printer := report.NewPrinter(c.out)
	if cfg.Output.IsStructured() {
		printer = report.NewQuietPrinter()
	}
	client := c.newClient(traceroute.NewTextReporter(printer))
	if err := tel.register(client.Collectors()...); err != nil {
		return err
	}

	ctx, span := otel.Tracer("kestrel").Start(ctx, "traceroute", trace.WithAttributes(
		attribute.Stringer("traceroute.target", target),
	))
	defer span.End()

	opts := cfg.Traceroute
	res, err := client.Run(ctx, []traceroute.Target{target}, &opts)
	if err != nil {
		log.ErrorContext(ctx, "Traceroute failed", "target", target.String(), "error", err)
		return fmt.Errorf("traceroute failed: %w", err)
	}

	return report.Encode(c.out, cfg.Output, traceDocument{
		Target: target.String(),
		Hops:   res[target],
	})
}
