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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/telekom/kestrel/internal/logger"
	"github.com/telekom/kestrel/internal/packet"
	"github.com/telekom/kestrel/internal/ping"
	"github.com/telekom/kestrel/internal/report"
	"github.com/telekom/kestrel/pkg/config"
)

//go:generate go tool moq -out ping_moq.go . pingRunner
type pingRunner interface {
	Run(ctx context.Context, hosts []string, opts ping.Options) (ping.Result, error)
	Collectors() []prometheus.Collector
}

// pingCmd runs the ping command against a set of hosts.
type pingCmd struct {
	version   string
	out       io.Writer
	newRunner func(r ping.Reporter) pingRunner
}

// NewCmdPing creates the ping command
func NewCmdPing(version string) *cobra.Command {
	c := &pingCmd{
		version: version,
		out:     os.Stdout,
		newRunner: func(r ping.Reporter) pingRunner {
			return ping.New(ping.WithReporter(r))
		},
	}

	cmd := &cobra.Command{
		Use:   "ping HOST [HOST...]",
		Short: "Sends ICMP echo requests to one or more hosts",
		Long: "Pings every host concurrently. The attempts of a single host are sequential\n" +
			"and every line printed for a host is prefixed with the name of its worker.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logger.IntoContext(ctx, logger.NewLogger())

			cfg, err := loadConfig(ctx, viper.GetViper())
			if err != nil {
				return err
			}
			hosts, err := c.hosts(ctx, cfg, args)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			return c.run(ctx, cfg, hosts)
		},
	}

	cmd.Flags().IntP("count", "n", ping.DefaultCount, "number of echo requests sent to every host")
	cmd.Flags().DurationP("timeout", "W", ping.DefaultTimeout, "time to wait for each reply")
	cmd.Flags().IntP("size", "s", packet.DefaultPayloadSize, "payload size of the echo requests in bytes")
	cmd.Flags().Bool("unprivileged", false, "use datagram ICMP sockets, which do not require root")
	bindFlags(cmd.Flags(), map[string]string{
		"ping.count":        "count",
		"ping.timeout":      "timeout",
		"ping.size":         "size",
		"ping.unprivileged": "unprivileged",
	})

	return cmd
}

// hosts returns the hosts given as arguments followed by the hosts of the targets file.
func (c *pingCmd) hosts(ctx context.Context, cfg *config.Config, args []string) ([]string, error) {
	hosts := args
	if cfg.TargetsFile != "" {
		targets, err := config.NewFileLoader(cfg.TargetsFile).Load(ctx)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, targets...)
	}
	if len(hosts) == 0 {
		return nil, errors.New("at least one host is required")
	}
	return hosts, nil
}

// run pings the hosts and prints the result in the configured format.
func (c *pingCmd) run(ctx context.Context, cfg *config.Config, hosts []string) (err error) {
	log := logger.FromContext(ctx)

	tel, err := startTelemetry(ctx, cfg, "ping", c.version)
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
	runner := c.newRunner(ping.NewTextReporter(printer))
	if err := tel.register(runner.Collectors()...); err != nil {
		return err
	}

	ctx, span := otel.Tracer("kestrel").Start(ctx, "ping", trace.WithAttributes(
		attribute.StringSlice("ping.hosts", hosts),
	))
	defer span.End()

	res, err := runner.Run(ctx, hosts, cfg.Ping)
	if err != nil {
		log.ErrorContext(ctx, "Ping failed", "error", err)
		return fmt.Errorf("ping failed: %w", err)
	}

	if err := report.Encode(c.out, cfg.Output, res); err != nil {
		return err
	}
	return pingErr(ctx, res)
}

// pingErr returns the failures of a finished ping run.
// Timeouts are an outcome, not a failure.
func pingErr(ctx context.Context, res ping.Result) error {
	var errs []error
	for _, h := range res {
		if err := h.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.Host, err))
			continue
		}
		for _, r := range h.Replies {
			if r.Status == ping.StatusSocketError {
				errs = append(errs, fmt.Errorf("%s: %w", h.Host, r.Err))
				break
			}
		}
	}
	if len(errs) == 0 && ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.Join(errs...)
}
