// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/telekom/kestrel/pkg/config"
)

// bindFlags binds each flag to its configuration key.
// Flags take precedence over the environment and the config file.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// loadConfig returns the validated configuration of a run.
// Keys missing in v keep their default value.
func loadConfig(ctx context.Context, v *viper.Viper) (*config.Config, error) {
	cfg := config.Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}
