// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

//go:generate go run gen-docs.go gen-docs --path ../../docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	kestrelcmd "github.com/telekom/kestrel/cmd"
)

func main() {
	execute()
}

func execute() {
	rootCmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generates docs for kestrel",
	}
	rootCmd.AddCommand(NewCmdGenDocs())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCmdGenDocs creates a new gen-docs command
func NewCmdGenDocs() *cobra.Command {
	var (
		docPath string
		man     bool
	)

	cmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generate markdown documentation",
		Long:  `Generate the markdown documentation of the kestrel commands and their flags`,
		RunE:  runGenDocs(&docPath, &man),
	}

	cmd.PersistentFlags().StringVar(&docPath, "path", "docs", "directory path where the files will be created")
	cmd.PersistentFlags().BoolVar(&man, "man", false, "generate man pages instead of markdown")

	return cmd
}

// runGenDocs generates the documentation files of the command tree
func runGenDocs(path *string, man *bool) func(cmd *cobra.Command, args []string) error {
	c := kestrelcmd.BuildCmd("")
	c.DisableAutoGenTag = false
	return func(_ *cobra.Command, _ []string) error {
		if *man {
			header := &doc.GenManHeader{Title: "KESTREL", Section: "8"}
			if err := doc.GenManTree(c, header, *path); err != nil {
				return fmt.Errorf("failed to generate man pages: %w", err)
			}
			return nil
		}
		if err := doc.GenMarkdownTree(c, *path); err != nil {
			return fmt.Errorf("failed to generate docs: %w", err)
		}
		return nil
	}
}
