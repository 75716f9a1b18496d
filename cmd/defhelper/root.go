/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "defhelper",
		Short:         "Definition registry tooling",
		Long:          `Seed, inspect and journal a DefinitionHelper registry from the command line.`,
		Version:       definitionhelper.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newVersionCmd(), newSeedCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := definitionhelper.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "DefinitionHelper version %s\n", info.Version)
			fmt.Fprintf(out, "API version: %d\n", info.APIVersion)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}
