// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"

	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/spf13/cobra"
)

type cli struct {
	open Opener
	opts Options
}

// NewRootCommand builds the adm command tree. Commands that need the store
// obtain their services from open.
func NewRootCommand(open Opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:          "adm",
		Short:        "Administer report-desk reports, users, businesses and settings",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&c.opts.ConfigPath, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().BoolVarP(&c.opts.Verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		c.reportsCommand(),
		c.usersCommand(),
		c.businessesCommand(),
		c.settingsCommand(),
		newHashPasswordCommand(),
	)

	return root
}

type runFunc func(cmd *cobra.Command, args []string, services *service.Services) error

// withServices opens the services for the duration of one command.
func (c *cli) withServices(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts := c.opts
		opts.Stderr = cmd.ErrOrStderr()

		services, closeFn, err := c.open(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer closeFn(context.WithoutCancel(cmd.Context()))

		return fn(cmd, args, services)
	}
}

// applied reports the outcome of a mutation.
func applied(cmd *cobra.Command, ok bool, err error, done string) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotApplied
	}

	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
