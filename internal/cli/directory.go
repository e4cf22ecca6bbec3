// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/spf13/cobra"
)

func (c *cli) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and ban users",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all users",
			Args:  cobra.NoArgs,
			RunE: c.withServices(func(cmd *cobra.Command, _ []string, s *service.Services) error {
				users, err := s.AdminService.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				renderUsers(cmd.OutOrStdout(), users)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "ban <id>",
			Short: "Ban a user",
			Args:  cobra.ExactArgs(1),
			RunE: c.withServices(func(cmd *cobra.Command, args []string, s *service.Services) error {
				ok, err := s.AdminService.BanUser(cmd.Context(), args[0])
				return applied(cmd, ok, err, "banned "+args[0])
			}),
		},
	)

	return cmd
}

func (c *cli) businessesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "businesses",
		Short: "List and approve businesses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all businesses",
			Args:  cobra.NoArgs,
			RunE: c.withServices(func(cmd *cobra.Command, _ []string, s *service.Services) error {
				businesses, err := s.AdminService.ListBusinesses(cmd.Context())
				if err != nil {
					return err
				}
				renderBusinesses(cmd.OutOrStdout(), businesses)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "approve <id>",
			Short: "Approve a business",
			Args:  cobra.ExactArgs(1),
			RunE: c.withServices(func(cmd *cobra.Command, args []string, s *service.Services) error {
				ok, err := s.AdminService.ApproveBusiness(cmd.Context(), args[0])
				return applied(cmd, ok, err, "approved "+args[0])
			}),
		},
	)

	return cmd
}
