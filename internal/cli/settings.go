// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/MKhiriev/report-desk/models"
	"github.com/spf13/cobra"
)

func (c *cli) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change the system settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the system settings",
			Args:  cobra.NoArgs,
			RunE: c.withServices(func(cmd *cobra.Command, _ []string, s *service.Services) error {
				settings, err := s.AdminService.GetSettings(cmd.Context())
				if err != nil {
					return err
				}
				renderSettings(cmd.OutOrStdout(), settings)
				return nil
			}),
		},
		c.settingsSetCommand(),
	)

	return cmd
}

func (c *cli) settingsSetCommand() *cobra.Command {
	var (
		registrations, maintenance, payments bool
		language                             string
	)

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Change the settings named by flags",
		Example: "  adm settings set --maintenance=true\n  adm settings set --language fr --payments=false",
		Args:    cobra.NoArgs,
	}
	cmd.RunE = c.withServices(func(cmd *cobra.Command, _ []string, s *service.Services) error {
		var update models.SettingsUpdate
		flags := cmd.Flags()
		if flags.Changed("registrations") {
			update.AllowNewRegistrations = &registrations
		}
		if flags.Changed("maintenance") {
			update.MaintenanceMode = &maintenance
		}
		if flags.Changed("payments") {
			update.AllowPayments = &payments
		}
		if flags.Changed("language") {
			lang := models.Language(language)
			update.DefaultLanguage = &lang
		}

		ok, err := s.AdminService.UpdateSettings(cmd.Context(), update)
		return applied(cmd, ok, err, "settings updated")
	})

	cmd.Flags().BoolVar(&registrations, "registrations", false, "allow new registrations")
	cmd.Flags().BoolVar(&maintenance, "maintenance", false, "maintenance mode")
	cmd.Flags().BoolVar(&payments, "payments", false, "allow payments")
	cmd.Flags().StringVar(&language, "language", "", "default language (en or fr)")

	return cmd
}
