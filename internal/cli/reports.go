// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/MKhiriev/report-desk/models"
	"github.com/spf13/cobra"
)

func (c *cli) reportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"r"},
		Short:   "List, inspect and answer user reports",
	}

	cmd.AddCommand(
		c.reportsListCommand(),
		&cobra.Command{
			Use:   "stats",
			Short: "Show report counts by status and type",
			Args:  cobra.NoArgs,
			RunE: c.withServices(func(cmd *cobra.Command, _ []string, s *service.Services) error {
				stats, err := s.ReportService.Statistics(cmd.Context())
				if err != nil {
					return err
				}
				renderStats(cmd.OutOrStdout(), stats)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a report with its responses",
			Args:  cobra.ExactArgs(1),
			RunE: c.withServices(func(cmd *cobra.Command, args []string, s *service.Services) error {
				report, err := s.ReportService.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if report.ID == "" {
					return ErrUnavailable
				}
				renderReport(cmd.OutOrStdout(), report)
				return nil
			}),
		},
		c.reportsRespondCommand(),
		&cobra.Command{
			Use:   "resolve <id>",
			Short: "Mark a report as resolved",
			Args:  cobra.ExactArgs(1),
			RunE: c.withServices(func(cmd *cobra.Command, args []string, s *service.Services) error {
				ok, err := s.ReportService.Resolve(cmd.Context(), args[0])
				return applied(cmd, ok, err, "resolved "+args[0])
			}),
		},
		&cobra.Command{
			Use:   "status <id> <status>",
			Short: "Move a report to another status",
			Long:  "Move a report to another status: pending, in_progress, responded, resolved or closed.",
			Args:  cobra.ExactArgs(2),
			RunE: c.withServices(func(cmd *cobra.Command, args []string, s *service.Services) error {
				ok, err := s.ReportService.UpdateStatus(cmd.Context(), args[0], models.ReportStatus(args[1]))
				return applied(cmd, ok, err, args[0]+" is now "+args[1])
			}),
		},
		&cobra.Command{
			Use:   "viewed <id>",
			Short: "Mark a report as viewed",
			Args:  cobra.ExactArgs(1),
			RunE: c.withServices(func(cmd *cobra.Command, args []string, s *service.Services) error {
				ok, err := s.ReportService.MarkViewed(cmd.Context(), args[0])
				return applied(cmd, ok, err, "marked "+args[0]+" as viewed")
			}),
		},
	)

	return cmd
}

func (c *cli) reportsListCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all reports, newest first",
		Args:  cobra.NoArgs,
		RunE: c.withServices(func(cmd *cobra.Command, _ []string, s *service.Services) error {
			var filter *models.ReportStatus
			if status != "" {
				f := models.ReportStatus(status)
				filter = &f
			}

			reports, err := s.ReportService.ListAll(cmd.Context(), filter)
			if err != nil {
				return err
			}
			renderReports(cmd.OutOrStdout(), reports)
			return nil
		}),
	}
	cmd.Flags().StringVar(&status, "status", "", "only list reports in this status")

	return cmd
}

func (c *cli) reportsRespondCommand() *cobra.Command {
	var text, developer string

	cmd := &cobra.Command{
		Use:   "respond <id>",
		Short: "Append a developer response to a report",
		Args:  cobra.ExactArgs(1),
		RunE: c.withServices(func(cmd *cobra.Command, args []string, s *service.Services) error {
			ok, err := s.ReportService.AddResponse(cmd.Context(), args[0], text, developer)
			return applied(cmd, ok, err, "responded to "+args[0])
		}),
	}
	cmd.Flags().StringVar(&text, "text", "", "response text")
	cmd.Flags().StringVar(&developer, "as", "", "developer name shown with the response")
	cmd.MarkFlagRequired("text")

	return cmd
}
