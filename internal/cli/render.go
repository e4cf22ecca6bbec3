// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/report-desk/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const timeLayout = "2006-01-02 15:04 MST"

func renderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, labelStyle.Render("(none)"))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
}

func renderReports(w io.Writer, reports []models.ReportWithUser) {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		submitter := r.UserName
		if r.User != nil && r.User.Name != "" {
			submitter = r.User.Name
		}
		rows = append(rows, []string{
			r.ID, string(r.Type), string(r.Status), r.Title, submitter, yesNo(r.Viewed), r.CreatedAt.UTC().Format(timeLayout),
		})
	}
	renderTable(w, []string{"ID", "TYPE", "STATUS", "TITLE", "SUBMITTER", "VIEWED", "CREATED"}, rows)
}

func renderReport(w io.Writer, r models.Report) {
	fields := [][2]string{
		{"id", r.ID},
		{"type", string(r.Type)},
		{"status", string(r.Status)},
		{"user", r.UserName + " (" + r.UserID + ")"},
		{"viewed", yesNo(r.Viewed)},
		{"created", r.CreatedAt.UTC().Format(timeLayout)},
		{"updated", r.UpdatedAt.UTC().Format(timeLayout)},
	}
	if r.ResolvedAt != nil {
		fields = append(fields, [2]string{"resolved", r.ResolvedAt.UTC().Format(timeLayout)})
	}
	if r.ScreenshotURL != "" {
		fields = append(fields, [2]string{"screenshot", r.ScreenshotURL})
	}

	fmt.Fprintln(w, titleStyle.Render(r.Title))
	for _, f := range fields {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", f[0])), f[1])
	}
	fmt.Fprintln(w, boxStyle.Render(r.Description))

	for _, resp := range r.Responses {
		fmt.Fprintf(w, "%s %s\n%s\n", titleStyle.Render(resp.DeveloperName), labelStyle.Render(resp.CreatedAt.UTC().Format(timeLayout)), resp.Text)
	}
}

func renderStats(w io.Writer, s models.ReportStats) {
	rows := [][]string{
		{"total", strconv.Itoa(s.TotalReports)},
		{string(models.StatusPending), strconv.Itoa(s.PendingReports)},
		{string(models.StatusInProgress), strconv.Itoa(s.InProgressReports)},
		{string(models.StatusResponded), strconv.Itoa(s.RespondedReports)},
		{string(models.StatusResolved), strconv.Itoa(s.ResolvedReports)},
		{string(models.StatusClosed), strconv.Itoa(s.ClosedReports)},
	}
	for _, t := range models.ReportTypes {
		rows = append(rows, []string{"type " + string(t), strconv.Itoa(s.ByType[t])})
	}
	renderTable(w, []string{"REPORTS", "COUNT"}, rows)
}

func renderUsers(w io.Writer, users []models.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, u.Type, yesNo(u.IsBanned)})
	}
	renderTable(w, []string{"ID", "NAME", "EMAIL", "TYPE", "BANNED"}, rows)
}

func renderBusinesses(w io.Writer, businesses []models.Business) {
	rows := make([][]string, 0, len(businesses))
	for _, b := range businesses {
		rows = append(rows, []string{b.ID, b.Name, b.Description, yesNo(b.IsApproved)})
	}
	renderTable(w, []string{"ID", "NAME", "DESCRIPTION", "APPROVED"}, rows)
}

func renderSettings(w io.Writer, s models.SystemSettings) {
	renderTable(w, []string{"SETTING", "VALUE"}, [][]string{
		{"allowNewRegistrations", strconv.FormatBool(s.AllowNewRegistrations)},
		{"maintenanceMode", strconv.FormatBool(s.MaintenanceMode)},
		{"allowPayments", strconv.FormatBool(s.AllowPayments)},
		{"defaultLanguage", string(s.DefaultLanguage)},
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
