// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from ReportStatus
		to   ReportStatus
		want bool
	}{
		{name: "pending to responded", from: StatusPending, to: StatusResponded, want: true},
		{name: "pending to in_progress", from: StatusPending, to: StatusInProgress, want: true},
		{name: "in_progress to resolved", from: StatusInProgress, to: StatusResolved, want: true},
		{name: "in_progress to closed", from: StatusInProgress, to: StatusClosed, want: true},
		{name: "responded to resolved", from: StatusResponded, to: StatusResolved, want: true},
		{name: "responded to responded", from: StatusResponded, to: StatusResponded, want: true},
		{name: "resolved to resolved", from: StatusResolved, to: StatusResolved, want: true},
		{name: "resolved to pending", from: StatusResolved, to: StatusPending, want: false},
		{name: "resolved to responded", from: StatusResolved, to: StatusResponded, want: false},
		{name: "closed to in_progress", from: StatusClosed, to: StatusInProgress, want: false},
		{name: "in_progress back to pending", from: StatusInProgress, to: StatusPending, want: false},
		{name: "unknown source", from: "archived", to: StatusResolved, want: false},
		{name: "unknown target", from: StatusPending, to: "archived", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestReportStatus_Terminal(t *testing.T) {
	assert.True(t, StatusResolved.Terminal())
	assert.True(t, StatusClosed.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, ReportStatus("bogus").Terminal())
}

func TestReportStats_Count(t *testing.T) {
	var stats ReportStats
	for _, r := range []Report{
		{Status: StatusPending, Type: ReportTypeBug},
		{Status: StatusPending, Type: ReportTypeBug},
		{Status: StatusResolved, Type: ReportTypeFeature},
		{Status: StatusClosed, Type: ReportTypeSupport},
	} {
		stats.Count(r)
	}

	assert.Equal(t, 4, stats.TotalReports)
	assert.Equal(t, 2, stats.PendingReports)
	assert.Equal(t, 1, stats.ResolvedReports)
	assert.Equal(t, 1, stats.ClosedReports)
	assert.Equal(t, 2, stats.ByType[ReportTypeBug])
	assert.Equal(t, 0, stats.ByType[ReportTypeFeedback])
}
