// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ReportStatus is the lifecycle state of a [Report].
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in_progress"
	StatusResponded  ReportStatus = "responded"
	StatusResolved   ReportStatus = "resolved"
	StatusClosed     ReportStatus = "closed"
)

// ReportStatuses lists every [ReportStatus] in lifecycle order.
var ReportStatuses = []ReportStatus{StatusPending, StatusInProgress, StatusResponded, StatusResolved, StatusClosed}

// transitions holds the forward moves allowed out of each status.
// Staying in the same status is always allowed and handled by CanTransition.
var transitions = map[ReportStatus][]ReportStatus{
	StatusPending:    {StatusInProgress, StatusResponded, StatusResolved, StatusClosed},
	StatusInProgress: {StatusResponded, StatusResolved, StatusClosed},
	StatusResponded:  {StatusInProgress, StatusResolved, StatusClosed},
	StatusResolved:   {},
	StatusClosed:     {},
}

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no other status can follow s.
func (s ReportStatus) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether a report in status from may move to status to.
// A transition to the same status is a no-op and always allowed for known statuses.
func CanTransition(from, to ReportStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}

	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
