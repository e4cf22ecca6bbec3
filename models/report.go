// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AnonymousUserID is stored in Report.UserID when the submitter is not signed in.
const AnonymousUserID = "anonymous"

// ReportType classifies what a report is about.
type ReportType string

const (
	ReportTypeBug      ReportType = "bug"
	ReportTypeFeature  ReportType = "feature"
	ReportTypeFeedback ReportType = "feedback"
	ReportTypeSupport  ReportType = "support"
)

// ReportTypes lists every accepted [ReportType] in display order.
var ReportTypes = []ReportType{ReportTypeBug, ReportTypeFeature, ReportTypeFeedback, ReportTypeSupport}

// Valid reports whether t is one of [ReportTypes].
func (t ReportType) Valid() bool {
	for _, known := range ReportTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Report is a user-submitted bug, feature request, feedback or support item
// tracked through the status lifecycle described by [CanTransition].
//
// Field names are shared between the JSON and BSON encodings so that every
// document store backend persists the same document shape.
type Report struct {
	// ID is assigned by the document store on creation. It is not part of
	// the stored document body.
	ID string `json:"id,omitempty" bson:"-"`

	UserID   string     `json:"userId" bson:"userId"`
	UserName string     `json:"userName" bson:"userName"`
	Type     ReportType `json:"type" bson:"type"`

	Title         string         `json:"title" bson:"title"`
	Description   string         `json:"description" bson:"description"`
	ScreenshotURL string         `json:"screenshotUrl,omitempty" bson:"screenshotUrl,omitempty"`
	DeviceInfo    map[string]any `json:"deviceInfo,omitempty" bson:"deviceInfo,omitempty"`

	Status    ReportStatus `json:"status" bson:"status"`
	Viewed    bool         `json:"viewed" bson:"viewed"`
	Responses []Response   `json:"responses" bson:"responses"`

	// DeveloperResponse and RespondedAt mirror the latest response for
	// readers that predate the Responses list.
	DeveloperResponse string     `json:"developerResponse,omitempty" bson:"developerResponse,omitempty"`
	RespondedAt       *time.Time `json:"respondedAt,omitempty" bson:"respondedAt,omitempty"`

	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
}

// Response is an administrator reply appended to a [Report]. Responses are
// never edited or removed once appended.
type Response struct {
	// ID is a time-ordered UUID generated when the response is appended.
	ID            string    `json:"id" bson:"id"`
	Text          string    `json:"text" bson:"text"`
	DeveloperName string    `json:"developerName" bson:"developerName"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Screenshot is the raw image attached to a report submission. It is
// uploaded to the blob store and replaced by its URL before the report is
// persisted.
type Screenshot struct {
	Data        []byte `json:"data"`
	ContentType string `json:"contentType"`
}

// NewReport is the submission input for a report.
type NewReport struct {
	UserID      string         `json:"userId"`
	UserName    string         `json:"userName"`
	Type        ReportType     `json:"type" validate:"report_type"`
	Title       string         `json:"title" validate:"required,max=100"`
	Description string         `json:"description" validate:"min=10"`
	DeviceInfo  map[string]any `json:"deviceInfo,omitempty"`
	Screenshot  *Screenshot    `json:"screenshot,omitempty"`
}

// ReportWithUser is a report augmented with its submitter's profile.
// User is nil when the profile could not be resolved.
type ReportWithUser struct {
	Report
	User *User `json:"user,omitempty"`
}

// ReportStats holds report counts by status and by type.
type ReportStats struct {
	TotalReports      int                `json:"totalReports"`
	PendingReports    int                `json:"pendingReports"`
	InProgressReports int                `json:"inProgressReports"`
	RespondedReports  int                `json:"respondedReports"`
	ResolvedReports   int                `json:"resolvedReports"`
	ClosedReports     int                `json:"closedReports"`
	ByType            map[ReportType]int `json:"byType"`
}

// Count adds r to the totals.
func (s *ReportStats) Count(r Report) {
	if s.ByType == nil {
		s.ByType = make(map[ReportType]int, len(ReportTypes))
	}

	s.TotalReports++
	s.ByType[r.Type]++

	switch r.Status {
	case StatusPending:
		s.PendingReports++
	case StatusInProgress:
		s.InProgressReports++
	case StatusResponded:
		s.RespondedReports++
	case StatusResolved:
		s.ResolvedReports++
	case StatusClosed:
		s.ClosedReports++
	}
}
