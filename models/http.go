// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AdminCredentials is the body of the admin login request.
type AdminCredentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ResponseRequest is the body of the add-response request.
type ResponseRequest struct {
	Text          string `json:"text"`
	DeveloperName string `json:"developerName"`
}

// StatusRequest is the body of the update-status request.
type StatusRequest struct {
	Status ReportStatus `json:"status"`
}

// OperationResult is returned by mutating endpoints. OK is false when the
// change was not applied because the store could not be reached.
type OperationResult struct {
	OK bool `json:"ok"`
}
