// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is an end-user account as stored in the users collection.
// IsBanned only ever moves from false to true.
type User struct {
	ID       string `json:"id,omitempty" bson:"-"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Type     string `json:"type" bson:"type"`
	IsBanned bool   `json:"isBanned" bson:"isBanned"`
}

// Business is a business account awaiting or holding approval.
// IsApproved only ever moves from false to true.
type Business struct {
	ID          string `json:"id,omitempty" bson:"-"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	IsApproved  bool   `json:"isApproved" bson:"isApproved"`
}
