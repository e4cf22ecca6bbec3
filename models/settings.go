// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Language is the default UI language of the application.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageFrench
}

// SystemSettings is the singleton record with global switches of the system.
type SystemSettings struct {
	AllowNewRegistrations bool     `json:"allowNewRegistrations" bson:"allowNewRegistrations"`
	MaintenanceMode       bool     `json:"maintenanceMode" bson:"maintenanceMode"`
	AllowPayments         bool     `json:"allowPayments" bson:"allowPayments"`
	DefaultLanguage       Language `json:"defaultLanguage" bson:"defaultLanguage"`
}

// DefaultSettings returns the settings written when no settings record exists yet.
func DefaultSettings() SystemSettings {
	return SystemSettings{
		AllowNewRegistrations: true,
		MaintenanceMode:       false,
		AllowPayments:         true,
		DefaultLanguage:       LanguageEnglish,
	}
}

// Fields returns the settings as a document field map.
func (s SystemSettings) Fields() map[string]any {
	return map[string]any{
		"allowNewRegistrations": s.AllowNewRegistrations,
		"maintenanceMode":       s.MaintenanceMode,
		"allowPayments":         s.AllowPayments,
		"defaultLanguage":       string(s.DefaultLanguage),
	}
}

// SettingsUpdate is a partial change of [SystemSettings]. Nil fields are left untouched.
type SettingsUpdate struct {
	AllowNewRegistrations *bool     `json:"allowNewRegistrations,omitempty" bson:"allowNewRegistrations,omitempty"`
	MaintenanceMode       *bool     `json:"maintenanceMode,omitempty" bson:"maintenanceMode,omitempty"`
	AllowPayments         *bool     `json:"allowPayments,omitempty" bson:"allowPayments,omitempty"`
	DefaultLanguage       *Language `json:"defaultLanguage,omitempty" bson:"defaultLanguage,omitempty" validate:"omitempty,language"`
}

// Fields returns only the fields set in u, keyed by their document names.
func (u SettingsUpdate) Fields() map[string]any {
	fields := make(map[string]any, 4)
	if u.AllowNewRegistrations != nil {
		fields["allowNewRegistrations"] = *u.AllowNewRegistrations
	}
	if u.MaintenanceMode != nil {
		fields["maintenanceMode"] = *u.MaintenanceMode
	}
	if u.AllowPayments != nil {
		fields["allowPayments"] = *u.AllowPayments
	}
	if u.DefaultLanguage != nil {
		fields["defaultLanguage"] = string(*u.DefaultLanguage)
	}
	return fields
}

// Empty reports whether u changes nothing.
func (u SettingsUpdate) Empty() bool {
	return len(u.Fields()) == 0
}

// Apply returns s with the fields set in u overwritten.
func (s SystemSettings) Apply(u SettingsUpdate) SystemSettings {
	if u.AllowNewRegistrations != nil {
		s.AllowNewRegistrations = *u.AllowNewRegistrations
	}
	if u.MaintenanceMode != nil {
		s.MaintenanceMode = *u.MaintenanceMode
	}
	if u.AllowPayments != nil {
		s.AllowPayments = *u.AllowPayments
	}
	if u.DefaultLanguage != nil {
		s.DefaultLanguage = *u.DefaultLanguage
	}
	return s
}
