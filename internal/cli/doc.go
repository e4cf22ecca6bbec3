// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements adm, the administration command line of
// report-desk. Commands run in-process against the configured document store
// through the same services the HTTP API uses. Lists are rendered as tables
// on stdout and fallback notices are written to stderr.
package cli
