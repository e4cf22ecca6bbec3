// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fallback runs remote store calls and absorbs their failures.
//
// [Do] executes an operation and, when it fails, classifies the error:
//
//   - caller errors (those implementing [Propagator]) are returned unchanged;
//   - network errors are logged as warnings and replaced by the fallback value;
//   - authentication, permission and unclassified errors are replaced by the
//     fallback value and reported once through the policy's [Notifier].
//
// Notices travel through a side channel: the HTTP layer collects them per
// request with a [Collector], the CLI writes them to stderr.
package fallback
