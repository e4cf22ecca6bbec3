// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrEmptyAddress      = errors.New("empty address")
	ErrIncompleteAddress = errors.New("address must include host and scheme")
)
