// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned for values the validator has no rules for.
var ErrUnsupportedType = errors.New("unsupported type for validation")

// FieldError describes the first rule a validated value broke.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
