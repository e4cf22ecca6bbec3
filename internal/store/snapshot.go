// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
)

// Snapshot is a document read from a DocumentStore.
type Snapshot struct {
	// ID is the document id within its collection.
	ID string

	decode func(v any) error
}

// NewSnapshot builds a Snapshot whose DataTo delegates to decode.
func NewSnapshot(id string, decode func(v any) error) Snapshot {
	return Snapshot{ID: id, decode: decode}
}

// NewJSONSnapshot builds a Snapshot over a JSON-encoded document.
func NewJSONSnapshot(id string, raw []byte) Snapshot {
	return NewSnapshot(id, func(v any) error {
		return json.Unmarshal(raw, v)
	})
}

// DataTo decodes the document into v, which must be a pointer.
// Fields absent from the stored document keep their zero values.
func (s Snapshot) DataTo(v any) error {
	if s.decode == nil {
		return fmt.Errorf("%w: empty snapshot", ErrDecodingDocument)
	}
	if err := s.decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	return nil
}
