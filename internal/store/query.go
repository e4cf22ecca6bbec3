// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Filter is an equality condition on a top-level document field.
type Filter struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Query selects documents of one collection. The zero Query matches every
// document in ascending id order.
type Query struct {
	Filters []Filter `json:"where,omitempty"`
	OrderBy string   `json:"orderBy,omitempty"`
	Desc    bool     `json:"desc,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// Where returns a copy of q with an additional equality filter.
func (q Query) Where(field string, value any) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	q.Filters = append(filters, Filter{Field: field, Value: value})
	return q
}

// Order returns a copy of q sorted by field.
func (q Query) Order(field string, desc bool) Query {
	q.OrderBy = field
	q.Desc = desc
	return q
}

// WithLimit returns a copy of q returning at most n documents. Zero means no limit.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that every field name is a plain identifier and that the
// limit is not negative.
func (q Query) Validate() error {
	for _, f := range q.Filters {
		if !fieldNamePattern.MatchString(f.Field) {
			return fmt.Errorf("invalid filter field %q", f.Field)
		}
	}
	if q.OrderBy != "" && !fieldNamePattern.MatchString(q.OrderBy) {
		return fmt.Errorf("invalid order field %q", q.OrderBy)
	}
	if q.Limit < 0 {
		return fmt.Errorf("invalid limit %d", q.Limit)
	}
	return nil
}

// jsonDocument is a decoded JSON document kept alongside its id while a
// query is evaluated in memory.
type jsonDocument struct {
	id     string
	raw    []byte
	fields map[string]any
}

func newJSONDocument(id string, raw []byte) (jsonDocument, error) {
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return jsonDocument{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	return jsonDocument{id: id, raw: raw, fields: fields}, nil
}

// matches reports whether every filter of q holds for doc. Values are compared
// after a JSON round trip so that typed values such as models.ReportStatus
// compare equal to their stored representation.
func (d jsonDocument) matches(filters []Filter) bool {
	for _, f := range filters {
		want, err := normalizeJSONValue(f.Value)
		if err != nil {
			return false
		}
		if !reflect.DeepEqual(d.fields[f.Field], want) {
			return false
		}
	}
	return true
}

func normalizeJSONValue(v any) (any, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err = json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// applyQuery filters, orders and truncates docs according to q.
func applyQuery(docs []jsonDocument, q Query) []Snapshot {
	matched := docs[:0:0]
	for _, d := range docs {
		if d.matches(q.Filters) {
			matched = append(matched, d)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if q.OrderBy == "" {
			return matched[i].id < matched[j].id
		}
		c := compareValues(matched[i].fields[q.OrderBy], matched[j].fields[q.OrderBy])
		if c == 0 {
			return matched[i].id < matched[j].id
		}
		if q.Desc {
			return c > 0
		}
		return c < 0
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]Snapshot, 0, len(matched))
	for _, d := range matched {
		out = append(out, NewJSONSnapshot(d.id, d.raw))
	}
	return out
}

// compareValues orders decoded JSON values. Missing values sort first,
// RFC 3339 strings compare as instants and numbers compare numerically.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case string:
		if bv, ok := b.(string); ok {
			at, aerr := time.Parse(time.RFC3339Nano, av)
			bt, berr := time.Parse(time.RFC3339Nano, bv)
			if aerr == nil && berr == nil {
				return at.Compare(bt)
			}
			return strings.Compare(av, bv)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// encodeDocument serializes data for the JSON-backed stores.
func encodeDocument(data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	if len(payload) == 0 || payload[0] != '{' {
		return nil, fmt.Errorf("%w: document must be a JSON object", ErrEncodingDocument)
	}
	return payload, nil
}

// mergeDocument overlays fields on the JSON object raw.
func mergeDocument(raw []byte, fields map[string]any) ([]byte, error) {
	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	for k, v := range fields {
		payload, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %w", ErrEncodingDocument, k, err)
		}
		doc[k] = payload
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	return merged, nil
}
