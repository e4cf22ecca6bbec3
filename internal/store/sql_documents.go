// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/report-desk/migrations"
)

const documentsTable = "documents"

// sqlDocumentStore keeps documents as JSON in a single documents table keyed
// by (collection, id). Equality filters on string values are pushed down to
// the database; ordering and limits are applied after decoding.
type sqlDocumentStore struct {
	db  *DB
	ids IDGenerator
	now func() time.Time
}

// NewSQLDocumentStore builds a DocumentStore over db. The schema must already
// be migrated.
func NewSQLDocumentStore(db *DB, ids IDGenerator) DocumentStore {
	return &sqlDocumentStore{db: db, ids: ids, now: func() time.Time { return time.Now().UTC() }}
}

func (s *sqlDocumentStore) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(s.db.placeholder)
}

func (s *sqlDocumentStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	query, args, err := s.builder().
		Select("data").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var data string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	if err != nil {
		s.db.logger.Err(err).Str("func", "*sqlDocumentStore.Get").Msg("error selecting document")
		return Snapshot{}, fmt.Errorf("%w: %w", ErrExecutingQuery, s.db.errorClassificator.Classify(err))
	}

	return NewJSONSnapshot(id, []byte(data)), nil
}

func (s *sqlDocumentStore) Add(ctx context.Context, collection string, data any) (string, error) {
	id := s.ids.Generate()
	if err := s.Create(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqlDocumentStore) Create(ctx context.Context, collection, id string, data any) error {
	return s.insert(ctx, collection, id, data, false)
}

func (s *sqlDocumentStore) Set(ctx context.Context, collection, id string, data any) error {
	return s.insert(ctx, collection, id, data, true)
}

func (s *sqlDocumentStore) insert(ctx context.Context, collection, id string, data any, upsert bool) error {
	payload, err := encodeDocument(data)
	if err != nil {
		return err
	}

	now := s.now()
	builder := s.builder().
		Insert(documentsTable).
		Columns("collection", "id", "data", "created_at", "updated_at").
		Values(collection, id, string(payload), now, now)
	if upsert {
		builder = builder.Suffix("ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		classified := s.db.errorClassificator.Classify(err)
		if !errors.Is(classified, ErrAlreadyExists) {
			s.db.logger.Err(err).Str("func", "*sqlDocumentStore.insert").Msg("error inserting document")
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, classified)
	}

	return nil
}

func (s *sqlDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, s.db.errorClassificator.Classify(err))
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	selectBuilder := s.builder().
		Select("data").
		From(documentsTable).
		Where(sq.Eq{"collection": collection, "id": id})
	if s.db.dialect == migrations.DialectPostgres {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var current string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, s.db.errorClassificator.Classify(err))
	}

	merged, err := mergeDocument([]byte(current), fields)
	if err != nil {
		return err
	}

	query, args, err = s.builder().
		Update(documentsTable).
		Set("data", string(merged)).
		Set("updated_at", s.now()).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		s.db.logger.Err(err).Str("func", "*sqlDocumentStore.Update").Msg("error updating document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, s.db.errorClassificator.Classify(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, s.db.errorClassificator.Classify(err))
	}

	return nil
}

func (s *sqlDocumentStore) Query(ctx context.Context, collection string, q Query) ([]Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	builder := s.builder().
		Select("id", "data").
		From(documentsTable).
		Where(sq.Eq{"collection": collection}).
		OrderBy("id")
	for _, f := range q.Filters {
		value, ok := stringValue(f.Value)
		if !ok {
			continue
		}
		builder = builder.Where(s.jsonFieldExpr(f.Field), value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.db.logger.Err(err).Str("func", "*sqlDocumentStore.Query").Msg("error querying documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, s.db.errorClassificator.Classify(err))
	}
	defer rows.Close()

	var docs []jsonDocument
	for rows.Next() {
		var id, data string
		if err = rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		doc, err := newJSONDocument(id, []byte(data))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, s.db.errorClassificator.Classify(err))
	}

	return applyQuery(docs, q), nil
}

func (s *sqlDocumentStore) Close(ctx context.Context) error {
	return s.db.Close()
}

// jsonFieldExpr returns a condition comparing a top-level string field of
// the JSON document with a placeholder. field has passed Query.Validate.
func (s *sqlDocumentStore) jsonFieldExpr(field string) string {
	if s.db.dialect == migrations.DialectPostgres {
		return "data->>'" + field + "' = ?"
	}
	return "json_extract(data, '$." + field + "') = ?"
}

// stringValue returns v as a string when its JSON form is a string.
func stringValue(v any) (string, bool) {
	normalized, err := normalizeJSONValue(v)
	if err != nil {
		return "", false
	}
	s, ok := normalized.(string)
	return s, ok
}
