// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/report-desk/internal/logger"
)

// memoryDocumentStore keeps documents in process memory. When a path is set
// every mutation is flushed to a JSON file that is read back on start.
type memoryDocumentStore struct {
	path     string
	inMemory bool
	ids      IDGenerator

	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage

	logger *logger.Logger
}

type memoryPersistedState struct {
	Collections map[string]map[string]json.RawMessage `json:"collections"`
}

// NewMemoryDocumentStore opens a memory-backed DocumentStore. An empty path
// (or ":memory:") keeps everything in memory only.
func NewMemoryDocumentStore(path string, ids IDGenerator, log *logger.Logger) (DocumentStore, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &memoryDocumentStore{
		path:        path,
		inMemory:    path == ":memory:",
		ids:         ids,
		collections: make(map[string]map[string]json.RawMessage),
		logger:      log,
	}
	if err := s.load(); err != nil {
		log.Err(err).Str("func", "NewMemoryDocumentStore").Msg("error loading memory store file")
		return nil, err
	}
	return s, nil
}

func (s *memoryDocumentStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return NewJSONSnapshot(id, cloneBytes(raw)), nil
}

func (s *memoryDocumentStore) Add(ctx context.Context, collection string, data any) (string, error) {
	id := s.ids.Generate()
	if err := s.Create(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *memoryDocumentStore) Create(ctx context.Context, collection, id string, data any) error {
	return s.write(ctx, collection, id, data, false)
}

func (s *memoryDocumentStore) Set(ctx context.Context, collection, id string, data any) error {
	return s.write(ctx, collection, id, data, true)
}

func (s *memoryDocumentStore) write(ctx context.Context, collection, id string, data any, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	payload, err := encodeDocument(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[collection][id]; exists && !overwrite {
		return fmt.Errorf("%w: %s/%s", ErrAlreadyExists, collection, id)
	}
	return s.commit(collection, id, payload)
}

func (s *memoryDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}

	merged, err := mergeDocument(raw, fields)
	if err != nil {
		return err
	}
	return s.commit(collection, id, merged)
}

func (s *memoryDocumentStore) Query(ctx context.Context, collection string, q Query) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	s.mu.RLock()
	docs := make([]jsonDocument, 0, len(s.collections[collection]))
	for id, raw := range s.collections[collection] {
		doc, err := newJSONDocument(id, cloneBytes(raw))
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	return applyQuery(docs, q), nil
}

func (s *memoryDocumentStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// collection returns the named collection, creating it. Callers hold mu.
func (s *memoryDocumentStore) collection(name string) map[string]json.RawMessage {
	docs, ok := s.collections[name]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.collections[name] = docs
	}
	return docs
}

func (s *memoryDocumentStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read memory store file: %w", err)
	}

	var st memoryPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode memory store file: %w", err)
	}
	if st.Collections != nil {
		s.collections = st.Collections
	}

	return nil
}

// commit stores payload under collection/id and flushes the state to disk.
// A failed flush restores the previous document so memory and file agree.
// Callers hold mu.
func (s *memoryDocumentStore) commit(collection, id string, payload json.RawMessage) error {
	docs := s.collection(collection)
	prev, existed := docs[id]
	docs[id] = payload

	if err := s.persist(); err != nil {
		if existed {
			docs[id] = prev
		} else {
			delete(docs, id)
		}
		s.logger.Err(err).Str("func", "*memoryDocumentStore.commit").
			Str("collection", collection).Str("id", id).Msg("write rolled back")
		return err
	}
	return nil
}

// persist flushes the state to disk. Callers hold mu.
func (s *memoryDocumentStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create memory store dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(memoryPersistedState{Collections: s.collections}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memory store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write memory store file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace memory store file: %w", err)
	}

	return nil
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
