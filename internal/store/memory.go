package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore backs the local fallback router and tests. Mutations are
// serialized per store and carry the same version semantics as the remote
// backends, so orchestrator retry loops behave identically everywhere.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]Row // collection -> id -> row
}

func NewMemoryStore() *MemoryStore {
	data := make(map[string]map[string]Row, len(Collections))
	for _, c := range Collections {
		data[c] = map[string]Row{}
	}
	return &MemoryStore{data: data}
}

func (s *MemoryStore) collection(name string) map[string]Row {
	rows, ok := s.data[name]
	if !ok {
		rows = map[string]Row{}
		s.data[name] = rows
	}
	return rows
}

func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) Select(ctx context.Context, collection string, filters ...Filter) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Row{}
	for _, row := range s.collection(collection) {
		if Matches(row, filters) {
			out = append(out, cloneRow(row))
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.collection(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRow(row), nil
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, row Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneRow(row)
	id := IDOf(stored)
	if id == "" || id == "<nil>" {
		id = uuid.NewString()
		stored["id"] = id
	}
	stored["_version"] = int64(1)
	s.collection(collection)[id] = stored
	return id, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyPatch(collection, id, patch, -1)
}

func (s *MemoryStore) UpdateIf(ctx context.Context, collection, id string, patch Row, expectVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyPatch(collection, id, patch, expectVersion)
}

func (s *MemoryStore) applyPatch(collection, id string, patch Row, expectVersion int64) error {
	row, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	if expectVersion >= 0 && VersionOf(row) != expectVersion {
		return ErrVersionConflict
	}
	for k, v := range patch {
		if k == "id" || k == "_version" {
			continue
		}
		row[k] = v
	}
	row["_version"] = VersionOf(row) + 1
	return nil
}
