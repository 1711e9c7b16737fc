package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	supa "github.com/supabase-community/supabase-go"
)

// RestStore talks to a Supabase/PostgREST backend. Each collection is a table
// whose columns are the row fields plus a bigint "version" column; the
// conditional update is expressed server-side as an id+version predicate.
type RestStore struct {
	Client *supa.Client
}

func NewRestStore(url, serviceKey string) (*RestStore, error) {
	client, err := supa.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, err
	}
	return &RestStore{Client: client}, nil
}

func (s *RestStore) Select(ctx context.Context, collection string, filters ...Filter) ([]Row, error) {
	q := s.Client.From(collection).Select("*", "", false)
	for _, f := range filters {
		switch f.Op {
		case "eq":
			q = q.Eq(f.Field, fmt.Sprint(f.Value))
		case "in":
			values, _ := f.Value.([]string)
			q = q.In(f.Field, values)
		}
	}
	data, _, err := q.Execute()
	if err != nil {
		return nil, err
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		liftVersion(row)
	}
	return rows, nil
}

func (s *RestStore) Get(ctx context.Context, collection, id string) (Row, error) {
	rows, err := s.Select(ctx, collection, Eq("id", id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (s *RestStore) Insert(ctx context.Context, collection string, row Row) (string, error) {
	payload := payloadOf(row)
	if IDOf(payload) == "" || IDOf(payload) == "<nil>" {
		payload["id"] = uuid.NewString()
	}
	payload["version"] = 1
	_, _, err := s.Client.From(collection).Insert(payload, false, "", "", "").Execute()
	if err != nil {
		return "", err
	}
	return IDOf(payload), nil
}

func (s *RestStore) Update(ctx context.Context, collection, id string, patch Row) error {
	current, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	payload := payloadOf(patch)
	payload["version"] = VersionOf(current) + 1
	data, _, err := s.Client.From(collection).
		Update(payload, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return err
	}
	if emptyResult(data) {
		return ErrNotFound
	}
	return nil
}

func (s *RestStore) UpdateIf(ctx context.Context, collection, id string, patch Row, expectVersion int64) error {
	payload := payloadOf(patch)
	payload["version"] = expectVersion + 1
	data, _, err := s.Client.From(collection).
		Update(payload, "representation", "").
		Eq("id", id).
		Eq("version", fmt.Sprint(expectVersion)).
		Execute()
	if err != nil {
		return err
	}
	// No row matched the id+version predicate: either gone or concurrently
	// bumped. Distinguish so callers can retry the right way.
	if emptyResult(data) {
		if _, err := s.Get(ctx, collection, id); err != nil {
			return err
		}
		return ErrVersionConflict
	}
	return nil
}

func payloadOf(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		if k == "_version" {
			continue
		}
		out[k] = v
	}
	return out
}

func liftVersion(row Row) {
	if v, ok := row["version"]; ok {
		row["_version"] = v
		delete(row, "version")
	}
}

func emptyResult(data []byte) bool {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return len(data) == 0
	}
	return len(rows) == 0
}
