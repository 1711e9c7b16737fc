package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	intdb "backend/internal/db"

	"github.com/google/uuid"
)

// SQLStore keeps every collection in a MySQL table of shape
// (id, doc JSON, version). The version column backs conditional updates so a
// racing writer loses cleanly instead of silently overwriting.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// EnsureSchema creates missing collection tables. Existing tables from older
// deployments that lack the version column get it added.
func (s *SQLStore) EnsureSchema() error {
	for _, col := range Collections {
		if !intdb.HasTable(s.DB, col) {
			ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(64) PRIMARY KEY,
	doc JSON NOT NULL,
	version BIGINT NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`, col)
			if _, err := s.DB.Exec(ddl); err != nil {
				return err
			}
			continue
		}
		if !intdb.HasColumn(s.DB, col, "version") {
			if _, err := s.DB.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN version BIGINT NOT NULL DEFAULT 1`, col)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SQLStore) Select(ctx context.Context, collection string, filters ...Filter) ([]Row, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(`SELECT id, doc, version FROM %s`, collection))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return out, err
		}
		if Matches(row, filters) {
			out = append(out, row)
		}
	}
	return out, rows.Err()
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (Row, error) {
	var (
		rowID   string
		doc     []byte
		version int64
	)
	err := s.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, doc, version FROM %s WHERE id=? LIMIT 1`, collection), id).
		Scan(&rowID, &doc, &version)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return assembleRow(rowID, doc, version)
}

func (s *SQLStore) Insert(ctx context.Context, collection string, row Row) (string, error) {
	id := IDOf(row)
	if id == "" || id == "<nil>" {
		id = uuid.NewString()
	}
	doc := make(Row, len(row))
	for k, v := range row {
		if k == "id" || k == "_version" {
			continue
		}
		doc[k] = v
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	_, err = s.DB.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc, version) VALUES (?, ?, 1)`, collection), id, b)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, patch Row) error {
	current, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	b, err := mergedDoc(current, patch)
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET doc=?, version=version+1 WHERE id=?`, collection), b, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) UpdateIf(ctx context.Context, collection, id string, patch Row, expectVersion int64) error {
	current, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	if VersionOf(current) != expectVersion {
		return ErrVersionConflict
	}
	b, err := mergedDoc(current, patch)
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET doc=?, version=version+1 WHERE id=? AND version=?`, collection),
		b, id, expectVersion)
	if err != nil {
		return err
	}
	// 0 rows means another writer bumped the version between read and write.
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVersionConflict
	}
	return nil
}

func scanRow(rows *sql.Rows) (Row, error) {
	var (
		id      string
		doc     []byte
		version int64
	)
	if err := rows.Scan(&id, &doc, &version); err != nil {
		return nil, err
	}
	return assembleRow(id, doc, version)
}

func assembleRow(id string, doc []byte, version int64) (Row, error) {
	row := Row{}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &row); err != nil {
			return nil, err
		}
	}
	row["id"] = id
	row["_version"] = version
	return row, nil
}

func mergedDoc(current, patch Row) ([]byte, error) {
	doc := make(Row, len(current)+len(patch))
	for k, v := range current {
		if k == "id" || k == "_version" {
			continue
		}
		doc[k] = v
	}
	for k, v := range patch {
		if k == "id" || k == "_version" {
			continue
		}
		doc[k] = v
	}
	return json.Marshal(doc)
}
