package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/utils"
)

// SqliteStorage implements Storage using SQLite as the backend.
type SqliteStorage struct {
	db *sql.DB
}

var _ Storage = (*SqliteStorage)(nil)

func NewSqliteStorage(dsn string) (*SqliteStorage, error) {
	// Only create parent directories for file-backed databases.
	if dsn != ":memory:" && dsn != "" {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, utils.Errorf("failed to create db directory %q: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqlStmt := `
CREATE TABLE IF NOT EXISTS diagrams (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	diagram_type TEXT NOT NULL,
	source TEXT NOT NULL,
	node_styles TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_diagrams_type ON diagrams(diagram_type);
CREATE INDEX IF NOT EXISTS idx_diagrams_updated ON diagrams(updated_at);
`
	if _, err = db.Exec(sqlStmt); err != nil {
		return nil, err
	}
	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) SaveDiagram(ctx context.Context, d *model.Diagram) error {
	prepareSave(d)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO diagrams (id, title, description, diagram_type, source, node_styles, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET title=excluded.title, description=excluded.description, diagram_type=excluded.diagram_type, source=excluded.source, node_styles=excluded.node_styles, updated_at=excluded.updated_at
`, d.ID.String(), d.Title, d.Description, d.Type.String(), d.Source, d.NodeStyles, d.CreatedAt.Unix(), d.UpdatedAt.Unix())
	return err
}

func (s *SqliteStorage) GetDiagram(ctx context.Context, id uuid.UUID) (*model.Diagram, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at FROM diagrams WHERE id=?`, id.String())
	return scanDiagram(row)
}

func (s *SqliteStorage) ListDiagrams(ctx context.Context, typ model.DiagramType) ([]*model.Diagram, error) {
	var rows *sql.Rows
	var err error
	if typ == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at FROM diagrams ORDER BY updated_at DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at FROM diagrams WHERE diagram_type=? ORDER BY updated_at DESC`, typ.String())
	}
	if err != nil {
		return nil, err
	}
	return collectDiagrams(rows)
}

func (s *SqliteStorage) SearchDiagrams(ctx context.Context, query string) ([]*model.Diagram, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at
FROM diagrams
WHERE title LIKE ? OR description LIKE ? OR source LIKE ?
ORDER BY updated_at DESC`, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return collectDiagrams(rows)
}

func (s *SqliteStorage) DeleteDiagram(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM diagrams WHERE id=?`, id.String())
	return err
}

func (s *SqliteStorage) Stats(ctx context.Context) (*model.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT diagram_type, COUNT(*), MAX(updated_at) FROM diagrams GROUP BY diagram_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return statsFromRows(rows)
}

func (s *SqliteStorage) Close() error {
	return s.db.Close()
}
