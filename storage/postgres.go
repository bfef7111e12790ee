package storage

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/utils"
)

// PostgresStorage implements Storage using PostgreSQL as the backend.
type PostgresStorage struct {
	db *sql.DB
}

var _ Storage = (*PostgresStorage)(nil)

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	if dsn == "" {
		return nil, utils.Errorf("postgres storage requires a DSN")
	}
	db, err := sql.Open("postgres", dsn)
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
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_diagrams_type ON diagrams(diagram_type);
CREATE INDEX IF NOT EXISTS idx_diagrams_updated ON diagrams(updated_at);
`
	if _, err = db.Exec(sqlStmt); err != nil {
		return nil, err
	}
	return &PostgresStorage{db: db}, nil
}

func (s *PostgresStorage) SaveDiagram(ctx context.Context, d *model.Diagram) error {
	prepareSave(d)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO diagrams (id, title, description, diagram_type, source, node_styles, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT(id) DO UPDATE SET title=excluded.title, description=excluded.description, diagram_type=excluded.diagram_type, source=excluded.source, node_styles=excluded.node_styles, updated_at=excluded.updated_at
`, d.ID.String(), d.Title, d.Description, d.Type.String(), d.Source, d.NodeStyles, d.CreatedAt.Unix(), d.UpdatedAt.Unix())
	return err
}

func (s *PostgresStorage) GetDiagram(ctx context.Context, id uuid.UUID) (*model.Diagram, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at FROM diagrams WHERE id=$1`, id.String())
	return scanDiagram(row)
}

func (s *PostgresStorage) ListDiagrams(ctx context.Context, typ model.DiagramType) ([]*model.Diagram, error) {
	var rows *sql.Rows
	var err error
	if typ == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at FROM diagrams ORDER BY updated_at DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at FROM diagrams WHERE diagram_type=$1 ORDER BY updated_at DESC`, typ.String())
	}
	if err != nil {
		return nil, err
	}
	return collectDiagrams(rows)
}

func (s *PostgresStorage) SearchDiagrams(ctx context.Context, query string) ([]*model.Diagram, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, description, diagram_type, source, node_styles, created_at, updated_at
FROM diagrams
WHERE title ILIKE $1 OR description ILIKE $1 OR source ILIKE $1
ORDER BY updated_at DESC`, pattern)
	if err != nil {
		return nil, err
	}
	return collectDiagrams(rows)
}

func (s *PostgresStorage) DeleteDiagram(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM diagrams WHERE id=$1`, id.String())
	return err
}

func (s *PostgresStorage) Stats(ctx context.Context) (*model.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT diagram_type, COUNT(*), MAX(updated_at) FROM diagrams GROUP BY diagram_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return statsFromRows(rows)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
