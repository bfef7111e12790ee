package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/utils"
)

// Storage persists diagram records.
type Storage interface {
	// SaveDiagram inserts or updates a diagram. A zero ID is assigned;
	// timestamps are maintained by the store.
	SaveDiagram(ctx context.Context, d *model.Diagram) error
	GetDiagram(ctx context.Context, id uuid.UUID) (*model.Diagram, error)
	// ListDiagrams returns diagrams newest-first, optionally filtered by
	// type ("" lists all).
	ListDiagrams(ctx context.Context, typ model.DiagramType) ([]*model.Diagram, error)
	// SearchDiagrams matches the query against title, description and
	// source, case-insensitively.
	SearchDiagrams(ctx context.Context, query string) ([]*model.Diagram, error)
	DeleteDiagram(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*model.Stats, error)
	Close() error
}

// ErrNotFound is returned when a diagram ID does not exist.
var ErrNotFound = sql.ErrNoRows

// NewStorageFromConfig constructs the configured Storage backend.
func NewStorageFromConfig(cfg *config.Config) (Storage, error) {
	driver := cfg.Storage.Driver
	if driver == "" {
		driver = constants.StorageDriverSQLite
	}
	dsn := cfg.Storage.DSN
	switch driver {
	case constants.StorageDriverSQLite:
		if dsn == "" {
			dsn = config.DefaultSQLiteDSN
		}
		return NewSqliteStorage(dsn)
	case constants.StorageDriverPostgres:
		return NewPostgresStorage(dsn)
	case constants.StorageDriverMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, utils.Errorf(constants.ErrStorageUnsupported, driver)
	}
}

// prepareSave fills in identity and timestamps before a write.
func prepareSave(d *model.Diagram) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Second)
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDiagram reads one row in the shared column order: id, title,
// description, diagram_type, source, node_styles, created_at, updated_at.
func scanDiagram(row rowScanner) (*model.Diagram, error) {
	var d model.Diagram
	var id string
	var createdAt, updatedAt int64
	if err := row.Scan(&id, &d.Title, &d.Description, &d.Type, &d.Source, &d.NodeStyles, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	d.ID = parsed
	d.CreatedAt = time.Unix(createdAt, 0).UTC()
	d.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &d, nil
}

// statsFromRows aggregates (diagram_type, count, max updated_at) rows.
func statsFromRows(rows *sql.Rows) (*model.Stats, error) {
	stats := &model.Stats{TypeCounts: map[model.DiagramType]int{}}
	for rows.Next() {
		var typ string
		var count int
		var latest sql.NullInt64
		if err := rows.Scan(&typ, &count, &latest); err != nil {
			return nil, err
		}
		stats.TypeCounts[model.DiagramType(typ)] = count
		stats.TotalCount += count
		if latest.Valid {
			t := time.Unix(latest.Int64, 0).UTC()
			if stats.LatestUpdate == nil || t.After(*stats.LatestUpdate) {
				stats.LatestUpdate = &t
			}
		}
	}
	return stats, rows.Err()
}

func collectDiagrams(rows *sql.Rows) ([]*model.Diagram, error) {
	defer rows.Close()
	var out []*model.Diagram
	for rows.Next() {
		d, err := scanDiagram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
