package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// dataSourceRepository implements domain.DataSourceRepository
type dataSourceRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewDataSourceRepository creates a new data source repository
func NewDataSourceRepository(db *DB, log zerolog.Logger) domain.DataSourceRepository {
	return &dataSourceRepository{db: db, log: log.With().Str("repo", "data_source").Logger()}
}

func (r *dataSourceRepository) List(ctx context.Context) ([]domain.DataSource, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, source FROM data_sources`)
	if err != nil {
		return nil, fmt.Errorf("failed to query data sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.DataSource
	for rows.Next() {
		var ds domain.DataSource
		if err := rows.Scan(&ds.ID, &ds.Source); err != nil {
			return nil, fmt.Errorf("failed to scan data source: %w", err)
		}
		sources = append(sources, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating data sources: %w", err)
	}

	return sources, nil
}

func (r *dataSourceRepository) Create(ctx context.Context, source string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO data_sources (source) VALUES (?)`, source)
	if err != nil {
		return 0, constraintErr(err, "failed to create data source")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read data source id: %w", err)
	}

	r.log.Debug().Int64("id", id).Str("source", source).Msg("data source created")
	return id, nil
}

func (r *dataSourceRepository) GetByID(ctx context.Context, id int64) (*domain.DataSource, error) {
	var ds domain.DataSource
	err := r.db.QueryRowContext(ctx, `SELECT id, source FROM data_sources WHERE id = ?`, id).
		Scan(&ds.ID, &ds.Source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get data source by id: %w", err)
	}

	return &ds, nil
}
