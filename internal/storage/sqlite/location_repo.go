package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// locationRepository implements domain.LocationRepository
type locationRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *DB, log zerolog.Logger) domain.LocationRepository {
	return &locationRepository{db: db, log: log.With().Str("repo", "location").Logger()}
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM locations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		var desc sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		l.Description = desc.String
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

func (r *locationRepository) Create(ctx context.Context, name, description string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (name, description) VALUES (?, ?)`, name, description)
	if err != nil {
		return 0, constraintErr(err, "failed to create location")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read location id: %w", err)
	}

	r.log.Debug().Int64("id", id).Str("name", name).Msg("location created")
	return id, nil
}

func (r *locationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	var l domain.Location
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM locations WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &desc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get location by id: %w", err)
	}
	l.Description = desc.String

	return &l, nil
}

// LinkCurrency is idempotent: the unique index on (location_id, currency_id)
// makes OR IGNORE swallow duplicate pairs.
func (r *locationRepository) LinkCurrency(ctx context.Context, locationID, currencyID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO location_currencies (location_id, currency_id) VALUES (?, ?)`,
		locationID, currencyID)
	if err != nil {
		return constraintErr(err, "failed to link currency to location")
	}
	return nil
}

func (r *locationRepository) CurrencyID(ctx context.Context, locationID int64) (*int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT currency_id FROM location_currencies WHERE location_id = ?`, locationID).
		Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get currency for location: %w", err)
	}

	return &id, nil
}
