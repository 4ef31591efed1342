package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// marketRepository implements domain.MarketRepository
type marketRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewMarketRepository creates a new market repository
func NewMarketRepository(db *DB, log zerolog.Logger) domain.MarketRepository {
	return &marketRepository{db: db, log: log.With().Str("repo", "market").Logger()}
}

func (r *marketRepository) List(ctx context.Context) ([]domain.Market, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM markets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query markets: %w", err)
	}
	defer rows.Close()

	var markets []domain.Market
	for rows.Next() {
		var m domain.Market
		var desc sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan market: %w", err)
		}
		m.Description = desc.String
		markets = append(markets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating markets: %w", err)
	}

	return markets, nil
}

func (r *marketRepository) Create(ctx context.Context, name, description string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO markets (name, description) VALUES (?, ?)`, name, description)
	if err != nil {
		return 0, constraintErr(err, "failed to create market")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read market id: %w", err)
	}

	r.log.Debug().Int64("id", id).Str("name", name).Msg("market created")
	return id, nil
}

func (r *marketRepository) GetByID(ctx context.Context, id int64) (*domain.Market, error) {
	var m domain.Market
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM markets WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &desc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get market by id: %w", err)
	}
	m.Description = desc.String

	return &m, nil
}
