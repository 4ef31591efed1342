package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// settingRepository implements domain.SettingRepository
type settingRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *DB, log zerolog.Logger) domain.SettingRepository {
	return &settingRepository{db: db, log: log.With().Str("repo", "setting").Logger()}
}

func (r *settingRepository) List(ctx context.Context) ([]domain.UserSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT setting_key, setting_value FROM user_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []domain.UserSetting
	for rows.Next() {
		var s domain.UserSetting
		var value sql.NullString
		if err := rows.Scan(&s.Key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		s.Value = value.String
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}

func (r *settingRepository) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO user_settings (setting_key, setting_value) VALUES (?, ?)`,
		key, value)
	if err != nil {
		return constraintErr(err, "failed to store setting")
	}
	return nil
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var value sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT setting_value FROM user_settings WHERE setting_key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get setting: %w", err)
	}

	return value.String, nil
}
