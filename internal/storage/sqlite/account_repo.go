package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dferreira/folio-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB, log zerolog.Logger) domain.AccountRepository {
	return &accountRepository{db: db, log: log.With().Str("repo", "account").Logger()}
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		var accountType sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &accountType); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Type = accountType.String
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) Create(ctx context.Context, name, accountType string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, type) VALUES (?, ?)`, name, accountType)
	if err != nil {
		return 0, constraintErr(err, "failed to create account")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read account id: %w", err)
	}

	r.log.Debug().Int64("id", id).Str("name", name).Msg("account created")
	return id, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	var accountType sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &accountType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	a.Type = accountType.String

	return &a, nil
}

func (r *accountRepository) AddBalance(ctx context.Context, balance domain.AccountBalance) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO account_balances (account_id, currency_id, amount) VALUES (?, ?, ?)`,
		balance.AccountID, balance.CurrencyID, balance.Amount.InexactFloat64())
	if err != nil {
		return constraintErr(err, "failed to add account balance")
	}
	return nil
}

func (r *accountRepository) Balances(ctx context.Context, accountID int64) ([]domain.AccountBalance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT account_id, currency_id, amount FROM account_balances WHERE account_id = ?`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account balances: %w", err)
	}
	defer rows.Close()

	var balances []domain.AccountBalance
	for rows.Next() {
		var b domain.AccountBalance
		var amount float64
		if err := rows.Scan(&b.AccountID, &b.CurrencyID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan account balance: %w", err)
		}
		b.Amount = decimal.NewFromFloat(amount)
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balances: %w", err)
	}

	return balances, nil
}
