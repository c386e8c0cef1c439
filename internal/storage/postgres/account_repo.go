package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

func (s *Store) CreateAccount(ctx context.Context, userID int64, initialBalance float64) (*models.Account, error) {
	exists, err := s.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, storage.ErrInvalidOwner
	}

	query := `
		INSERT INTO accounts (user_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, user_id, balance, created_at, updated_at
	`
	account, err := scanAccount(s.db.QueryRowContext(ctx, query, userID, initialBalance, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, user_id, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	account, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, user_id, balance, created_at, updated_at
		FROM accounts
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// UpdateAccount applies an administrative update. Nil fields are left
// unchanged; a new owner must resolve to an existing user.
func (s *Store) UpdateAccount(ctx context.Context, id int64, userID *int64, balance *float64) (*models.Account, error) {
	if userID != nil {
		exists, err := s.UserExists(ctx, *userID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, storage.ErrInvalidOwner
		}
	}

	query := `
		UPDATE accounts
		SET user_id = COALESCE($2, user_id),
		    balance = COALESCE($3, balance),
		    updated_at = $4
		WHERE id = $1
		RETURNING id, user_id, balance, created_at, updated_at
	`
	account, err := scanAccount(s.db.QueryRowContext(ctx, query, id, nullInt64(userID), nullFloat64(balance), time.Now().UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		DELETE FROM accounts
		WHERE id = $1
		RETURNING id, user_id, balance, created_at, updated_at
	`
	account, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}
	return account, nil
}

func scanAccount(row scanner) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.UserID, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
