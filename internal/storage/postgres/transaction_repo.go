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

// Transfer moves amount between two accounts inside one database
// transaction. Both rows are locked with SELECT ... FOR UPDATE in ascending
// id order, so two transfers moving funds in opposite directions cannot
// deadlock and concurrent transfers debiting the same account cannot pass
// the balance check on a stale read.
func (s *Store) Transfer(ctx context.Context, senderID, receiverID int64, amount float64) (*models.Transaction, error) {
	if senderID == receiverID {
		return nil, storage.ErrSameAccount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer tx.Rollback()

	firstID, secondID := senderID, receiverID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	const lockQuery = `SELECT id, balance FROM accounts WHERE id = $1 FOR UPDATE`

	balances := make(map[int64]float64, 2)
	for _, id := range []int64{firstID, secondID} {
		var lockedID int64
		var balance float64
		if err := tx.QueryRowContext(ctx, lockQuery, id).Scan(&lockedID, &balance); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, storage.ErrAccountNotFound
			}
			return nil, fmt.Errorf("failed to lock account %d: %w", id, err)
		}
		balances[lockedID] = balance
	}

	if balances[senderID] < amount {
		return nil, storage.ErrInsufficientFunds
	}

	now := time.Now().UTC()

	const insertQuery = `
		INSERT INTO transactions (sender_account, receiver_account, amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sender_account, receiver_account, amount, created_at
	`
	transaction, err := scanTransaction(tx.QueryRowContext(ctx, insertQuery, senderID, receiverID, amount, now))
	if err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	const updateQuery = `UPDATE accounts SET balance = balance + $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, senderID, -amount, now); err != nil {
		return nil, fmt.Errorf("failed to debit sender: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, receiverID, amount, now); err != nil {
		return nil, fmt.Errorf("failed to credit receiver: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}
	return transaction, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `
		SELECT id, sender_account, receiver_account, amount, created_at
		FROM transactions
		WHERE id = $1
	`
	transaction, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, sender_account, receiver_account, amount, created_at
		FROM transactions
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	// An empty ledger lists as [], not null.
	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

// DeleteTransaction removes the historical record. Balances are left
// untouched; callers must not assume deletion undoes the transfer.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `
		DELETE FROM transactions
		WHERE id = $1
		RETURNING id, sender_account, receiver_account, amount, created_at
	`
	transaction, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return transaction, nil
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var t models.Transaction
	if err := row.Scan(&t.ID, &t.SenderAccount, &t.ReceiverAccount, &t.Amount, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
