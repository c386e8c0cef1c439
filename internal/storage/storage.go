// Package storage defines the persistence contracts for the ledger and the
// sentinel errors every implementation reports domain-rule failures with.
// Two implementations exist: postgres (production) and memory (tests, local
// runs without a database).
package storage

import (
	"context"
	"errors"

	"github.com/hassaanfarooq01/inBillo/internal/models"
)

// Domain-rule failures. These are expected outcomes returned as values and
// mapped to client errors by the HTTP layer; anything else coming out of a
// store is an infrastructure failure.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidOwner        = errors.New("owner user does not exist")
	ErrSameAccount         = errors.New("sender and receiver accounts must differ")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrDuplicateUser       = errors.New("username or email already exists")
)

// UserStore holds user records. UserExists is the identity precondition the
// account store consults before accepting an owner reference.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, username, email, passwordHash string) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (*models.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

// AccountStore holds accounts and their balances. Balance mutation outside
// of Transfer happens only through UpdateAccount (administrative update).
type AccountStore interface {
	CreateAccount(ctx context.Context, userID int64, initialBalance float64) (*models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateAccount(ctx context.Context, id int64, userID *int64, balance *float64) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) (*models.Account, error)
}

// TransactionStore is the append-only ledger plus the atomic transfer
// primitive. Transfer rejects a transfer between an account and itself, then
// performs the existence check, the balance check, the ledger append and
// both balance mutations as one unit: either all of it persists or none of
// it does, and two transfers touching the same account are serialized
// against each other.
//
// DeleteTransaction removes the historical record only; it never reverses
// the balance effects of the transfer it recorded.
type TransactionStore interface {
	Transfer(ctx context.Context, senderID, receiverID int64, amount float64) (*models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) (*models.Transaction, error)
}

// Store is the full persistence surface of the ledger.
type Store interface {
	UserStore
	AccountStore
	TransactionStore
}
