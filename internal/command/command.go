// Package command holds the write-side services. Each service receives its
// store handle and collaborators explicitly, so tests can run the full write
// path over the in-memory store with stub caches and publishers.
package command

import (
	"context"

	"github.com/hassaanfarooq01/inBillo/internal/models"
)

// EventPublisher emits ledger lifecycle events. Publish failures are logged
// by the services, never surfaced: the write has already committed.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// AccountViewCache keeps the account read model in sync with mutations.
type AccountViewCache interface {
	CacheAccountView(ctx context.Context, view *models.AccountView)
	InvalidateAccountView(ctx context.Context, id int64)
}

// TransactionViewCache keeps the transaction read model in sync.
type TransactionViewCache interface {
	CacheTransactionView(ctx context.Context, view *models.TransactionView)
	InvalidateTransactionView(ctx context.Context, id int64)
}
