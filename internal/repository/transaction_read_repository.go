package repository

import (
	"context"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/redis"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

const transactionViewKeyPrefix = "transaction:view:"

// Ledger records are immutable, so cached transaction views never go stale;
// they are only invalidated when the record itself is deleted.
type TransactionReadRepository struct {
	store storage.TransactionStore
	cache *redis.ViewCache[models.TransactionView]
}

func NewTransactionReadRepository(store storage.TransactionStore, client *goredis.Client, logger *zap.SugaredLogger) *TransactionReadRepository {
	return &TransactionReadRepository{
		store: store,
		cache: redis.NewViewCache[models.TransactionView](client, 0, logger),
	}
}

func transactionViewKey(id int64) string {
	return transactionViewKeyPrefix + strconv.FormatInt(id, 10)
}

// GetByID returns a TransactionView, trying Redis first then the store.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id int64) (*models.TransactionView, error) {
	if view, ok := r.cache.Get(ctx, transactionViewKey(id)); ok {
		return view, nil
	}

	transaction, err := r.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	view := TransactionToView(transaction)
	r.CacheTransactionView(ctx, view)
	return view, nil
}

// List returns the full ledger in insertion order from the store.
func (r *TransactionReadRepository) List(ctx context.Context) ([]models.TransactionView, error) {
	transactions, err := r.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.TransactionView, len(transactions))
	for i := range transactions {
		views[i] = *TransactionToView(&transactions[i])
	}
	return views, nil
}

// CacheTransactionView stores the read model for a ledger record.
func (r *TransactionReadRepository) CacheTransactionView(ctx context.Context, view *models.TransactionView) {
	r.cache.Set(ctx, transactionViewKey(view.ID), view)
}

// InvalidateTransactionView removes the read model entry for a deleted record.
func (r *TransactionReadRepository) InvalidateTransactionView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, transactionViewKey(id))
}

// TransactionToView converts the write model to its read projection.
func TransactionToView(t *models.Transaction) *models.TransactionView {
	return &models.TransactionView{
		ID:              t.ID,
		SenderAccount:   t.SenderAccount,
		ReceiverAccount: t.ReceiverAccount,
		Amount:          t.Amount,
		CreatedAt:       t.CreatedAt,
	}
}
