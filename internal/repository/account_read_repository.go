// Package repository holds the Redis-backed read repositories. Reads go to
// the Redis view cache first and fall back to the store, warming the cache
// on every cold read. The store handle is an interface so the read side
// works identically over PostgreSQL and the in-memory store.
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

const accountViewKeyPrefix = "account:view:"

type AccountReadRepository struct {
	store storage.AccountStore
	cache *redis.ViewCache[models.AccountView]
}

func NewAccountReadRepository(store storage.AccountStore, client *goredis.Client, logger *zap.SugaredLogger) *AccountReadRepository {
	return &AccountReadRepository{
		store: store,
		cache: redis.NewViewCache[models.AccountView](client, 0, logger),
	}
}

func accountViewKey(id int64) string {
	return accountViewKeyPrefix + strconv.FormatInt(id, 10)
}

// GetByID returns an AccountView, trying Redis first then the store.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.AccountView, error) {
	if view, ok := r.cache.Get(ctx, accountViewKey(id)); ok {
		return view, nil
	}

	account, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	view := AccountToView(account)
	r.CacheAccountView(ctx, view)
	return view, nil
}

// List returns every account straight from the store; collection reads are
// not served from the view cache.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.AccountView, error) {
	accounts, err := r.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.AccountView, len(accounts))
	for i := range accounts {
		views[i] = *AccountToView(&accounts[i])
	}
	return views, nil
}

// CacheAccountView stores or refreshes the read model for an account.
// Called by the command side after every mutation.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	r.cache.Set(ctx, accountViewKey(view.ID), view)
}

// InvalidateAccountView removes the read model entry for a deleted account.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, accountViewKey(id))
}

// AccountToView converts the write model to its read projection.
func AccountToView(a *models.Account) *models.AccountView {
	return &models.AccountView{
		ID:        a.ID,
		UserID:    a.UserID,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
