// Package query holds the read-side services. Account and transaction reads
// are served through the Redis-first read repositories; user reads go
// straight to the store.
package query

import (
	"context"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/models"
)

// AccountViewReader is the read-repository surface the query service needs.
type AccountViewReader interface {
	GetByID(ctx context.Context, id int64) (*models.AccountView, error)
	List(ctx context.Context) ([]models.AccountView, error)
}

type AccountQueryService struct {
	readRepo AccountViewReader
}

func NewAccountQueryService(readRepo AccountViewReader) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

func (s *AccountQueryService) GetAccount(q cqrs.GetAccountQuery) (*models.AccountView, error) {
	return s.readRepo.GetByID(context.Background(), q.AccountID)
}

func (s *AccountQueryService) ListAccounts(cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	return s.readRepo.List(context.Background())
}
