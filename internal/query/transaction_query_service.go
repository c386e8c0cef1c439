package query

import (
	"context"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/models"
)

// TransactionViewReader is the read-repository surface the query service needs.
type TransactionViewReader interface {
	GetByID(ctx context.Context, id int64) (*models.TransactionView, error)
	List(ctx context.Context) ([]models.TransactionView, error)
}

type TransactionQueryService struct {
	readRepo TransactionViewReader
}

func NewTransactionQueryService(readRepo TransactionViewReader) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

func (s *TransactionQueryService) GetTransaction(q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	return s.readRepo.GetByID(context.Background(), q.TransactionID)
}

func (s *TransactionQueryService) ListTransactions(cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	return s.readRepo.List(context.Background())
}
