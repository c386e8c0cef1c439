package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/events"
	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/repository"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

// TransferCommandService is the transfer engine. It validates a proposed
// movement between two accounts and delegates the check-and-mutate sequence
// to the store's atomic Transfer primitive.
type TransferCommandService struct {
	store        storage.TransactionStore
	accounts     storage.AccountStore
	views        TransactionViewCache
	accountViews AccountViewCache
	publisher    EventPublisher
	logger       *zap.SugaredLogger
}

func NewTransferCommandService(
	store storage.TransactionStore,
	accounts storage.AccountStore,
	views TransactionViewCache,
	accountViews AccountViewCache,
	publisher EventPublisher,
	logger *zap.SugaredLogger,
) *TransferCommandService {
	return &TransferCommandService{
		store:        store,
		accounts:     accounts,
		views:        views,
		accountViews: accountViews,
		publisher:    publisher,
		logger:       logger,
	}
}

// Transfer moves cmd.Amount from the sender account to the receiver account
// and appends one ledger record. Preconditions, first failure wins:
//
//  1. sender != receiver
//  2. amount > 0
//  3. both accounts exist
//  4. sender balance covers the amount
//
// The self-transfer check runs before the amount check so that a
// self-transfer is reported as ErrSameAccount whatever the amount. On any
// failure, balances are untouched and no record is created. The operation is
// not idempotent: repeating it executes another transfer.
func (s *TransferCommandService) Transfer(cmd cqrs.TransferCommand) (*models.Transaction, error) {
	if cmd.SenderAccount == cmd.ReceiverAccount {
		return nil, storage.ErrSameAccount
	}
	if cmd.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	ctx := context.Background()
	transaction, err := s.store.Transfer(ctx, cmd.SenderAccount, cmd.ReceiverAccount, cmd.Amount)
	if err != nil {
		return nil, err
	}

	s.views.CacheTransactionView(ctx, repository.TransactionToView(transaction))
	// Re-cache both parties inline so a read right after the transfer sees
	// the committed balances; the stream subscriber converges them again.
	s.refreshAccountViews(ctx, transaction.SenderAccount, transaction.ReceiverAccount)

	if err := s.publisher.Publish(ctx, events.TransferCompleted, events.TransferCompletedEvent{
		TransactionID:   transaction.ID,
		SenderAccount:   transaction.SenderAccount,
		ReceiverAccount: transaction.ReceiverAccount,
		Amount:          transaction.Amount,
	}); err != nil {
		s.logger.Errorw("failed to publish transfer.completed event", "transactionId", transaction.ID, "error", err)
	}

	s.logger.Infow("transfer completed",
		"transactionId", transaction.ID,
		"senderAccount", transaction.SenderAccount,
		"receiverAccount", transaction.ReceiverAccount,
		"amount", transaction.Amount,
	)
	return transaction, nil
}

func (s *TransferCommandService) refreshAccountViews(ctx context.Context, ids ...int64) {
	for _, id := range ids {
		account, err := s.accounts.GetAccount(ctx, id)
		if err != nil {
			s.logger.Warnw("skipping account view refresh", "accountId", id, "error", err)
			continue
		}
		s.accountViews.CacheAccountView(ctx, repository.AccountToView(account))
	}
}

// DeleteTransaction removes a ledger record. The balance effects of the
// recorded transfer are deliberately left in place.
func (s *TransferCommandService) DeleteTransaction(cmd cqrs.DeleteTransactionCommand) (*models.Transaction, error) {
	ctx := context.Background()
	transaction, err := s.store.DeleteTransaction(ctx, cmd.TransactionID)
	if err != nil {
		return nil, err
	}

	s.views.InvalidateTransactionView(ctx, cmd.TransactionID)

	if err := s.publisher.Publish(ctx, events.TransactionDeleted, events.TransactionDeletedEvent{
		TransactionID: cmd.TransactionID,
	}); err != nil {
		s.logger.Errorw("failed to publish transaction.deleted event", "transactionId", cmd.TransactionID, "error", err)
	}
	return transaction, nil
}
