package command

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/events"
	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/repository"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

// AccountCommandService writes account state and keeps the read model in sync.
type AccountCommandService struct {
	store     storage.AccountStore
	views     AccountViewCache
	publisher EventPublisher
	logger    *zap.SugaredLogger
}

func NewAccountCommandService(
	store storage.AccountStore,
	views AccountViewCache,
	publisher EventPublisher,
	logger *zap.SugaredLogger,
) *AccountCommandService {
	return &AccountCommandService{
		store:     store,
		views:     views,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateAccount provisions an account for an existing user. The store
// rejects the command with ErrInvalidOwner when the user does not resolve.
func (s *AccountCommandService) CreateAccount(cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	ctx := context.Background()
	account, err := s.store.CreateAccount(ctx, cmd.UserID, cmd.InitialBalance)
	if err != nil {
		return nil, err
	}

	s.views.CacheAccountView(ctx, repository.AccountToView(account))

	if err := s.publisher.Publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		AccountID: account.ID,
		UserID:    account.UserID,
		Balance:   account.Balance,
	}); err != nil {
		s.logger.Errorw("failed to publish account.created event", "accountId", account.ID, "error", err)
	}
	return account, nil
}

// UpdateAccount applies an administrative update: reassigning the owner
// and/or overwriting the balance directly, outside the transfer engine.
func (s *AccountCommandService) UpdateAccount(cmd cqrs.UpdateAccountCommand) (*models.Account, error) {
	ctx := context.Background()
	account, err := s.store.UpdateAccount(ctx, cmd.AccountID, cmd.UserID, cmd.Balance)
	if err != nil {
		return nil, err
	}

	s.views.CacheAccountView(ctx, repository.AccountToView(account))

	if err := s.publisher.Publish(ctx, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID: account.ID,
		UserID:    account.UserID,
		Balance:   account.Balance,
	}); err != nil {
		s.logger.Errorw("failed to publish account.updated event", "accountId", account.ID, "error", err)
	}
	return account, nil
}

// DeleteAccount removes an account and returns the deleted record.
// Historical transactions referencing it remain in the ledger.
func (s *AccountCommandService) DeleteAccount(cmd cqrs.DeleteAccountCommand) (*models.Account, error) {
	ctx := context.Background()
	account, err := s.store.DeleteAccount(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}

	s.views.InvalidateAccountView(ctx, cmd.AccountID)

	if err := s.publisher.Publish(ctx, events.AccountDeleted, events.AccountDeletedEvent{
		AccountID: cmd.AccountID,
	}); err != nil {
		s.logger.Errorw("failed to publish account.deleted event", "accountId", cmd.AccountID, "error", err)
	}
	return account, nil
}

// HandleLedgerEvent refreshes the cached views of both parties after a
// transfer. The balance mutation itself already committed atomically in the
// store; re-caching is idempotent, so duplicate delivery is harmless.
func (s *AccountCommandService) HandleLedgerEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransferCompleted {
		return nil
	}

	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer.completed payload: %w", err)
	}
	var data events.TransferCompletedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal transfer.completed event: %w", err)
	}

	for _, id := range []int64{data.SenderAccount, data.ReceiverAccount} {
		account, err := s.store.GetAccount(ctx, id)
		if err != nil {
			// The account may have been deleted since the transfer.
			s.logger.Warnw("skipping view refresh", "accountId", id, "error", err)
			continue
		}
		s.views.CacheAccountView(ctx, repository.AccountToView(account))
	}
	return nil
}
