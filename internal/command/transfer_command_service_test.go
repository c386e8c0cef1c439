package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
	"github.com/hassaanfarooq01/inBillo/internal/storage/memory"
)

// ---- stub collaborators ----

type stubPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *stubPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *stubPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type stubTransactionViews struct {
	cached      []int64
	invalidated []int64
}

func (c *stubTransactionViews) CacheTransactionView(_ context.Context, view *models.TransactionView) {
	c.cached = append(c.cached, view.ID)
}

func (c *stubTransactionViews) InvalidateTransactionView(_ context.Context, id int64) {
	c.invalidated = append(c.invalidated, id)
}

type stubAccountViews struct {
	cached      []int64
	invalidated []int64
}

func (c *stubAccountViews) CacheAccountView(_ context.Context, view *models.AccountView) {
	c.cached = append(c.cached, view.ID)
}

func (c *stubAccountViews) InvalidateAccountView(_ context.Context, id int64) {
	c.invalidated = append(c.invalidated, id)
}

// ---- helpers ----

type transferFixture struct {
	store        *memory.Store
	service      *TransferCommandService
	publisher    *stubPublisher
	views        *stubTransactionViews
	accountViews *stubAccountViews
	sender       int64
	receiver     int64
}

func newTransferFixture(t *testing.T, senderBalance, receiverBalance float64) *transferFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	user, err := store.CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	sender, err := store.CreateAccount(ctx, user.ID, senderBalance)
	require.NoError(t, err)
	receiver, err := store.CreateAccount(ctx, user.ID, receiverBalance)
	require.NoError(t, err)

	publisher := &stubPublisher{}
	views := &stubTransactionViews{}
	accountViews := &stubAccountViews{}
	service := NewTransferCommandService(store, store, views, accountViews, publisher, zap.NewNop().Sugar())

	return &transferFixture{
		store:        store,
		service:      service,
		publisher:    publisher,
		views:        views,
		accountViews: accountViews,
		sender:       sender.ID,
		receiver:     receiver.ID,
	}
}

func (f *transferFixture) balances(t *testing.T) (float64, float64) {
	t.Helper()
	ctx := context.Background()
	sender, err := f.store.GetAccount(ctx, f.sender)
	require.NoError(t, err)
	receiver, err := f.store.GetAccount(ctx, f.receiver)
	require.NoError(t, err)
	return sender.Balance, receiver.Balance
}

func (f *transferFixture) ledgerLen(t *testing.T) int {
	t.Helper()
	ledger, err := f.store.ListTransactions(context.Background())
	require.NoError(t, err)
	return len(ledger)
}

// ---- tests ----

func TestTransferSuccess(t *testing.T) {
	f := newTransferFixture(t, 100, 50)

	transaction, err := f.service.Transfer(cqrs.TransferCommand{
		SenderAccount:   f.sender,
		ReceiverAccount: f.receiver,
		Amount:          30,
	})
	require.NoError(t, err)

	assert.Equal(t, f.sender, transaction.SenderAccount)
	assert.Equal(t, f.receiver, transaction.ReceiverAccount)
	assert.Equal(t, 30.0, transaction.Amount)

	senderBalance, receiverBalance := f.balances(t)
	assert.Equal(t, 70.0, senderBalance)
	assert.Equal(t, 80.0, receiverBalance)

	assert.Equal(t, []string{"transfer.completed"}, f.publisher.published())
	assert.Equal(t, []int64{transaction.ID}, f.views.cached)
}

// A read right after a transfer must not see a stale cached balance, so the
// engine re-caches both account views before returning.
func TestTransferRefreshesAccountViews(t *testing.T) {
	f := newTransferFixture(t, 100, 50)

	_, err := f.service.Transfer(cqrs.TransferCommand{
		SenderAccount:   f.sender,
		ReceiverAccount: f.receiver,
		Amount:          30,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{f.sender, f.receiver}, f.accountViews.cached)
}

// The engine is not idempotent: repeating a transfer executes it again.
func TestTransferNotIdempotent(t *testing.T) {
	f := newTransferFixture(t, 100, 0)

	cmd := cqrs.TransferCommand{SenderAccount: f.sender, ReceiverAccount: f.receiver, Amount: 25}
	_, err := f.service.Transfer(cmd)
	require.NoError(t, err)
	_, err = f.service.Transfer(cmd)
	require.NoError(t, err)

	senderBalance, receiverBalance := f.balances(t)
	assert.Equal(t, 50.0, senderBalance)
	assert.Equal(t, 50.0, receiverBalance)
	assert.Equal(t, 2, f.ledgerLen(t))
}

func TestTransferSameAccount(t *testing.T) {
	f := newTransferFixture(t, 100, 0)

	// The self-transfer check wins over every other precondition,
	// whatever the amount.
	for _, amount := range []float64{30, 0, -5, 1e9} {
		_, err := f.service.Transfer(cqrs.TransferCommand{
			SenderAccount:   f.sender,
			ReceiverAccount: f.sender,
			Amount:          amount,
		})
		assert.ErrorIs(t, err, storage.ErrSameAccount, "amount %v", amount)
	}

	senderBalance, _ := f.balances(t)
	assert.Equal(t, 100.0, senderBalance)
	assert.Zero(t, f.ledgerLen(t))
	assert.Empty(t, f.publisher.published())
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	f := newTransferFixture(t, 100, 0)

	for _, amount := range []float64{0, -1, -100.5} {
		_, err := f.service.Transfer(cqrs.TransferCommand{
			SenderAccount:   f.sender,
			ReceiverAccount: f.receiver,
			Amount:          amount,
		})
		assert.ErrorIs(t, err, storage.ErrInvalidAmount, "amount %v", amount)
	}

	senderBalance, receiverBalance := f.balances(t)
	assert.Equal(t, 100.0, senderBalance)
	assert.Equal(t, 0.0, receiverBalance)
	assert.Zero(t, f.ledgerLen(t))
}

func TestTransferAccountNotFound(t *testing.T) {
	f := newTransferFixture(t, 100, 0)

	_, err := f.service.Transfer(cqrs.TransferCommand{
		SenderAccount:   f.sender,
		ReceiverAccount: 999,
		Amount:          10,
	})
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)

	_, err = f.service.Transfer(cqrs.TransferCommand{
		SenderAccount:   999,
		ReceiverAccount: f.receiver,
		Amount:          10,
	})
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)

	assert.Zero(t, f.ledgerLen(t))
	assert.Empty(t, f.publisher.published())
}

func TestTransferInsufficientFundsLeavesStateUntouched(t *testing.T) {
	f := newTransferFixture(t, 10, 5)

	_, err := f.service.Transfer(cqrs.TransferCommand{
		SenderAccount:   f.sender,
		ReceiverAccount: f.receiver,
		Amount:          50,
	})
	assert.ErrorIs(t, err, storage.ErrInsufficientFunds)

	senderBalance, receiverBalance := f.balances(t)
	assert.Equal(t, 10.0, senderBalance)
	assert.Equal(t, 5.0, receiverBalance)
	assert.Zero(t, f.ledgerLen(t))
	assert.Empty(t, f.publisher.published())
}

func TestDeleteTransactionDoesNotReverse(t *testing.T) {
	f := newTransferFixture(t, 100, 0)

	transaction, err := f.service.Transfer(cqrs.TransferCommand{
		SenderAccount:   f.sender,
		ReceiverAccount: f.receiver,
		Amount:          40,
	})
	require.NoError(t, err)

	deleted, err := f.service.DeleteTransaction(cqrs.DeleteTransactionCommand{TransactionID: transaction.ID})
	require.NoError(t, err)
	assert.Equal(t, transaction.ID, deleted.ID)

	senderBalance, receiverBalance := f.balances(t)
	assert.Equal(t, 60.0, senderBalance)
	assert.Equal(t, 40.0, receiverBalance)

	assert.Equal(t, []int64{transaction.ID}, f.views.invalidated)
	assert.Equal(t, []string{"transfer.completed", "transaction.deleted"}, f.publisher.published())
}

func TestDeleteTransactionNotFound(t *testing.T) {
	f := newTransferFixture(t, 100, 0)

	_, err := f.service.DeleteTransaction(cqrs.DeleteTransactionCommand{TransactionID: 42})
	assert.ErrorIs(t, err, storage.ErrTransactionNotFound)
}
