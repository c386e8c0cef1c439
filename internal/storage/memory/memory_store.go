// Package memory implements storage.Store in process memory. It backs the
// test suites and local runs that have no database; a single mutex
// serializes every transfer, which trivially satisfies the per-account
// exclusivity the transfer contract requires.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

type Store struct {
	mu sync.RWMutex

	users        map[int64]*models.User
	accounts     map[int64]*models.Account
	transactions map[int64]*models.Transaction
	ledgerOrder  []int64

	nextUserID        int64
	nextAccountID     int64
	nextTransactionID int64
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*models.User),
		accounts:     make(map[int64]*models.Account),
		transactions: make(map[int64]*models.Transaction),
	}
}

// ---------- users ----------

func (s *Store) CreateUser(_ context.Context, username, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, storage.ErrDuplicateUser
		}
	}

	s.nextUserID++
	now := time.Now().UTC()
	user := &models.User{
		ID:           s.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user
	return copyUser(user), nil
}

func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for id := int64(1); id <= s.nextUserID; id++ {
		if user, ok := s.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, username, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && (other.Username == username || other.Email == email) {
			return nil, storage.ErrDuplicateUser
		}
	}
	user.Username = username
	user.Email = email
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	return copyUser(user), nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	delete(s.users, id)
	return copyUser(user), nil
}

func (s *Store) UserExists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

// ---------- accounts ----------

func (s *Store) CreateAccount(_ context.Context, userID int64, initialBalance float64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, storage.ErrInvalidOwner
	}

	s.nextAccountID++
	now := time.Now().UTC()
	account := &models.Account{
		ID:        s.nextAccountID,
		UserID:    userID,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[account.ID] = account
	return copyAccount(account), nil
}

func (s *Store) GetAccount(_ context.Context, id int64) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	return copyAccount(account), nil
}

func (s *Store) ListAccounts(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0, len(s.accounts))
	for id := int64(1); id <= s.nextAccountID; id++ {
		if account, ok := s.accounts[id]; ok {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (s *Store) UpdateAccount(_ context.Context, id int64, userID *int64, balance *float64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	if userID != nil {
		if _, ok := s.users[*userID]; !ok {
			return nil, storage.ErrInvalidOwner
		}
		account.UserID = *userID
	}
	if balance != nil {
		account.Balance = *balance
	}
	account.UpdatedAt = time.Now().UTC()
	return copyAccount(account), nil
}

func (s *Store) DeleteAccount(_ context.Context, id int64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	delete(s.accounts, id)
	return copyAccount(account), nil
}

// ---------- transactions ----------

// Transfer holds the write lock across the existence check, the balance
// check and all three mutations, so concurrent transfers sharing an account
// can never both pass the check on a stale balance.
func (s *Store) Transfer(_ context.Context, senderID, receiverID int64, amount float64) (*models.Transaction, error) {
	if senderID == receiverID {
		return nil, storage.ErrSameAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.accounts[senderID]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	receiver, ok := s.accounts[receiverID]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	if sender.Balance < amount {
		return nil, storage.ErrInsufficientFunds
	}

	s.nextTransactionID++
	now := time.Now().UTC()
	transaction := &models.Transaction{
		ID:              s.nextTransactionID,
		SenderAccount:   senderID,
		ReceiverAccount: receiverID,
		Amount:          amount,
		CreatedAt:       now,
	}
	s.transactions[transaction.ID] = transaction
	s.ledgerOrder = append(s.ledgerOrder, transaction.ID)

	sender.Balance -= amount
	sender.UpdatedAt = now
	receiver.Balance += amount
	receiver.UpdatedAt = now

	return copyTransaction(transaction), nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transaction, ok := s.transactions[id]
	if !ok {
		return nil, storage.ErrTransactionNotFound
	}
	return copyTransaction(transaction), nil
}

func (s *Store) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]models.Transaction, 0, len(s.ledgerOrder))
	for _, id := range s.ledgerOrder {
		if transaction, ok := s.transactions[id]; ok {
			transactions = append(transactions, *transaction)
		}
	}
	return transactions, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transaction, ok := s.transactions[id]
	if !ok {
		return nil, storage.ErrTransactionNotFound
	}
	delete(s.transactions, id)
	for i, orderedID := range s.ledgerOrder {
		if orderedID == id {
			s.ledgerOrder = append(s.ledgerOrder[:i], s.ledgerOrder[i+1:]...)
			break
		}
	}
	return copyTransaction(transaction), nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyAccount(a *models.Account) *models.Account {
	c := *a
	return &c
}

func copyTransaction(t *models.Transaction) *models.Transaction {
	c := *t
	return &c
}
