package cqrs

// ---------- User queries ----------

// GetUserQuery fetches a single user by id.
type GetUserQuery struct {
	UserID int64
}

// ListUsersQuery fetches all users.
type ListUsersQuery struct{}

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by id.
type GetAccountQuery struct {
	AccountID int64
}

// ListAccountsQuery fetches all accounts.
type ListAccountsQuery struct{}

// ---------- Transaction queries ----------

// GetTransactionQuery fetches a single ledger record.
type GetTransactionQuery struct {
	TransactionID int64
}

// ListTransactionsQuery fetches the full ledger in insertion order.
type ListTransactionsQuery struct{}
