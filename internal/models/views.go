package models

import "time"

// UserView is the read-optimised projection of a user.
// It never exposes the password hash.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountView is the read-optimised projection of an account.
type AccountView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Balance   float64   `json:"account_balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionView is the read-optimised projection of a ledger record.
type TransactionView struct {
	ID              int64     `json:"id"`
	SenderAccount   int64     `json:"senderAccount"`
	ReceiverAccount int64     `json:"receiverAccount"`
	Amount          float64   `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
}
