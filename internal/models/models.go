package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Account struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Balance   float64   `json:"account_balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Transaction is an immutable ledger record of a completed transfer.
// It references the two accounts by id only; deleting an account does not
// touch its historical transactions.
type Transaction struct {
	ID              int64     `json:"id"`
	SenderAccount   int64     `json:"senderAccount"`
	ReceiverAccount int64     `json:"receiverAccount"`
	Amount          float64   `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
}
