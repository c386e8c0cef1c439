// Package events publishes and consumes ledger lifecycle events over Redis
// Streams. The in-process subscriber uses them to keep the Redis read model
// converged after transfers.
package events

import "time"

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	TransferCompleted  = "transfer.completed"
	TransactionDeleted = "transaction.deleted"
)

// LedgerEventsStream carries every ledger event.
const LedgerEventsStream = "ledger.events"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountCreatedEvent struct {
	AccountID int64   `json:"accountId"`
	UserID    int64   `json:"userId"`
	Balance   float64 `json:"balance"`
}

type AccountUpdatedEvent struct {
	AccountID int64   `json:"accountId"`
	UserID    int64   `json:"userId"`
	Balance   float64 `json:"balance"`
}

type AccountDeletedEvent struct {
	AccountID int64 `json:"accountId"`
}

type TransferCompletedEvent struct {
	TransactionID   int64   `json:"transactionId"`
	SenderAccount   int64   `json:"senderAccount"`
	ReceiverAccount int64   `json:"receiverAccount"`
	Amount          float64 `json:"amount"`
}

type TransactionDeletedEvent struct {
	TransactionID int64 `json:"transactionId"`
}
