package cqrs

type CreateUserCommand struct {
	Username string
	Email    string
	Password string
}

type UpdateUserCommand struct {
	UserID   int64
	Username string
	Email    string
	Password string
}

type DeleteUserCommand struct {
	UserID int64
}

type CreateAccountCommand struct {
	UserID         int64
	InitialBalance float64
}

// UpdateAccountCommand carries optional fields; nil means "leave unchanged".
type UpdateAccountCommand struct {
	AccountID int64
	UserID    *int64
	Balance   *float64
}

type DeleteAccountCommand struct {
	AccountID int64
}

// TransferCommand asks the transfer engine to move Amount from the sender
// account to the receiver account.
type TransferCommand struct {
	SenderAccount   int64
	ReceiverAccount int64
	Amount          float64
}

type DeleteTransactionCommand struct {
	TransactionID int64
}
