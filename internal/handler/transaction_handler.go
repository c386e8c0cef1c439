package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/middleware"
	"github.com/hassaanfarooq01/inBillo/internal/models"
)

// TransferCommander defines the write-side operations used by TransactionHandler.
type TransferCommander interface {
	Transfer(cqrs.TransferCommand) (*models.Transaction, error)
	DeleteTransaction(cqrs.DeleteTransactionCommand) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(cqrs.GetTransactionQuery) (*models.TransactionView, error)
	ListTransactions(cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
}

type TransactionHandler struct {
	commands TransferCommander
	queries  TransactionQuerier
}

// TransferRequest carries a proposed transfer. The amount is deliberately
// not validated here: its sign is a transfer-engine precondition, so a
// non-positive amount yields a 422 rather than a 400, and only after the
// self-transfer check has passed.
type TransferRequest struct {
	SenderAccount   int64   `json:"senderAccount" validate:"required,gt=0"`
	ReceiverAccount int64   `json:"receiverAccount" validate:"required,gt=0"`
	Amount          float64 `json:"amount"`
}

type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

func NewTransactionHandler(commands TransferCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.commands.Transfer(cqrs.TransferCommand{
		SenderAccount:   req.SenderAccount,
		ReceiverAccount: req.ReceiverAccount,
		Amount:          req.Amount,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	views, err := h.queries.ListTransactions(cqrs.ListTransactionsQuery{})
	if err != nil {
		respondWithDomainError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.queries.GetTransaction(cqrs.GetTransactionQuery{TransactionID: transactionID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteTransaction removes a ledger record. It does not reverse the
// balance effects of the recorded transfer.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	transaction, err := h.commands.DeleteTransaction(cqrs.DeleteTransactionCommand{TransactionID: transactionID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, transaction)
}
