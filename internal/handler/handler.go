// Package handler exposes the ledger over HTTP with gin. Handlers parse and
// validate requests, dispatch to the command/query services behind narrow
// interfaces, and map domain errors to status codes.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hassaanfarooq01/inBillo/internal/middleware"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

// parseIDParam reads a numeric path parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// respondWithDomainError maps storage sentinel errors to status codes.
// Anything unrecognised is a store failure and surfaces as a 500 with the
// provided fallback message.
func respondWithDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, storage.ErrUserNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, storage.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, storage.ErrTransactionNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, storage.ErrInvalidOwner):
		middleware.RespondWithError(c, http.StatusBadRequest, "Owner user does not exist")
	case errors.Is(err, storage.ErrDuplicateUser):
		middleware.RespondWithError(c, http.StatusConflict, "Username or email already exists")
	case errors.Is(err, storage.ErrSameAccount):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Sender and receiver accounts must differ")
	case errors.Is(err, storage.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Insufficient funds")
	case errors.Is(err, storage.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Amount must be greater than zero")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
