package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
	"github.com/hassaanfarooq01/inBillo/internal/storage/memory"
	"github.com/hassaanfarooq01/inBillo/internal/utils"
)

func TestCreateUserHashesPassword(t *testing.T) {
	store := memory.NewStore()
	service := NewUserCommandService(store, zap.NewNop().Sugar())

	user, err := service.CreateUser(cqrs.CreateUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.True(t, utils.CheckPassword("supersecret", user.PasswordHash))
}

func TestCreateUserDuplicate(t *testing.T) {
	store := memory.NewStore()
	service := NewUserCommandService(store, zap.NewNop().Sugar())

	cmd := cqrs.CreateUserCommand{Username: "alice", Email: "alice@example.com", Password: "supersecret"}
	_, err := service.CreateUser(cmd)
	require.NoError(t, err)

	_, err = service.CreateUser(cmd)
	assert.ErrorIs(t, err, storage.ErrDuplicateUser)
}

func TestUpdateUserKeepsUnsetFields(t *testing.T) {
	store := memory.NewStore()
	service := NewUserCommandService(store, zap.NewNop().Sugar())

	user, err := service.CreateUser(cqrs.CreateUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	updated, err := service.UpdateUser(cqrs.UpdateUserCommand{UserID: user.ID, Email: "new@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "new@example.com", updated.Email)
	// Empty password keeps the existing credential.
	assert.True(t, utils.CheckPassword("supersecret", updated.PasswordHash))
}

func TestDeleteUserLeavesAccounts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewUserCommandService(store, zap.NewNop().Sugar())

	user, err := service.CreateUser(cqrs.CreateUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	account, err := store.CreateAccount(ctx, user.ID, 10)
	require.NoError(t, err)

	_, err = service.DeleteUser(cqrs.DeleteUserCommand{UserID: user.ID})
	require.NoError(t, err)

	// The weak back-reference survives: no cascade onto accounts.
	orphan, err := store.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, orphan.UserID)
}
