package command

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
	"github.com/hassaanfarooq01/inBillo/internal/utils"
)

// UserCommandService writes user records. Passwords are hashed before they
// reach the store; the plaintext never leaves this service.
type UserCommandService struct {
	store  storage.UserStore
	logger *zap.SugaredLogger
}

func NewUserCommandService(store storage.UserStore, logger *zap.SugaredLogger) *UserCommandService {
	return &UserCommandService{store: store, logger: logger}
}

func (s *UserCommandService) CreateUser(cmd cqrs.CreateUserCommand) (*models.User, error) {
	hash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(context.Background(), cmd.Username, cmd.Email, hash)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user created", "userId", user.ID)
	return user, nil
}

// UpdateUser overwrites the fields supplied in cmd; empty fields keep their
// current value.
func (s *UserCommandService) UpdateUser(cmd cqrs.UpdateUserCommand) (*models.User, error) {
	ctx := context.Background()
	current, err := s.store.GetUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	username := current.Username
	if cmd.Username != "" {
		username = cmd.Username
	}
	email := current.Email
	if cmd.Email != "" {
		email = cmd.Email
	}
	passwordHash := current.PasswordHash
	if cmd.Password != "" {
		passwordHash, err = utils.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	return s.store.UpdateUser(ctx, cmd.UserID, username, email, passwordHash)
}

// DeleteUser removes a user record. Accounts referencing the user keep
// their weak back-reference; there is no cascade.
func (s *UserCommandService) DeleteUser(cmd cqrs.DeleteUserCommand) (*models.User, error) {
	return s.store.DeleteUser(context.Background(), cmd.UserID)
}
