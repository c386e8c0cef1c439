package query

import (
	"context"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

type UserQueryService struct {
	store storage.UserStore
}

func NewUserQueryService(store storage.UserStore) *UserQueryService {
	return &UserQueryService{store: store}
}

func (s *UserQueryService) GetUser(q cqrs.GetUserQuery) (*models.UserView, error) {
	user, err := s.store.GetUser(context.Background(), q.UserID)
	if err != nil {
		return nil, err
	}
	return userToView(user), nil
}

func (s *UserQueryService) ListUsers(cqrs.ListUsersQuery) ([]models.UserView, error) {
	users, err := s.store.ListUsers(context.Background())
	if err != nil {
		return nil, err
	}

	views := make([]models.UserView, len(users))
	for i := range users {
		views[i] = *userToView(&users[i])
	}
	return views, nil
}

// userToView strips the credential from the write model.
func userToView(u *models.User) *models.UserView {
	return &models.UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
