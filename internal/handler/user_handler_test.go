package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hassaanfarooq01/inBillo/internal/cqrs"
	"github.com/hassaanfarooq01/inBillo/internal/models"
	"github.com/hassaanfarooq01/inBillo/internal/storage"
)

// ---- mock implementations ----

type mockUserCommander struct {
	createFn func(cqrs.CreateUserCommand) (*models.User, error)
	updateFn func(cqrs.UpdateUserCommand) (*models.User, error)
	deleteFn func(cqrs.DeleteUserCommand) (*models.User, error)
}

func (m *mockUserCommander) CreateUser(cmd cqrs.CreateUserCommand) (*models.User, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserCommander) UpdateUser(cmd cqrs.UpdateUserCommand) (*models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserCommander) DeleteUser(cmd cqrs.DeleteUserCommand) (*models.User, error) {
	if m.deleteFn != nil {
		return m.deleteFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockUserQuerier struct {
	getFn  func(cqrs.GetUserQuery) (*models.UserView, error)
	listFn func(cqrs.ListUsersQuery) ([]models.UserView, error)
}

func (m *mockUserQuerier) GetUser(q cqrs.GetUserQuery) (*models.UserView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserQuerier) ListUsers(q cqrs.ListUsersQuery) ([]models.UserView, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newUserTestRouter(cmds UserCommander, qrys UserQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(cmds, qrys)
	v1 := r.Group("/v1/users")
	v1.POST("", h.CreateUser)
	v1.GET("", h.ListUsers)
	v1.GET("/:id", h.GetUser)
	v1.PUT("/:id", h.UpdateUser)
	v1.DELETE("/:id", h.DeleteUser)
	return r
}

// ---- test data ----

var aTestUser = &models.User{
	ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "hash",
	CreatedAt: time.Now(), UpdatedAt: time.Now(),
}

var aTestUserView = &models.UserView{
	ID: 1, Username: "alice", Email: "alice@example.com",
	CreatedAt: time.Now(), UpdatedAt: time.Now(),
}

func aValidCreateUserBody() map[string]interface{} {
	return map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	}
}

// ---- tests ----

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(cqrs.CreateUserCommand) (*models.User, error)
		expectedStatus int
	}{
		{
			name:           "success - user created",
			body:           aValidCreateUserBody(),
			createFn:       func(cmd cqrs.CreateUserCommand) (*models.User, error) { return aTestUser, nil },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing fields",
			body:           map[string]interface{}{"username": "alice"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid email",
			body:           map[string]interface{}{"username": "alice", "email": "nope", "password": "supersecret"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "conflict - duplicate username or email",
			body: aValidCreateUserBody(),
			createFn: func(cmd cqrs.CreateUserCommand) (*models.User, error) {
				return nil, storage.ErrDuplicateUser
			},
			expectedStatus: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newUserTestRouter(&mockUserCommander{createFn: tt.createFn}, &mockUserQuerier{})
			w := doRequest(router, http.MethodPost, "/v1/users", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

// The password hash must never appear in a response body.
func TestCreateUserExcludesCredential(t *testing.T) {
	router := newUserTestRouter(
		&mockUserCommander{createFn: func(cmd cqrs.CreateUserCommand) (*models.User, error) { return aTestUser, nil }},
		&mockUserQuerier{},
	)

	w := doRequest(router, http.MethodPost, "/v1/users", aValidCreateUserBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "hash") || strings.Contains(w.Body.String(), "password") {
		t.Errorf("response leaks credential material: %s", w.Body.String())
	}
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		getFn          func(cqrs.GetUserQuery) (*models.UserView, error)
		expectedStatus int
	}{
		{
			name:           "success",
			url:            "/v1/users/1",
			getFn:          func(q cqrs.GetUserQuery) (*models.UserView, error) { return aTestUserView, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			url:  "/v1/users/42",
			getFn: func(q cqrs.GetUserQuery) (*models.UserView, error) {
				return nil, storage.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - non-numeric id",
			url:            "/v1/users/abc",
			getFn:          nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newUserTestRouter(&mockUserCommander{}, &mockUserQuerier{getFn: tt.getFn})
			w := doRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	router := newUserTestRouter(&mockUserCommander{}, &mockUserQuerier{
		listFn: func(q cqrs.ListUsersQuery) ([]models.UserView, error) {
			return []models.UserView{*aTestUserView}, nil
		},
	})

	w := doRequest(router, http.MethodGet, "/v1/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ListUsersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].Username != "alice" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestUpdateUser(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           interface{}
		updateFn       func(cqrs.UpdateUserCommand) (*models.User, error)
		expectedStatus int
	}{
		{
			name:           "success",
			url:            "/v1/users/1",
			body:           map[string]interface{}{"email": "new@example.com"},
			updateFn:       func(cmd cqrs.UpdateUserCommand) (*models.User, error) { return aTestUser, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			url:  "/v1/users/42",
			body: map[string]interface{}{"email": "new@example.com"},
			updateFn: func(cmd cqrs.UpdateUserCommand) (*models.User, error) {
				return nil, storage.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - invalid email",
			url:            "/v1/users/1",
			body:           map[string]interface{}{"email": "nope"},
			updateFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newUserTestRouter(&mockUserCommander{updateFn: tt.updateFn}, &mockUserQuerier{})
			w := doRequest(router, http.MethodPut, tt.url, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteUser(t *testing.T) {
	router := newUserTestRouter(
		&mockUserCommander{deleteFn: func(cmd cqrs.DeleteUserCommand) (*models.User, error) { return aTestUser, nil }},
		&mockUserQuerier{},
	)

	w := doRequest(router, http.MethodDelete, "/v1/users/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}
