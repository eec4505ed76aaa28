package ports

import (
	"context"

	"github.com/edu-crud/user-records-api/internal/core/domain"
)

// InputSource tells the service where the transport read a create request from.
type InputSource string

const (
	SourceBody  InputSource = "body"
	SourceQuery InputSource = "query"
)

// CreateUserInput is the DTO passed from the transport layer to CreateUser.
// Age and Gender are raw strings; the service parses and normalizes them.
type CreateUserInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Age      string `validate:"required"`
	Gender   string `validate:"required"`
	Source   InputSource
}

// UpdateUserInput carries the mutable fields of a user. There is no password.
type UpdateUserInput struct {
	ID       string
	Username string `validate:"required"`
	Age      string `validate:"required"`
	Gender   string `validate:"required"`
}

// UserService defines the use-case operations on user records.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
}
