package ports

import (
	"context"

	"github.com/edu-crud/user-records-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
//
// Implementations translate store-specific failures into domain errors:
// a missing row is domain.ErrUserNotFound and a unique violation on
// username is domain.ErrUsernameTaken. Anything else is returned wrapped.
type UserRepository interface {
	// List returns every user, newest first. Password is not populated.
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create inserts u and returns the stored row (ID and CreatedAt filled).
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// Update overwrites username, age and gender of u.ID and stamps updated_at.
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	// Delete removes the row and returns its id and username.
	Delete(ctx context.Context, id int64) (*domain.User, error)
}
