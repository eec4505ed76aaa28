package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/edu-crud/user-records-api/internal/core/domain"
	"github.com/edu-crud/user-records-api/internal/core/ports"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for a UNIQUE conflict.
const uniqueViolation pq.ErrorCode = "23505"

const (
	listUsersQuery = `
SELECT id, username, age, gender, created_at
FROM users
ORDER BY created_at DESC`

	findUserQuery = `
SELECT id, username, age, gender, created_at
FROM users
WHERE id = $1`

	insertUserQuery = `
INSERT INTO users (username, password, age, gender)
VALUES ($1, $2, $3, $4)
RETURNING id, username, age, gender, created_at`

	updateUserQuery = `
UPDATE users
SET username = $1, age = $2, gender = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $4
RETURNING id, username, age, gender, updated_at`

	deleteUserQuery = `
DELETE FROM users
WHERE id = $1
RETURNING id, username`
)

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, findUserQuery, id))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, insertUserQuery, u.Username, u.Password, u.Age, string(u.Gender))
	created, err := scanUser(row)
	if err != nil {
		return nil, translate("insert user", err)
	}
	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	var (
		out       domain.User
		gender    string
		updatedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, updateUserQuery, u.Username, u.Age, string(u.Gender), u.ID).
		Scan(&out.ID, &out.Username, &out.Age, &gender, &updatedAt)
	if err != nil {
		return nil, translate("update user", err)
	}

	out.Gender = domain.Gender(gender)
	if updatedAt.Valid {
		ts := updatedAt.Time.UTC()
		out.UpdatedAt = &ts
	}
	return &out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := r.db.QueryRowContext(ctx, deleteUserQuery, id).Scan(&out.ID, &out.Username); err != nil {
		return nil, translate("delete user", err)
	}
	return &out, nil
}

// scanUser reads the public projection {id, username, age, gender, created_at}.
func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		u      domain.User
		gender string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Age, &gender, &u.CreatedAt); err != nil {
		return nil, translate("scan user", err)
	}
	u.Gender = domain.Gender(gender)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// translate maps driver errors onto domain errors; other errors are wrapped
// with op for the server log.
func translate(op string, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUsernameTaken) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrUsernameTaken
	}
	return fmt.Errorf("%s: %w", op, err)
}
