package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/edu-crud/user-records-api/internal/core/domain"
)

var userColumns = []string{"id", "username", "age", "gender", "created_at"}

func newMockRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db), mock
}

func TestUserRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery("ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(2), "bob", int64(40), "male", newer).
			AddRow(int64(1), "alice", int64(30), "female", older))

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].Username != "bob" || users[1].Gender != domain.GenderFemale {
		t.Fatalf("unexpected users: %+v", users)
	}
	if !users[0].CreatedAt.Equal(newer) {
		t.Errorf("unexpected created_at: %v", users[0].CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUserRepository_List_EmptyIsNotNil(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", users)
	}
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("WHERE id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	if _, err := repo.FindByID(context.Background(), 9); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "p1", 30, "female").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "alice", int64(30), "female", now))

	u, err := repo.Create(context.Background(), &domain.User{
		Username: "alice", Password: "p1", Age: 30, Gender: domain.GenderFemale,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 1 || u.Age != 30 || u.Password != "" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	_, err := repo.Create(context.Background(), &domain.User{Username: "alice", Password: "p1", Age: 30, Gender: "male"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.User{Username: "alice", Password: "p1", Age: 30, Gender: "male"})
	if err == nil || errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected a wrapped internal error, got %v", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE users").
		WithArgs("alicia", 31, "other", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "age", "gender", "updated_at"}).
			AddRow(int64(1), "alicia", int64(31), "other", now))

	u, err := repo.Update(context.Background(), &domain.User{ID: 1, Username: "alicia", Age: 31, Gender: domain.GenderOther})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.UpdatedAt == nil || !u.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at %v, got %v", now, u.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUserRepository_Update_NotFoundAndConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("UPDATE users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "age", "gender", "updated_at"}))
	mock.ExpectQuery("UPDATE users").
		WillReturnError(&pq.Error{Code: "23505"})

	in := &domain.User{ID: 5, Username: "x", Age: 1, Gender: "male"}
	if _, err := repo.Update(context.Background(), in); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.Update(context.Background(), in); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("DELETE FROM users").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(int64(3), "carol"))
	mock.ExpectQuery("DELETE FROM users").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	u, err := repo.Delete(context.Background(), 3)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if u.ID != 3 || u.Username != "carol" {
		t.Fatalf("unexpected payload: %+v", u)
	}
	if _, err := repo.Delete(context.Background(), 3); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
