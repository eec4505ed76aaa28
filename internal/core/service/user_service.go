package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/edu-crud/user-records-api/internal/core/domain"
	"github.com/edu-crud/user-records-api/internal/core/ports"
	"github.com/edu-crud/user-records-api/internal/pkg/metrics"
)

const (
	msgAllRequired        = "All fields are required"
	msgAllRequiredInQuery = "All fields are required in query parameters"
	msgAgeRange           = "Age must be between 1 and 120"
	msgGender             = "Gender must be male, female, or other"
	msgUpdateRequired     = "Username, age, and gender are required"
	msgAgeNotNumber       = "Age must be a whole number"
)

var (
	ageRule    = fmt.Sprintf("min=%d,max=%d", domain.MinAge, domain.MaxAge)
	genderRule = fmt.Sprintf("oneof=%s %s %s", domain.GenderMale, domain.GenderFemale, domain.GenderOther)
)

// UserService validates requests and delegates persistence to the repository.
// It keeps no state between calls.
type UserService struct {
	repo     ports.UserRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storeFailure("list", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, s.storeFailure("get", err)
	}
	return user, nil
}

// CreateUser is shared by both create entry points. Input is fully validated
// before the store is touched; the first failing rule wins.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	age, gender, err := s.validateCreate(input)
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("create").Inc()
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username: input.Username,
		Password: input.Password,
		Age:      age,
		Gender:   gender,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.logger.Info().Str("username", input.Username).Msg("username already exists")
			return nil, domain.ErrUsernameTaken
		}
		return nil, s.storeFailure("create", err)
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(sourceOrBody(input.Source))).Inc()
	s.logger.Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Str("entry", string(sourceOrBody(input.Source))).
		Msg("user created")

	return created, nil
}

// UpdateUser only checks that the fields are present; age range and gender
// set are not enforced here, unlike CreateUser.
func (s *UserService) UpdateUser(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues("update").Inc()
		return nil, domain.NewValidationError(msgUpdateRequired)
	}

	userID, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	age, ok := parseAge(input.Age)
	if !ok {
		metrics.ValidationFailuresTotal.WithLabelValues("update").Inc()
		return nil, domain.NewValidationError(msgAgeNotNumber)
	}

	updated, err := s.repo.Update(ctx, &domain.User{
		ID:       userID,
		Username: input.Username,
		Age:      age,
		Gender:   domain.Gender(strings.ToLower(input.Gender)),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, domain.ErrUserNotFound
		case errors.Is(err, domain.ErrUsernameTaken):
			return nil, domain.ErrUsernameTaken
		}
		return nil, s.storeFailure("update", err)
	}

	s.logger.Info().Int64("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, s.storeFailure("delete", err)
	}

	s.logger.Info().Int64("user_id", deleted.ID).Str("username", deleted.Username).Msg("user deleted")
	return deleted, nil
}

func (s *UserService) validateCreate(in ports.CreateUserInput) (int, domain.Gender, error) {
	if err := s.validate.Struct(in); err != nil {
		if in.Source == ports.SourceQuery {
			return 0, "", domain.NewValidationError(msgAllRequiredInQuery)
		}
		return 0, "", domain.NewValidationError(msgAllRequired)
	}

	age, ok := parseAge(in.Age)
	if !ok || s.validate.Var(age, ageRule) != nil {
		return 0, "", domain.NewValidationError(msgAgeRange)
	}

	gender := strings.ToLower(in.Gender)
	if s.validate.Var(gender, genderRule) != nil {
		return 0, "", domain.NewValidationError(msgGender)
	}

	return age, domain.Gender(gender), nil
}

// storeFailure logs an unexpected repository error and counts it. The
// returned error keeps the cause for errors.Is but is never shown to clients.
func (s *UserService) storeFailure(op string, err error) error {
	metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
	s.logger.Error().Err(err).Str("operation", op).Msg("record store failure")
	return fmt.Errorf("%s user: %w", op, err)
}

// parseID turns a path identifier into a row id. Anything that is not a
// positive integer cannot match a row, so it is reported as not found.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrUserNotFound
	}
	return id, nil
}

// parseAge accepts a base-10 integer or any numeric text with an integral
// value, so JSON numbers such as 30.0 or 1e2 are read as 30 and 100.
func parseAge(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func sourceOrBody(src ports.InputSource) ports.InputSource {
	if src == "" {
		return ports.SourceBody
	}
	return src
}
