package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/edu-crud/user-records-api/internal/core/domain"
)

// --- Request types ---

// looseString accepts a JSON string or a JSON number and keeps its text.
// null decodes to the empty string. Form values bind as plain strings.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = looseString(n.String())
	return nil
}

type createUserRequest struct {
	Username looseString `json:"username" form:"username" swaggertype:"string" example:"alice"`
	Password looseString `json:"password" form:"password" swaggertype:"string" example:"secret"`
	Age      looseString `json:"age" form:"age" swaggertype:"string" example:"30"`
	Gender   looseString `json:"gender" form:"gender" swaggertype:"string" example:"female" enums:"male,female,other"`
}

type updateUserRequest struct {
	Username looseString `json:"username" form:"username" swaggertype:"string" example:"alice"`
	Age      looseString `json:"age" form:"age" swaggertype:"string" example:"31"`
	Gender   looseString `json:"gender" form:"gender" swaggertype:"string" example:"female"`
}

// --- Response types ---

type userResponse struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	Age       int       `json:"age" example:"30"`
	Gender    string    `json:"gender" example:"female"`
	CreatedAt time.Time `json:"created_at"`
}

type updatedUserResponse struct {
	ID        int64      `json:"id" example:"1"`
	Username  string     `json:"username" example:"alice"`
	Age       int        `json:"age" example:"31"`
	Gender    string     `json:"gender" example:"female"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type deletedUserResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Age:       u.Age,
		Gender:    string(u.Gender),
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toUpdatedUserResponse(u *domain.User) updatedUserResponse {
	return updatedUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Age:       u.Age,
		Gender:    string(u.Gender),
		UpdatedAt: u.UpdatedAt,
	}
}
