package domain

import "time"

// Gender is the closed set of values the store accepts on create.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

const (
	MinAge = 1
	MaxAge = 120
)

// User is a single row of the users table.
//
// Password is kept in clear text; it is never serialized into a response.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"-"`
	Age       int        `json:"age"`
	Gender    Gender     `json:"gender"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
