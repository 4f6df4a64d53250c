package model

import "time"

// User is an account that owns projects and can be assigned tasks.
type User struct {
	ID              int64      `db:"id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	Role            UserRole   `db:"role"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`

	// Loaded relations (nil when not requested).
	Projects      []Project `db:"-"`
	AssignedTasks []Task    `db:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
