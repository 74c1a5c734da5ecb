package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt digest, never the plaintext.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPatch carries a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// IsEmpty reports whether the patch changes no column besides updated_at.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}
