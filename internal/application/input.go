package application

import (
	"github.com/oksasatya/user-accounts/pkg/validation"
)

var validate = validation.New()

// CreateUserInput holds the fields of a new account.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string `json:"name" validate:"omitnil,username"`
	Email *string `json:"email" validate:"omitnil,email"`
}

type UpdatePasswordInput struct {
	CurrentPassword    string `json:"current_password" validate:"required,pwd"`
	NewPassword        string `json:"new_password" validate:"required,pwd"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,pwd"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

// UniqueKey selects a single user by exactly one of ID or Email.
type UniqueKey struct {
	ID    string `json:"id" validate:"omitempty,uuid4"`
	Email string `json:"email" validate:"omitempty,email"`
}

func ByID(id string) UniqueKey       { return UniqueKey{ID: id} }
func ByEmail(email string) UniqueKey { return UniqueKey{Email: email} }

func (in CreateUserInput) Validate() error     { return check(in) }
func (in UpdateUserInput) Validate() error     { return check(in) }
func (in UpdatePasswordInput) Validate() error { return check(in) }
func (in LoginInput) Validate() error          { return check(in) }

func (k UniqueKey) Validate() error {
	if (k.ID == "") == (k.Email == "") {
		return &ValidationError{Details: map[string]string{"key": "exactly one of id or email is required"}}
	}
	return check(k)
}

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		return &ValidationError{Details: validation.ToDetails(err)}
	}
	return nil
}
