package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user row matches the lookup.
	ErrNotFound = errors.New("user record not found")
	// ErrDuplicateEmail is returned when the store's own uniqueness constraint rejects a write.
	ErrDuplicateEmail = errors.New("user email already stored")
)

// UserRepository is the persistence boundary for user records.
// Insert assigns ID, CreatedAt and UpdatedAt; UpdateFields always refreshes UpdatedAt.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) (*entity.User, error)
	UpdateFields(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	DeleteByID(ctx context.Context, id string) error
}
