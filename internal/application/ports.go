package application

import (
	"context"
	"time"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
)

// Hasher produces and checks salted password digests.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenSigner issues signed access tokens for an authenticated user.
type TokenSigner interface {
	GenerateAccessToken(userID, email string) (string, time.Time, error)
}

// UserIndexer mirrors user records into the directory search index.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
	RemoveUser(ctx context.Context, id string) error
}

// UserEvents publishes account notifications.
type UserEvents interface {
	UserCreated(ctx context.Context, u *entity.User) error
	PasswordChanged(ctx context.Context, u *entity.User) error
}
