package application

import (
	"context"
	"time"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
)

type mockUserRepository struct {
	FindByIDFunc     func(ctx context.Context, id string) (*entity.User, error)
	FindByEmailFunc  func(ctx context.Context, email string) (*entity.User, error)
	InsertFunc       func(ctx context.Context, u *entity.User) (*entity.User, error)
	UpdateFieldsFunc func(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error)
	DeleteByIDFunc   func(ctx context.Context, id string) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepository) Insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	return m.InsertFunc(ctx, u)
}

func (m *mockUserRepository) UpdateFields(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	return m.UpdateFieldsFunc(ctx, id, p)
}

func (m *mockUserRepository) DeleteByID(ctx context.Context, id string) error {
	return m.DeleteByIDFunc(ctx, id)
}

type mockTokenSigner struct {
	GenerateAccessTokenFunc func(userID, email string) (string, time.Time, error)
}

func (m *mockTokenSigner) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email)
	}
	return "signed." + userID, time.Now().Add(time.Hour), nil
}

// recordingHasher wraps a real hasher and counts Verify calls.
type recordingHasher struct {
	Hasher
	verifies []string
}

func (h *recordingHasher) Verify(plain, digest string) bool {
	h.verifies = append(h.verifies, digest)
	return h.Hasher.Verify(plain, digest)
}

type mockIndexer struct {
	indexed []string
	removed []string
	err     error
}

func (m *mockIndexer) IndexUser(_ context.Context, u *entity.User) error {
	m.indexed = append(m.indexed, u.ID)
	return m.err
}

func (m *mockIndexer) RemoveUser(_ context.Context, id string) error {
	m.removed = append(m.removed, id)
	return m.err
}

type mockEvents struct {
	created []string
	changed []string
	err     error
}

func (m *mockEvents) UserCreated(_ context.Context, u *entity.User) error {
	m.created = append(m.created, u.Email)
	return m.err
}

func (m *mockEvents) PasswordChanged(_ context.Context, u *entity.User) error {
	m.changed = append(m.changed, u.Email)
	return m.err
}
