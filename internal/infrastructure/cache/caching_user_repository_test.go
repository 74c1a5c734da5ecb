package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
	"github.com/oksasatya/user-accounts/internal/domain/repository"
)

type mockUserRepository struct {
	findByIDFn     func(ctx context.Context, id string) (*entity.User, error)
	findByEmailFn  func(ctx context.Context, email string) (*entity.User, error)
	updateFieldsFn func(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error)
	deleteByIDFn   func(ctx context.Context, id string) error
	calls          int
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	m.calls++
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.calls++
	return m.findByEmailFn(ctx, email)
}

func (m *mockUserRepository) Insert(_ context.Context, u *entity.User) (*entity.User, error) {
	m.calls++
	return u, nil
}

func (m *mockUserRepository) UpdateFields(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	m.calls++
	return m.updateFieldsFn(ctx, id, p)
}

func (m *mockUserRepository) DeleteByID(ctx context.Context, id string) error {
	m.calls++
	return m.deleteByIDFn(ctx, id)
}

var alice = &entity.User{
	ID:        "0b6c8d4e-9f2a-4c3b-8e1d-5a7f6b2c9d01",
	Name:      "Alice",
	Email:     "a@x.io",
	Password:  "hash",
	CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
}

func aliceJSON(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(toCached(alice))
	require.NoError(t, err)
	return b
}

func TestNewCachingUserRepository_DefaultTTL(t *testing.T) {
	r := NewCachingUserRepository(nil, 0, &mockUserRepository{}, nil)
	assert.Equal(t, 5*time.Minute, r.ttl)
}

func TestCachingUserRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("hit skips the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{}
		mock.ExpectGet(idKey(alice.ID)).SetVal(string(aliceJSON(t)))

		got, err := NewCachingUserRepository(rdb, time.Minute, inner, nil).FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.Equal(t, alice.Password, got.Password)
		assert.True(t, alice.CreatedAt.Equal(got.CreatedAt))
		assert.Zero(t, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss loads and stores both keys", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{findByIDFn: func(context.Context, string) (*entity.User, error) { return alice, nil }}
		mock.ExpectGet(idKey(alice.ID)).RedisNil()
		mock.ExpectSet(idKey(alice.ID), aliceJSON(t), time.Minute).SetVal("OK")
		mock.ExpectSet(emailKey(alice.Email), alice.ID, time.Minute).SetVal("OK")

		got, err := NewCachingUserRepository(rdb, time.Minute, inner, nil).FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Email, got.Email)
		assert.Equal(t, 1, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found is not cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{findByIDFn: func(context.Context, string) (*entity.User, error) {
			return nil, repository.ErrNotFound
		}}
		mock.ExpectGet(idKey(alice.ID)).RedisNil()

		_, err := NewCachingUserRepository(rdb, time.Minute, inner, nil).FindByID(ctx, alice.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt entry is dropped", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{findByIDFn: func(context.Context, string) (*entity.User, error) { return alice, nil }}
		mock.ExpectGet(idKey(alice.ID)).SetVal("{broken")
		mock.ExpectDel(idKey(alice.ID)).SetVal(1)
		mock.ExpectSet(idKey(alice.ID), aliceJSON(t), time.Minute).SetVal("OK")
		mock.ExpectSet(emailKey(alice.Email), alice.ID, time.Minute).SetVal("OK")

		got, err := NewCachingUserRepository(rdb, time.Minute, inner, nil).FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil client bypasses redis", func(t *testing.T) {
		inner := &mockUserRepository{findByIDFn: func(context.Context, string) (*entity.User, error) { return alice, nil }}
		got, err := NewCachingUserRepository(nil, time.Minute, inner, nil).FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
	})
}

func TestCachingUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("pointer and record hit", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{}
		mock.ExpectGet(emailKey(alice.Email)).SetVal(alice.ID)
		mock.ExpectGet(idKey(alice.ID)).SetVal(string(aliceJSON(t)))

		got, err := NewCachingUserRepository(rdb, time.Minute, inner, nil).FindByEmail(ctx, alice.Email)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.Zero(t, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale pointer falls back to the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{findByEmailFn: func(context.Context, string) (*entity.User, error) {
			return nil, repository.ErrNotFound
		}}
		mock.ExpectGet(emailKey("old@x.io")).SetVal(alice.ID)
		mock.ExpectGet(idKey(alice.ID)).SetVal(string(aliceJSON(t)))

		_, err := NewCachingUserRepository(rdb, time.Minute, inner, nil).FindByEmail(ctx, "old@x.io")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Equal(t, 1, inner.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCachingUserRepository_Invalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("update evicts the record", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{updateFieldsFn: func(context.Context, string, entity.UserPatch) (*entity.User, error) {
			return alice, nil
		}}
		mock.ExpectDel(idKey(alice.ID)).SetVal(1)

		_, err := NewCachingUserRepository(rdb, time.Minute, inner, nil).UpdateFields(ctx, alice.ID, entity.UserPatch{})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed delete leaves the cache alone", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{deleteByIDFn: func(context.Context, string) error { return repository.ErrNotFound }}

		err := NewCachingUserRepository(rdb, time.Minute, inner, nil).DeleteByID(ctx, alice.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete evicts the record", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockUserRepository{deleteByIDFn: func(context.Context, string) error { return nil }}
		mock.ExpectDel(idKey(alice.ID)).SetVal(1)

		require.NoError(t, NewCachingUserRepository(rdb, time.Minute, inner, nil).DeleteByID(ctx, alice.ID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
