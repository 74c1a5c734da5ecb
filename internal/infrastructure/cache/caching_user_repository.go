// Package cache provides a Redis read-through decorator for the user store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
	"github.com/oksasatya/user-accounts/internal/domain/repository"
	"github.com/oksasatya/user-accounts/pkg/helpers"
)

// CachingUserRepository decorates a UserRepository with Redis caching.
// Records live under user:id:<id>; user:email:<email> only points at an id,
// so dropping the id key is enough to invalidate both lookups.
// Misses are never cached.
type CachingUserRepository struct {
	inner  repository.UserRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

var _ repository.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository wraps inner. If ttl is 0 it defaults to 5 minutes.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner repository.UserRepository, logger *logrus.Logger) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &CachingUserRepository{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

// cachedUser is the JSON shape stored in Redis.
type cachedUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toCached(u *entity.User) cachedUser {
	return cachedUser{ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.Password, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func (c cachedUser) user() *entity.User {
	return &entity.User{ID: c.ID, Name: c.Name, Email: c.Email, Password: c.PasswordHash, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func idKey(id string) string       { return "user:id:" + id }
func emailKey(email string) string { return "user:email:" + email }

func (r *CachingUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if r.rdb == nil {
		return r.inner.FindByID(ctx, id)
	}
	if u, ok := r.getByID(ctx, id); ok {
		return u, nil
	}
	u, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.rdb == nil {
		return r.inner.FindByEmail(ctx, email)
	}
	id, err := r.rdb.Get(ctx, emailKey(email)).Result()
	if err == nil {
		// the pointer may outlive an email change; trust it only if the record agrees
		if u, ok := r.getByID(ctx, id); ok && u.Email == email {
			return u, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.WithError(err).Warn("user cache read failed")
	}

	u, err := r.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *CachingUserRepository) Insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	return r.inner.Insert(ctx, u)
}

func (r *CachingUserRepository) UpdateFields(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	u, err := r.inner.UpdateFields(ctx, id, p)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return u, nil
}

func (r *CachingUserRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachingUserRepository) getByID(ctx context.Context, id string) (*entity.User, bool) {
	var cu cachedUser
	found, err := helpers.RedisGetJSON(ctx, r.rdb, idKey(id), &cu)
	if err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache read failed")
		_ = helpers.RedisDel(ctx, r.rdb, idKey(id))
		return nil, false
	}
	if !found {
		return nil, false
	}
	return cu.user(), true
}

func (r *CachingUserRepository) store(ctx context.Context, u *entity.User) {
	if err := helpers.RedisSetJSON(ctx, r.rdb, idKey(u.ID), toCached(u), r.ttl); err != nil {
		r.logger.WithError(err).WithField("user_id", u.ID).Warn("user cache write failed")
		return
	}
	if err := r.rdb.Set(ctx, emailKey(u.Email), u.ID, r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("user_id", u.ID).Warn("user cache write failed")
	}
}

func (r *CachingUserRepository) evict(ctx context.Context, id string) {
	if r.rdb == nil {
		return
	}
	if err := helpers.RedisDel(ctx, r.rdb, idKey(id)); err != nil {
		r.logger.WithError(err).WithField("user_id", id).Warn("user cache evict failed")
	}
}
