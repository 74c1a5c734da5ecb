package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
	repo "github.com/oksasatya/user-accounts/internal/domain/repository"
)

// memStore is an in-memory UserRepository used by the service tests.
type memStore struct {
	mu    sync.Mutex
	users map[string]entity.User
	clock time.Time
	// inserts counts successful Insert calls.
	inserts int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]entity.User{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) FindByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memStore) Insert(_ context.Context, u *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Email == u.Email {
			return nil, repo.ErrDuplicateEmail
		}
	}
	now := m.tick()
	rec := *u
	rec.ID = uuid.NewString()
	rec.CreatedAt, rec.UpdatedAt = now, now
	m.users[rec.ID] = rec
	m.inserts++
	return &rec, nil
}

func (m *memStore) UpdateFields(_ context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Email != nil {
		for oid, other := range m.users {
			if oid != id && other.Email == *p.Email {
				return nil, repo.ErrDuplicateEmail
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	u.UpdatedAt = m.tick()
	m.users[id] = u
	return &u, nil
}

func (m *memStore) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.users, id)
	return nil
}
