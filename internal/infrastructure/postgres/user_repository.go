package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
	"github.com/oksasatya/user-accounts/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

// UserRepository implements repository.UserRepository on PostgreSQL.
type UserRepository struct {
	db DB
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, storeError(err, "find user by id", "user_id", id)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, storeError(err, "find user by email")
	}
	return u, nil
}

// Insert stores a new user with a fresh v4 id and identical created/updated timestamps.
func (r *UserRepository) Insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	now := time.Now().UTC()
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+userColumns,
		uuid.NewString(), u.Name, u.Email, u.Password, now,
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, storeError(err, "insert user")
	}
	return created, nil
}

// UpdateFields applies the non-nil fields of p and refreshes updated_at.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    password_hash = COALESCE($4, password_hash),
		    updated_at = $5
		WHERE id = $1
		RETURNING `+userColumns,
		id, p.Name, p.Email, p.Password, time.Now().UTC(),
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, storeError(err, "update user", "user_id", id)
	}
	return u, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return storeError(err, "delete user", "user_id", id)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// storeError maps driver errors onto the repository sentinels. Anything
// else is wrapped with the failing operation.
func storeError(err error, op string, kv ...any) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return repository.ErrNotFound
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation:
		return repository.ErrDuplicateEmail
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation:
		// malformed uuid: no row can match it
		return repository.ErrNotFound
	}
	return oops.Code("USER_STORE_FAILED").
		With("operation", op).
		With(kv...).
		Wrap(err)
}
