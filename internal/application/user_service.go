package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
	repo "github.com/oksasatya/user-accounts/internal/domain/repository"
)

// UserService implements the account operations on top of a UserRepository.
// Index and Events are optional; their failures are logged and never
// returned to the caller.
type UserService struct {
	Repo   repo.UserRepository
	Hasher Hasher
	Index  UserIndexer
	Events UserEvents
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, hasher Hasher, index UserIndexer, events UserEvents, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:   repo,
		Hasher: hasher,
		Index:  index,
		Events: events,
		Logger: logger,
	}
}

// FindUnique returns the user matching exactly one of id or email.
func (s *UserService) FindUnique(ctx context.Context, key UniqueKey) (*entity.User, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	var (
		u   *entity.User
		err error
	)
	if key.ID != "" {
		u, err = s.Repo.FindByID(ctx, key.ID)
	} else {
		u, err = s.Repo.FindByEmail(ctx, key.Email)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create registers a new user. The email must not belong to anyone yet.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	created, err := s.Repo.Insert(ctx, &entity.User{Name: in.Name, Email: in.Email, Password: digest})
	if errors.Is(err, repo.ErrDuplicateEmail) {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	u, err := s.FindUnique(ctx, ByID(created.ID))
	if err != nil {
		return nil, err
	}
	s.log().WithField("user_id", u.ID).Info("user created")

	s.index(ctx, u)
	if s.Events != nil {
		if err := s.Events.UserCreated(ctx, u); err != nil {
			s.log().WithError(err).WithField("user_id", u.ID).Warn("publish user_created failed")
		}
	}
	return u, nil
}

// Update applies a partial change of name and/or email.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	current, err := s.FindUnique(ctx, ByID(id))
	if err != nil {
		return nil, err
	}
	if in.Email != nil && *in.Email != current.Email {
		if err := s.ensureEmailFree(ctx, *in.Email); err != nil {
			return nil, err
		}
	}

	if _, err := s.patch(ctx, id, entity.UserPatch{Name: in.Name, Email: in.Email}); err != nil {
		return nil, err
	}
	u, err := s.FindUnique(ctx, ByID(id))
	if err != nil {
		return nil, err
	}
	s.log().WithField("user_id", id).Info("user updated")
	s.index(ctx, u)
	return u, nil
}

// Delete removes the user permanently.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.FindUnique(ctx, ByID(id)); err != nil {
		return err
	}
	err := s.Repo.DeleteByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	s.log().WithField("user_id", id).Info("user deleted")

	if s.Index != nil {
		if err := s.Index.RemoveUser(ctx, id); err != nil {
			s.log().WithError(err).WithField("user_id", id).Warn("remove user from index failed")
		}
	}
	return nil
}

// UpdatePassword replaces the password after checking, in order, that the new
// value differs from the current one, matches its confirmation, and that the
// current value is correct.
func (s *UserService) UpdatePassword(ctx context.Context, id string, in UpdatePasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	u, err := s.FindUnique(ctx, ByID(id))
	if err != nil {
		return err
	}
	if in.CurrentPassword == in.NewPassword {
		return ErrPasswordUnchanged
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return ErrPasswordConfirmMismatch
	}
	if !s.Hasher.Verify(in.CurrentPassword, u.Password) {
		return ErrCurrentPasswordIncorrect
	}

	digest, err := s.Hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	updated, err := s.patch(ctx, id, entity.UserPatch{Password: &digest})
	if err != nil {
		return err
	}
	s.log().WithField("user_id", id).Info("password changed")

	if s.Events != nil {
		if err := s.Events.PasswordChanged(ctx, updated); err != nil {
			s.log().WithError(err).WithField("user_id", id).Warn("publish password_changed failed")
		}
	}
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.Repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *UserService) patch(ctx context.Context, id string, p entity.UserPatch) (*entity.User, error) {
	u, err := s.Repo.UpdateFields(ctx, id, p)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, repo.ErrDuplicateEmail):
		return nil, ErrEmailAlreadyExists
	case err != nil:
		return nil, err
	}
	return u, nil
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexUser(ctx, u); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("index user failed")
	}
}

func (s *UserService) log() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
