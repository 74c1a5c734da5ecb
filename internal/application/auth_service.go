package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-accounts/internal/domain/entity"
)

// dummyPasswordHash is verified against when the email is unknown so both
// failure paths cost one bcrypt comparison.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Authenticator is the single login entry point used by the HTTP layer.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entity.User
}

type AuthService struct {
	Users  *UserService
	Hasher Hasher
	Tokens TokenSigner
	Logger *logrus.Logger
}

var _ Authenticator = (*AuthService)(nil)

func NewAuthService(users *UserService, hasher Hasher, tokens TokenSigner, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Tokens: tokens, Logger: logger}
}

// Login checks the credentials and signs an access token for the user.
// An unknown email and a wrong password fail with the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := (LoginInput{Email: email, Password: password}).Validate(); err != nil {
		return nil, err
	}

	u, err := s.Users.FindUnique(ctx, ByEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	digest := dummyPasswordHash
	if u != nil {
		digest = u.Password
	}
	ok := s.Hasher.Verify(password, digest)
	if u == nil || !ok {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp, User: u}, nil
}
