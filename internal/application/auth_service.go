package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
	"github.com/oksasatya/go-blog-platform/internal/domain/repository"
	"github.com/oksasatya/go-blog-platform/pkg/helpers"
)

// AuthService orchestrates registration and login. Both transports
// share the same instance, so the business rules are identical no
// matter which wire the request came in on.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

// Register hashes the password and inserts the user. There is no
// pre-check query for an existing username or email: the store's
// uniqueness constraint is the sole source of truth, so no window
// exists between check and insert.
func (s *AuthService) Register(ctx context.Context, cmd entity.RegisterCommand) (*entity.AuthResult, error) {
	hash, err := entity.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.Create(ctx, cmd.Username, cmd.Email, hash)
	if err != nil {
		if !errors.Is(err, entity.ErrUserAlreadyExists) && s.Logger != nil {
			s.Logger.WithError(err).WithField("username", cmd.Username).Error("create user failed")
		}
		return nil, err
	}

	token, err := s.JWT.GenerateToken(user.ID, user.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Error("generate token failed")
		}
		return nil, err
	}

	return &entity.AuthResult{Token: token, User: user}, nil
}

// Login authenticates by email and password. An unknown email and a
// wrong password both return the same ErrInvalidCredentials, so the
// response never reveals which one failed.
func (s *AuthService) Login(ctx context.Context, cmd entity.LoginCommand) (*entity.AuthResult, error) {
	user, err := s.Repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("lookup user failed")
		}
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrInvalidCredentials
	}

	if !user.PasswordHash.Verify(cmd.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := s.JWT.GenerateToken(user.ID, user.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.ID).Error("generate token failed")
		}
		return nil, err
	}

	return &entity.AuthResult{Token: token, User: user}, nil
}
