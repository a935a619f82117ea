package repository

import (
	"context"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

// UserRepository defines the persistence contract for users.
//
// Create relies on the store's uniqueness constraints for username and
// email and returns entity.ErrUserAlreadyExists on a violation; there
// is deliberately no exists-check method, which would race with the
// insert.
//
// The Get methods return (nil, nil) when no user matches.
type UserRepository interface {
	Create(ctx context.Context, username, email string, passwordHash entity.Password) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
