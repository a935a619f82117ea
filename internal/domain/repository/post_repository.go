package repository

import (
	"context"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

// PostRepository defines the persistence contract for posts.
//
// UpdateByAuthor and DeleteByAuthor are conditional single-statement
// mutations scoped by both id and author id. They report "no row
// matched" as (nil, nil) and (false, nil) respectively, leaving the
// not-found versus forbidden classification to the service layer.
type PostRepository interface {
	Create(ctx context.Context, title, content string, authorID int64) (*entity.Post, error)

	// GetByID joins with the author so AuthorUsername is populated.
	// Returns (nil, nil) when the post does not exist.
	GetByID(ctx context.Context, id int64) (*entity.Post, error)

	UpdateByAuthor(ctx context.Context, id, authorID int64, title, content string) (*entity.Post, error)
	DeleteByAuthor(ctx context.Context, id, authorID int64) (bool, error)

	// List returns posts ordered by creation time, newest first,
	// joined with the author username.
	List(ctx context.Context, limit, offset int64) ([]*entity.Post, error)
	Count(ctx context.Context) (int64, error)
}
