package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
	"github.com/oksasatya/go-blog-platform/internal/domain/repository"
)

// BlogService orchestrates post CRUD with ownership enforcement.
type BlogService struct {
	Repo   repository.PostRepository
	Logger *logrus.Logger
}

func NewBlogService(repo repository.PostRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Repo: repo, Logger: logger}
}

// CreatePost inserts a post. The author id comes only from the
// verified token, never from client-supplied input.
func (s *BlogService) CreatePost(ctx context.Context, authorID int64, cmd entity.CreatePostCommand) (*entity.Post, error) {
	return s.Repo.Create(ctx, cmd.Title, cmd.Content, authorID)
}

func (s *BlogService) GetPost(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entity.ErrPostNotFound
	}
	return post, nil
}

// UpdatePost attempts a single update scoped by both id and author id,
// which is the whole ownership check on the success path. Only when
// nothing matched does it read the post back to classify the failure
// as Forbidden (exists with a different author) or PostNotFound.
//
// The classification read can observe a state that changed after the
// conditional update, e.g. the owner deleting the post in between; the
// result is then PostNotFound, which correctly reflects the state at
// classification time. Do not replace this with check-then-update,
// which reintroduces the race on the success path.
func (s *BlogService) UpdatePost(ctx context.Context, id, authorID int64, cmd entity.UpdatePostCommand) (*entity.Post, error) {
	post, err := s.Repo.UpdateByAuthor(ctx, id, authorID, cmd.Title, cmd.Content)
	if err != nil {
		return nil, err
	}
	if post != nil {
		return post, nil
	}

	return nil, s.classifyMutationFailure(ctx, id)
}

// DeletePost uses the same conditional-delete-then-classify protocol
// as UpdatePost.
func (s *BlogService) DeletePost(ctx context.Context, id, authorID int64) error {
	deleted, err := s.Repo.DeleteByAuthor(ctx, id, authorID)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	return s.classifyMutationFailure(ctx, id)
}

func (s *BlogService) classifyMutationFailure(ctx context.Context, id int64) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing != nil {
		return entity.ErrForbidden
	}
	return entity.ErrPostNotFound
}

// ListPosts returns one page of posts, newest first, plus the total
// count computed independently of the page size.
func (s *BlogService) ListPosts(ctx context.Context, limit, offset int64) ([]*entity.Post, int64, error) {
	posts, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
