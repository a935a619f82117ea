package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

// mockPostRepository implements repository.PostRepository in memory
// with the same conditional-mutation semantics as the SQL statements.
type mockPostRepository struct {
	posts  map[int64]*entity.Post
	nextID int64
	err    error

	// beforeClassify runs right before GetByID, letting tests mutate
	// state between a failed conditional mutation and the
	// classification read.
	beforeClassify func()
}

func newMockPostRepo() *mockPostRepository {
	return &mockPostRepository{posts: map[int64]*entity.Post{}, nextID: 1}
}

func (m *mockPostRepository) Create(_ context.Context, title, content string, authorID int64) (*entity.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	now := time.Now()
	p := &entity.Post{
		ID:        m.nextID,
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextID++
	m.posts[p.ID] = p
	cp := *p
	return &cp, nil
}

func (m *mockPostRepository) GetByID(_ context.Context, id int64) (*entity.Post, error) {
	if m.beforeClassify != nil {
		m.beforeClassify()
		m.beforeClassify = nil
	}
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.AuthorUsername = fmt.Sprintf("user%d", p.AuthorID)
	return &cp, nil
}

func (m *mockPostRepository) UpdateByAuthor(_ context.Context, id, authorID int64, title, content string) (*entity.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, nil
	}
	p.Title = title
	p.Content = content
	now := time.Now()
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Nanosecond)
	}
	p.UpdatedAt = now
	cp := *p
	return &cp, nil
}

func (m *mockPostRepository) DeleteByAuthor(_ context.Context, id, authorID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	p, ok := m.posts[id]
	if !ok || p.AuthorID != authorID {
		return false, nil
	}
	delete(m.posts, id)
	return true, nil
}

func (m *mockPostRepository) List(_ context.Context, limit, offset int64) ([]*entity.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	all := make([]*entity.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	if offset >= int64(len(all)) {
		return nil, nil
	}
	all = all[offset:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockPostRepository) Count(_ context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.posts)), nil
}

func newTestBlogService() (*BlogService, *mockPostRepository) {
	repo := newMockPostRepo()
	return NewBlogService(repo, nil), repo
}

func TestGetPost(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, entity.CreatePostCommand{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	got, err := svc.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "T" || got.AuthorID != 1 {
		t.Errorf("GetPost = %+v, want title T author 1", got)
	}

	if _, err := svc.GetPost(ctx, 9999); !errors.Is(err, entity.ErrPostNotFound) {
		t.Errorf("GetPost missing: err = %v, want ErrPostNotFound", err)
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, entity.CreatePostCommand{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	cmd := entity.UpdatePostCommand{Title: "T2", Content: "C2"}

	// Not the owner.
	if _, err := svc.UpdatePost(ctx, created.ID, 2, cmd); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("update by non-owner: err = %v, want ErrForbidden", err)
	}

	// Nonexistent post.
	if _, err := svc.UpdatePost(ctx, 9999, 1, cmd); !errors.Is(err, entity.ErrPostNotFound) {
		t.Errorf("update missing post: err = %v, want ErrPostNotFound", err)
	}

	// Owner succeeds and updated_at advances.
	updated, err := svc.UpdatePost(ctx, created.ID, 1, cmd)
	if err != nil {
		t.Fatalf("update by owner: %v", err)
	}
	if updated.Title != "T2" || updated.Content != "C2" {
		t.Errorf("updated post = %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updated_at did not advance")
	}
}

func TestDeletePostOwnership(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, entity.CreatePostCommand{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if err := svc.DeletePost(ctx, created.ID, 2); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("delete by non-owner: err = %v, want ErrForbidden", err)
	}
	if err := svc.DeletePost(ctx, 9999, 1); !errors.Is(err, entity.ErrPostNotFound) {
		t.Errorf("delete missing post: err = %v, want ErrPostNotFound", err)
	}

	if err := svc.DeletePost(ctx, created.ID, 1); err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
	if _, err := svc.GetPost(ctx, created.ID); !errors.Is(err, entity.ErrPostNotFound) {
		t.Errorf("get after delete: err = %v, want ErrPostNotFound", err)
	}
}

// The post disappearing between the failed conditional update and the
// classification read is reported as PostNotFound: the error reflects
// the state at classification time.
func TestUpdatePostClassificationRace(t *testing.T) {
	svc, repo := newTestBlogService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, entity.CreatePostCommand{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	repo.beforeClassify = func() { delete(repo.posts, created.ID) }

	if _, err := svc.UpdatePost(ctx, created.ID, 2, entity.UpdatePostCommand{Title: "T2", Content: "C2"}); !errors.Is(err, entity.ErrPostNotFound) {
		t.Errorf("racy update: err = %v, want ErrPostNotFound", err)
	}
}

func TestDeletePostClassificationRace(t *testing.T) {
	svc, repo := newTestBlogService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, entity.CreatePostCommand{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	repo.beforeClassify = func() { delete(repo.posts, created.ID) }

	if err := svc.DeletePost(ctx, created.ID, 2); !errors.Is(err, entity.ErrPostNotFound) {
		t.Errorf("racy delete: err = %v, want ErrPostNotFound", err)
	}
}

func TestListPosts(t *testing.T) {
	svc, _ := newTestBlogService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := svc.CreatePost(ctx, 1, entity.CreatePostCommand{
			Title:   fmt.Sprintf("post %d", i),
			Content: "body",
		}); err != nil {
			t.Fatalf("CreatePost %d: %v", i, err)
		}
	}

	posts, total, err := svc.ListPosts(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 10 {
		t.Errorf("page size = %d, want 10", len(posts))
	}
	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	for i := 1; i < len(posts); i++ {
		if posts[i].CreatedAt.After(posts[i-1].CreatedAt) {
			t.Fatal("posts not ordered newest first")
		}
	}

	tail, total, err := svc.ListPosts(ctx, 10, 20)
	if err != nil {
		t.Fatalf("ListPosts offset 20: %v", err)
	}
	if len(tail) != 5 {
		t.Errorf("tail page size = %d, want 5", len(tail))
	}
	if total != 25 {
		t.Errorf("tail total = %d, want 25", total)
	}
}
