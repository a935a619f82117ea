package grpcserver

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oksasatya/go-blog-platform/internal/application"
	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
	"github.com/oksasatya/go-blog-platform/internal/interface/grpc/blogpb"
	"github.com/oksasatya/go-blog-platform/pkg/helpers"
	"github.com/oksasatya/go-blog-platform/pkg/validation"
)

func init() {
	validation.Init()
}

type stubUserRepo struct {
	nextID int64
	users  []*entity.User
}

func (r *stubUserRepo) Create(_ context.Context, username, email string, passwordHash entity.Password) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return nil, entity.ErrUserAlreadyExists
		}
	}
	r.nextID++
	u := &entity.User{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type stubPostRepo struct {
	nextID int64
	posts  map[int64]*entity.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: map[int64]*entity.Post{}}
}

func (r *stubPostRepo) Create(_ context.Context, title, content string, authorID int64) (*entity.Post, error) {
	r.nextID++
	now := time.Now()
	p := &entity.Post{
		ID:        r.nextID,
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.posts[p.ID] = p
	return p, nil
}

func (r *stubPostRepo) GetByID(_ context.Context, id int64) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubPostRepo) UpdateByAuthor(_ context.Context, id, authorID int64, title, content string) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, nil
	}
	p.Title = title
	p.Content = content
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (r *stubPostRepo) DeleteByAuthor(_ context.Context, id, authorID int64) (bool, error) {
	p, ok := r.posts[id]
	if !ok || p.AuthorID != authorID {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

func (r *stubPostRepo) List(_ context.Context, limit, offset int64) ([]*entity.Post, error) {
	all := make([]*entity.Post, 0, len(r.posts))
	for id := r.nextID; id >= 1; id-- {
		if p, ok := r.posts[id]; ok {
			cp := *p
			all = append(all, &cp)
		}
	}
	if offset >= int64(len(all)) {
		return nil, nil
	}
	all = all[offset:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubPostRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	jwt := helpers.NewJWTManager("grpc-test-secret", time.Hour)
	auth := application.NewAuthService(&stubUserRepo{}, jwt, logger)
	blog := application.NewBlogService(newStubPostRepo(), logger)
	return NewServer(auth, blog, jwt, logger, 10, 100)
}

func authedCtx(token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(context.Background(), md)
}

func registerUser(t *testing.T, srv *Server, username, email string) *blogpb.AuthResponse {
	t.Helper()
	res, err := srv.Register(context.Background(), &blogpb.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "sup3rsecret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return res
}

func TestRegisterReturnsTokenAndUser(t *testing.T) {
	srv := newTestServer(t)

	res := registerUser(t, srv, "alice", "alice@example.com")
	if res.GetToken() == "" {
		t.Fatal("expected a token")
	}
	if res.GetUser().GetUsername() != "alice" {
		t.Fatalf("username = %q, want alice", res.GetUser().GetUsername())
	}
	if _, err := strconv.ParseInt(res.GetUser().GetId(), 10, 64); err != nil {
		t.Fatalf("user id %q is not a decimal integer", res.GetUser().GetId())
	}
	if _, err := time.Parse(time.RFC3339, res.GetUser().GetCreatedAt()); err != nil {
		t.Fatalf("created_at %q is not RFC 3339", res.GetUser().GetCreatedAt())
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.Register(context.Background(), &blogpb.RegisterRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "short",
	})
	if got := status.Code(err); got != codes.InvalidArgument {
		t.Fatalf("code = %v, want InvalidArgument", got)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "alice", "alice@example.com")

	_, err := srv.Register(context.Background(), &blogpb.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "sup3rsecret",
	})
	if got := status.Code(err); got != codes.AlreadyExists {
		t.Fatalf("code = %v, want AlreadyExists", got)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "alice", "alice@example.com")

	_, err := srv.Login(context.Background(), &blogpb.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	if got := status.Code(err); got != codes.Unauthenticated {
		t.Fatalf("code = %v, want Unauthenticated", got)
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	req := &blogpb.CreatePostRequest{Title: "t", Content: "c"}

	_, err := srv.CreatePost(context.Background(), req)
	if got := status.Code(err); got != codes.Unauthenticated {
		t.Fatalf("no metadata: code = %v, want Unauthenticated", got)
	}

	_, err = srv.CreatePost(authedCtx("garbage-token"), req)
	if got := status.Code(err); got != codes.Unauthenticated {
		t.Fatalf("bad token: code = %v, want Unauthenticated", got)
	}
}

func TestPostLifecycle(t *testing.T) {
	srv := newTestServer(t)
	alice := registerUser(t, srv, "alice", "alice@example.com")
	bob := registerUser(t, srv, "bob", "bob@example.com")

	created, err := srv.CreatePost(authedCtx(alice.GetToken()), &blogpb.CreatePostRequest{
		Title:   "first",
		Content: "hello",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	id := created.GetPost().GetId()
	if created.GetPost().GetAuthorId() != alice.GetUser().GetId() {
		t.Fatalf("author_id = %q, want %q", created.GetPost().GetAuthorId(), alice.GetUser().GetId())
	}

	got, err := srv.GetPost(context.Background(), &blogpb.GetPostRequest{Id: id})
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.GetPost().GetTitle() != "first" {
		t.Fatalf("title = %q, want first", got.GetPost().GetTitle())
	}

	_, err = srv.UpdatePost(authedCtx(bob.GetToken()), &blogpb.UpdatePostRequest{
		Id:      id,
		Title:   "hijacked",
		Content: "hijacked",
	})
	if got := status.Code(err); got != codes.PermissionDenied {
		t.Fatalf("foreign update: code = %v, want PermissionDenied", got)
	}

	updated, err := srv.UpdatePost(authedCtx(alice.GetToken()), &blogpb.UpdatePostRequest{
		Id:      id,
		Title:   "second",
		Content: "world",
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.GetPost().GetTitle() != "second" {
		t.Fatalf("title = %q, want second", updated.GetPost().GetTitle())
	}

	_, err = srv.DeletePost(authedCtx(bob.GetToken()), &blogpb.DeletePostRequest{Id: id})
	if got := status.Code(err); got != codes.PermissionDenied {
		t.Fatalf("foreign delete: code = %v, want PermissionDenied", got)
	}

	del, err := srv.DeletePost(authedCtx(alice.GetToken()), &blogpb.DeletePostRequest{Id: id})
	if err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if !del.GetSuccess() {
		t.Fatal("expected success=true")
	}

	_, err = srv.GetPost(context.Background(), &blogpb.GetPostRequest{Id: id})
	if got := status.Code(err); got != codes.NotFound {
		t.Fatalf("after delete: code = %v, want NotFound", got)
	}
}

func TestGetPostInvalidID(t *testing.T) {
	srv := newTestServer(t)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := srv.GetPost(context.Background(), &blogpb.GetPostRequest{Id: raw})
		if got := status.Code(err); got != codes.InvalidArgument {
			t.Fatalf("id %q: code = %v, want InvalidArgument", raw, got)
		}
	}
}

func TestListPostsPagination(t *testing.T) {
	srv := newTestServer(t)
	alice := registerUser(t, srv, "alice", "alice@example.com")
	ctx := authedCtx(alice.GetToken())

	for i := 0; i < 25; i++ {
		_, err := srv.CreatePost(ctx, &blogpb.CreatePostRequest{
			Title:   "post " + strconv.Itoa(i),
			Content: "content",
		})
		if err != nil {
			t.Fatalf("CreatePost %d: %v", i, err)
		}
	}

	tests := []struct {
		name      string
		page      int32
		pageSize  int32
		wantLen   int
		wantPage  int32
		wantSize  int32
		wantFirst string
	}{
		{name: "defaults", page: 0, pageSize: 0, wantLen: 10, wantPage: 1, wantSize: 10, wantFirst: "post 24"},
		{name: "second page", page: 2, pageSize: 10, wantLen: 10, wantPage: 2, wantSize: 10, wantFirst: "post 14"},
		{name: "last partial page", page: 3, pageSize: 10, wantLen: 5, wantPage: 3, wantSize: 10, wantFirst: "post 4"},
		{name: "oversized clamped", page: 1, pageSize: 500, wantLen: 25, wantPage: 1, wantSize: 100, wantFirst: "post 24"},
		{name: "past the end", page: 9, pageSize: 10, wantLen: 0, wantPage: 9, wantSize: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := srv.ListPosts(context.Background(), &blogpb.ListPostsRequest{Page: tt.page, PageSize: tt.pageSize})
			if err != nil {
				t.Fatalf("ListPosts: %v", err)
			}
			if len(res.GetPosts()) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(res.GetPosts()), tt.wantLen)
			}
			if res.GetTotalCount() != 25 {
				t.Fatalf("total_count = %d, want 25", res.GetTotalCount())
			}
			if res.GetPage() != tt.wantPage || res.GetPageSize() != tt.wantSize {
				t.Fatalf("page/page_size = %d/%d, want %d/%d", res.GetPage(), res.GetPageSize(), tt.wantPage, tt.wantSize)
			}
			if tt.wantLen > 0 && res.GetPosts()[0].GetTitle() != tt.wantFirst {
				t.Fatalf("first title = %q, want %q", res.GetPosts()[0].GetTitle(), tt.wantFirst)
			}
		})
	}
}
