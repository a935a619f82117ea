package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oksasatya/go-blog-platform/internal/interface/grpc/blogpb"
)

type grpcTransport struct {
	conn *grpc.ClientConn
	stub blogpb.BlogServiceClient
}

func newGRPCTransport(addr string) (*grpcTransport, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}
	return &grpcTransport{conn: conn, stub: blogpb.NewBlogServiceClient(conn)}, nil
}

func (t *grpcTransport) close() error { return t.conn.Close() }

func withToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func grpcError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, st.Message())
	default:
		return fmt.Errorf("client: rpc failed: %s", st.Message())
	}
}

func userFromPB(u *blogpb.User) User {
	id, _ := strconv.ParseInt(u.GetId(), 10, 64)
	created, _ := time.Parse(time.RFC3339, u.GetCreatedAt())
	return User{ID: id, Username: u.GetUsername(), Email: u.GetEmail(), CreatedAt: created}
}

func postFromPB(p *blogpb.Post) Post {
	id, _ := strconv.ParseInt(p.GetId(), 10, 64)
	authorID, _ := strconv.ParseInt(p.GetAuthorId(), 10, 64)
	created, _ := time.Parse(time.RFC3339, p.GetCreatedAt())
	updated, _ := time.Parse(time.RFC3339, p.GetUpdatedAt())
	return Post{
		ID:             id,
		Title:          p.GetTitle(),
		Content:        p.GetContent(),
		AuthorID:       authorID,
		AuthorUsername: p.GetAuthorUsername(),
		CreatedAt:      created,
		UpdatedAt:      updated,
	}
}

func (t *grpcTransport) register(ctx context.Context, username, email, password string) (*Session, error) {
	res, err := t.stub.Register(ctx, &blogpb.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, grpcError(err)
	}
	return &Session{Token: res.GetToken(), User: userFromPB(res.GetUser())}, nil
}

func (t *grpcTransport) login(ctx context.Context, email, password string) (*Session, error) {
	res, err := t.stub.Login(ctx, &blogpb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, grpcError(err)
	}
	return &Session{Token: res.GetToken(), User: userFromPB(res.GetUser())}, nil
}

func (t *grpcTransport) createPost(ctx context.Context, token, title, content string) (*Post, error) {
	res, err := t.stub.CreatePost(withToken(ctx, token), &blogpb.CreatePostRequest{Title: title, Content: content})
	if err != nil {
		return nil, grpcError(err)
	}
	p := postFromPB(res.GetPost())
	return &p, nil
}

func (t *grpcTransport) getPost(ctx context.Context, id int64) (*Post, error) {
	res, err := t.stub.GetPost(ctx, &blogpb.GetPostRequest{Id: strconv.FormatInt(id, 10)})
	if err != nil {
		return nil, grpcError(err)
	}
	p := postFromPB(res.GetPost())
	return &p, nil
}

func (t *grpcTransport) updatePost(ctx context.Context, token string, id int64, title, content string) (*Post, error) {
	res, err := t.stub.UpdatePost(withToken(ctx, token), &blogpb.UpdatePostRequest{
		Id:      strconv.FormatInt(id, 10),
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, grpcError(err)
	}
	p := postFromPB(res.GetPost())
	return &p, nil
}

func (t *grpcTransport) deletePost(ctx context.Context, token string, id int64) error {
	_, err := t.stub.DeletePost(withToken(ctx, token), &blogpb.DeletePostRequest{Id: strconv.FormatInt(id, 10)})
	return grpcError(err)
}

func (t *grpcTransport) listPosts(ctx context.Context, page, pageSize int) (*PostPage, error) {
	res, err := t.stub.ListPosts(ctx, &blogpb.ListPostsRequest{
		Page:     int32(page),
		PageSize: int32(pageSize),
	})
	if err != nil {
		return nil, grpcError(err)
	}
	posts := make([]Post, 0, len(res.GetPosts()))
	for _, p := range res.GetPosts() {
		posts = append(posts, postFromPB(p))
	}
	return &PostPage{
		Posts:    posts,
		Total:    res.GetTotalCount(),
		Page:     int(res.GetPage()),
		PageSize: int(res.GetPageSize()),
	}, nil
}
