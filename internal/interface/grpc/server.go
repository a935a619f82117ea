// Package grpcserver exposes the blog operations over gRPC. It mirrors the
// HTTP surface one to one: same services underneath, same error taxonomy,
// with identity carried in the authorization metadata instead of a header.
package grpcserver

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/metadata"

	"github.com/oksasatya/go-blog-platform/internal/application"
	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
	"github.com/oksasatya/go-blog-platform/internal/interface/grpc/blogpb"
	"github.com/oksasatya/go-blog-platform/pkg/helpers"
	"github.com/oksasatya/go-blog-platform/pkg/validation"
)

type Server struct {
	blogpb.UnimplementedBlogServiceServer

	Auth   *application.AuthService
	Blog   *application.BlogService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger

	DefaultPageSize int32
	MaxPageSize     int32
}

func NewServer(auth *application.AuthService, blog *application.BlogService, jwt *helpers.JWTManager, logger *logrus.Logger, defaultPageSize, maxPageSize int32) *Server {
	return &Server{
		Auth:            auth,
		Blog:            blog,
		JWT:             jwt,
		Logger:          logger,
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

type registerInput struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type postInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (s *Server) Register(ctx context.Context, req *blogpb.RegisterRequest) (*blogpb.AuthResponse, error) {
	in := registerInput{Username: req.GetUsername(), Email: req.GetEmail(), Password: req.GetPassword()}
	if err := validate(in); err != nil {
		return nil, statusFromError(err)
	}

	res, err := s.Auth.Register(ctx, entity.RegisterCommand{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &blogpb.AuthResponse{Token: res.Token, User: toUserPB(res.User)}, nil
}

func (s *Server) Login(ctx context.Context, req *blogpb.LoginRequest) (*blogpb.AuthResponse, error) {
	in := loginInput{Email: req.GetEmail(), Password: req.GetPassword()}
	if err := validate(in); err != nil {
		return nil, statusFromError(err)
	}

	res, err := s.Auth.Login(ctx, entity.LoginCommand{Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &blogpb.AuthResponse{Token: res.Token, User: toUserPB(res.User)}, nil
}

func (s *Server) CreatePost(ctx context.Context, req *blogpb.CreatePostRequest) (*blogpb.PostResponse, error) {
	authorID, err := s.callerID(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}
	in := postInput{Title: req.GetTitle(), Content: req.GetContent()}
	if err := validate(in); err != nil {
		return nil, statusFromError(err)
	}

	post, err := s.Blog.CreatePost(ctx, authorID, entity.CreatePostCommand{Title: in.Title, Content: in.Content})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &blogpb.PostResponse{Post: toPostPB(post)}, nil
}

func (s *Server) GetPost(ctx context.Context, req *blogpb.GetPostRequest) (*blogpb.PostResponse, error) {
	id, err := parseID(req.GetId())
	if err != nil {
		return nil, statusFromError(err)
	}

	post, err := s.Blog.GetPost(ctx, id)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &blogpb.PostResponse{Post: toPostPB(post)}, nil
}

func (s *Server) UpdatePost(ctx context.Context, req *blogpb.UpdatePostRequest) (*blogpb.PostResponse, error) {
	authorID, err := s.callerID(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}
	id, err := parseID(req.GetId())
	if err != nil {
		return nil, statusFromError(err)
	}
	in := postInput{Title: req.GetTitle(), Content: req.GetContent()}
	if err := validate(in); err != nil {
		return nil, statusFromError(err)
	}

	post, err := s.Blog.UpdatePost(ctx, id, authorID, entity.UpdatePostCommand{Title: in.Title, Content: in.Content})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &blogpb.PostResponse{Post: toPostPB(post)}, nil
}

func (s *Server) DeletePost(ctx context.Context, req *blogpb.DeletePostRequest) (*blogpb.DeleteResponse, error) {
	authorID, err := s.callerID(ctx)
	if err != nil {
		return nil, statusFromError(err)
	}
	id, err := parseID(req.GetId())
	if err != nil {
		return nil, statusFromError(err)
	}

	if err := s.Blog.DeletePost(ctx, id, authorID); err != nil {
		return nil, statusFromError(err)
	}
	return &blogpb.DeleteResponse{Success: true, Message: "post deleted"}, nil
}

func (s *Server) ListPosts(ctx context.Context, req *blogpb.ListPostsRequest) (*blogpb.ListPostsResponse, error) {
	page := req.GetPage()
	if page < 1 {
		page = 1
	}
	size := req.GetPageSize()
	if size < 1 {
		size = s.DefaultPageSize
	}
	if size > s.MaxPageSize {
		size = s.MaxPageSize
	}

	offset := int64(page-1) * int64(size)
	posts, total, err := s.Blog.ListPosts(ctx, int64(size), offset)
	if err != nil {
		return nil, statusFromError(err)
	}

	out := make([]*blogpb.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostPB(p))
	}
	return &blogpb.ListPostsResponse{
		Posts:      out,
		TotalCount: total,
		Page:       page,
		PageSize:   size,
	}, nil
}

// callerID resolves the authenticated user from the authorization metadata.
func (s *Server) callerID(ctx context.Context) (int64, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return 0, fmt.Errorf("%w: missing authorization metadata", entity.ErrInvalidCredentials)
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return 0, fmt.Errorf("%w: missing authorization metadata", entity.ErrInvalidCredentials)
	}
	token, ok := strings.CutPrefix(vals[0], "Bearer ")
	if !ok || token == "" {
		return 0, fmt.Errorf("%w: malformed authorization metadata", entity.ErrInvalidCredentials)
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid token", entity.ErrInvalidCredentials)
	}
	return claims.UserID, nil
}

func validate(obj any) error {
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	details := validation.ToDetails(err)
	fields := make([]string, 0, len(details))
	for f, msg := range details {
		fields = append(fields, f+" "+msg)
	}
	sort.Strings(fields)
	return fmt.Errorf("%w: %s", entity.ErrValidation, strings.Join(fields, "; "))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid post id", entity.ErrValidation)
	}
	return id, nil
}

func toUserPB(u *entity.User) *blogpb.User {
	if u == nil {
		return nil
	}
	return &blogpb.User{
		Id:        strconv.FormatInt(u.ID, 10),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPostPB(p *entity.Post) *blogpb.Post {
	if p == nil {
		return nil
	}
	return &blogpb.Post{
		Id:             strconv.FormatInt(p.ID, 10),
		Title:          p.Title,
		Content:        p.Content,
		AuthorId:       strconv.FormatInt(p.AuthorID, 10),
		AuthorUsername: p.AuthorUsername,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
