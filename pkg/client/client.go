// Package client is the consumer-side facade for the blog API. The same
// operations are available over both transports; pick one with Config.
// Transport and the rest of the surface stays identical.
package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

type Transport string

const (
	TransportHTTP Transport = "http"
	TransportGRPC Transport = "grpc"
)

// User mirrors the server's user representation with native types.
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

type Post struct {
	ID             int64
	Title          string
	Content        string
	AuthorID       int64
	AuthorUsername string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PostPage is one page of the post listing, newest first.
type PostPage struct {
	Posts    []Post
	Total    int64
	Page     int
	PageSize int
}

type Session struct {
	Token string
	User  User
}

type Config struct {
	// Transport selects the wire protocol, TransportHTTP by default.
	Transport Transport

	// Addr is the server address: a base URL for HTTP (for example
	// "http://localhost:3000"), a host:port target for gRPC.
	Addr string

	// HTTPClient overrides the underlying HTTP client. Ignored for gRPC.
	HTTPClient *http.Client
}

// transport is the per-protocol backend behind Client.
type transport interface {
	register(ctx context.Context, username, email, password string) (*Session, error)
	login(ctx context.Context, email, password string) (*Session, error)
	createPost(ctx context.Context, token, title, content string) (*Post, error)
	getPost(ctx context.Context, id int64) (*Post, error)
	updatePost(ctx context.Context, token string, id int64, title, content string) (*Post, error)
	deletePost(ctx context.Context, token string, id int64) error
	listPosts(ctx context.Context, page, pageSize int) (*PostPage, error)
	close() error
}

// Client talks to a blog server over the configured transport. It keeps the
// auth token from the last successful Register or Login and attaches it to
// every mutating call. Safe for concurrent use.
type Client struct {
	t transport

	mu    sync.RWMutex
	token string
}

func New(cfg Config) (*Client, error) {
	switch cfg.Transport {
	case TransportHTTP, "":
		return &Client{t: newHTTPTransport(cfg.Addr, cfg.HTTPClient)}, nil
	case TransportGRPC:
		t, err := newGRPCTransport(cfg.Addr)
		if err != nil {
			return nil, err
		}
		return &Client{t: t}, nil
	default:
		return nil, fmt.Errorf("client: unknown transport %q", cfg.Transport)
	}
}

// Close releases the underlying connection. Required for gRPC, a no-op for
// HTTP.
func (c *Client) Close() error { return c.t.close() }

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) ClearToken() { c.SetToken("") }

func (c *Client) requireToken() (string, error) {
	tok := c.Token()
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	s, err := c.t.register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	s, err := c.t.login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return s, nil
}

func (c *Client) CreatePost(ctx context.Context, title, content string) (*Post, error) {
	tok, err := c.requireToken()
	if err != nil {
		return nil, err
	}
	return c.t.createPost(ctx, tok, title, content)
}

func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	return c.t.getPost(ctx, id)
}

func (c *Client) UpdatePost(ctx context.Context, id int64, title, content string) (*Post, error) {
	tok, err := c.requireToken()
	if err != nil {
		return nil, err
	}
	return c.t.updatePost(ctx, tok, id, title, content)
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	tok, err := c.requireToken()
	if err != nil {
		return err
	}
	return c.t.deletePost(ctx, tok, id)
}

// ListPosts fetches one page, newest first. Page numbers start at 1;
// non-positive arguments fall back to the server defaults.
func (c *Client) ListPosts(ctx context.Context, page, pageSize int) (*PostPage, error) {
	return c.t.listPosts(ctx, page, pageSize)
}
