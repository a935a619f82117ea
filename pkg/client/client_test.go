package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/register" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["username"] != "alice" {
			t.Fatalf("username = %q, want alice", body["username"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"tok-123","user":{"id":7,"username":"alice","email":"alice@example.com","created_at":"2025-06-01T10:00:00Z"}}`))
	}))
	defer srv.Close()

	c, err := New(Config{Addr: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s, err := c.Register(context.Background(), "alice", "alice@example.com", "sup3rsecret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if s.User.ID != 7 || s.User.Username != "alice" {
		t.Fatalf("unexpected user %+v", s.User)
	}
	if c.Token() != "tok-123" {
		t.Fatalf("token = %q, want tok-123", c.Token())
	}
}

func TestCreatePostSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Fatalf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1,"title":"first","content":"hello","author_id":7,"created_at":"2025-06-01T10:00:00Z","updated_at":"2025-06-01T10:00:00Z"}`))
	}))
	defer srv.Close()

	c, _ := New(Config{Addr: srv.URL})
	c.SetToken("tok-123")

	p, err := c.CreatePost(context.Background(), "first", "hello")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if p.ID != 1 || p.AuthorID != 7 {
		t.Fatalf("unexpected post %+v", p)
	}
}

func TestAuthenticatedCallsRequireToken(t *testing.T) {
	c, _ := New(Config{Addr: "http://localhost:0"})

	if _, err := c.CreatePost(context.Background(), "t", "c"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("CreatePost err = %v, want ErrNoToken", err)
	}
	if _, err := c.UpdatePost(context.Background(), 1, "t", "c"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("UpdatePost err = %v, want ErrNoToken", err)
	}
	if err := c.DeletePost(context.Background(), 1); !errors.Is(err, ErrNoToken) {
		t.Fatalf("DeletePost err = %v, want ErrNoToken", err)
	}

	c.SetToken("tok")
	c.ClearToken()
	if err := c.DeletePost(context.Background(), 1); !errors.Is(err, ErrNoToken) {
		t.Fatalf("after ClearToken err = %v, want ErrNoToken", err)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"error":"post not found"}`, wantErr: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, body: `{"error":"user already exists"}`, wantErr: ErrConflict},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"invalid credentials"}`, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, body: `{"error":"forbidden"}`, wantErr: ErrForbidden},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"invalid payload"}`, wantErr: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, _ := New(Config{Addr: srv.URL})
			_, err := c.GetPost(context.Background(), 42)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestListPostsPageMath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "5" || q.Get("offset") != "10" {
			t.Fatalf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"posts":[{"id":9,"title":"p","content":"c","author_id":1,"created_at":"2025-06-01T10:00:00Z","updated_at":"2025-06-01T10:00:00Z"}],"total":11,"limit":5,"offset":10}`))
	}))
	defer srv.Close()

	c, _ := New(Config{Addr: srv.URL})
	page, err := c.ListPosts(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if page.Total != 11 || page.Page != 3 || page.PageSize != 5 {
		t.Fatalf("page = %+v", page)
	}
	if len(page.Posts) != 1 || page.Posts[0].ID != 9 {
		t.Fatalf("posts = %+v", page.Posts)
	}
}

func TestListPostsClampedLimitKeepsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "500" || q.Get("offset") != "500" {
			t.Fatalf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"posts":[],"total":3,"limit":100,"offset":500}`))
	}))
	defer srv.Close()

	c, _ := New(Config{Addr: srv.URL})
	page, err := c.ListPosts(context.Background(), 2, 500)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if page.Page != 2 {
		t.Fatalf("page = %d, want 2", page.Page)
	}
	if page.PageSize != 100 {
		t.Fatalf("page size = %d, want 100", page.PageSize)
	}
}

func TestUnknownTransport(t *testing.T) {
	if _, err := New(Config{Transport: "carrier-pigeon"}); err == nil {
		t.Fatal("expected an error")
	}
}
