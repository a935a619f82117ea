package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// defaultPageSize matches the server-side default page length.
const defaultPageSize = 10

type httpTransport struct {
	base string
	hc   *http.Client
}

func newHTTPTransport(base string, hc *http.Client) *httpTransport {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &httpTransport{base: strings.TrimRight(base, "/"), hc: hc}
}

func (t *httpTransport) close() error { return nil }

type wireUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type wireAuth struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

type wirePost struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       int64     `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type wirePostList struct {
	Posts  []wirePost `json:"posts"`
	Total  int64      `json:"total"`
	Limit  int64      `json:"limit"`
	Offset int64      `json:"offset"`
}

type wireError struct {
	Error string `json:"error"`
}

func (u wireUser) toUser() User {
	return User{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (p wirePost) toPost() Post {
	return Post{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		AuthorID:       p.AuthorID,
		AuthorUsername: p.AuthorUsername,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (t *httpTransport) do(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.base+path, rd)
	if err != nil {
		return fmt.Errorf("client: new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.hc.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var we wireError
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&we); err == nil && we.Error != "" {
		msg = we.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
	default:
		return fmt.Errorf("client: server returned %d: %s", resp.StatusCode, msg)
	}
}

func (t *httpTransport) register(ctx context.Context, username, email, password string) (*Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out wireAuth
	if err := t.do(ctx, http.MethodPost, "/api/v1/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return &Session{Token: out.Token, User: out.User.toUser()}, nil
}

func (t *httpTransport) login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var out wireAuth
	if err := t.do(ctx, http.MethodPost, "/api/v1/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &Session{Token: out.Token, User: out.User.toUser()}, nil
}

func (t *httpTransport) createPost(ctx context.Context, token, title, content string) (*Post, error) {
	body := map[string]string{"title": title, "content": content}
	var out wirePost
	if err := t.do(ctx, http.MethodPost, "/api/v1/posts", token, body, &out); err != nil {
		return nil, err
	}
	p := out.toPost()
	return &p, nil
}

func (t *httpTransport) getPost(ctx context.Context, id int64) (*Post, error) {
	var out wirePost
	if err := t.do(ctx, http.MethodGet, "/api/v1/posts/"+strconv.FormatInt(id, 10), "", nil, &out); err != nil {
		return nil, err
	}
	p := out.toPost()
	return &p, nil
}

func (t *httpTransport) updatePost(ctx context.Context, token string, id int64, title, content string) (*Post, error) {
	body := map[string]string{"title": title, "content": content}
	var out wirePost
	if err := t.do(ctx, http.MethodPut, "/api/v1/posts/"+strconv.FormatInt(id, 10), token, body, &out); err != nil {
		return nil, err
	}
	p := out.toPost()
	return &p, nil
}

func (t *httpTransport) deletePost(ctx context.Context, token string, id int64) error {
	return t.do(ctx, http.MethodDelete, "/api/v1/posts/"+strconv.FormatInt(id, 10), token, nil, nil)
}

func (t *httpTransport) listPosts(ctx context.Context, page, pageSize int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize

	path := fmt.Sprintf("/api/v1/posts?limit=%d&offset=%d", pageSize, offset)
	var out wirePostList
	if err := t.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(out.Posts))
	for _, p := range out.Posts {
		posts = append(posts, p.toPost())
	}
	size := int(out.Limit)
	if size < 1 {
		size = pageSize
	}
	return &PostPage{
		Posts:    posts,
		Total:    out.Total,
		Page:     page,
		PageSize: size,
	}, nil
}
