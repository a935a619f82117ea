package entity

import "time"

// Post is a content record owned by a single author.
// AuthorID is set once at creation and never changes.
// AuthorUsername is denormalized and only populated by reads that
// join with the users table; it is empty otherwise.
type Post struct {
	ID             int64
	Title          string
	Content        string
	AuthorID       int64
	AuthorUsername string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreatePostCommand carries the input for creating a post.
type CreatePostCommand struct {
	Title   string
	Content string
}

// UpdatePostCommand carries the input for updating a post.
type UpdatePostCommand struct {
	Title   string
	Content string
}
