package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
	"github.com/oksasatya/go-blog-platform/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, title, content string, authorID int64) (*entity.Post, error) {
	p := &entity.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, title, content, authorID)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: insert post: %v", entity.ErrDatabase, err)
	}

	return p, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p := &entity.Post{}

	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.title, p.content, p.author_id, u.username, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorUsername, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: select post: %v", entity.ErrDatabase, err)
	}

	return p, nil
}

// UpdateByAuthor updates the post in a single statement scoped by both
// id and author id. Returns (nil, nil) when no row matched, without
// distinguishing a missing post from a foreign one.
func (r *PostRepository) UpdateByAuthor(ctx context.Context, id, authorID int64, title, content string) (*entity.Post, error) {
	p := &entity.Post{}

	row := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $3, content = $4, updated_at = NOW()
		WHERE id = $1 AND author_id = $2
		RETURNING id, title, content, author_id, created_at, updated_at
	`, id, authorID, title, content)

	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: update post: %v", entity.ErrDatabase, err)
	}

	return p, nil
}

// DeleteByAuthor deletes the post in a single statement scoped by both
// id and author id. Returns false when no row matched.
func (r *PostRepository) DeleteByAuthor(ctx context.Context, id, authorID int64) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return false, fmt.Errorf("%w: delete post: %v", entity.ErrDatabase, err)
	}
	return res.RowsAffected() > 0, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int64) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.content, p.author_id, u.username, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list posts: %v", entity.ErrDatabase, err)
	}
	defer rows.Close()

	posts := make([]*entity.Post, 0, limit)
	for rows.Next() {
		p := &entity.Post{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorUsername, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan post: %v", entity.ErrDatabase, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list posts: %v", entity.ErrDatabase, err)
	}

	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: count posts: %v", entity.ErrDatabase, err)
	}
	return total, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
