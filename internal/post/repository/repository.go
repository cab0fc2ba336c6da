package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/asafonov/blog-backend/internal/common/db"
	"github.com/asafonov/blog-backend/internal/post/domain"
)

var ErrPostNotFound = errors.New("post not found")

type Repository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Post, error)
	Update(ctx context.Context, id domain.ID, title, content string) error
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO posts (title, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		post.Title,
		post.Content,
		string(post.AuthorID),
	)

	created := post
	err := row.Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return domain.Post{}, db.HandleExecError(err, "create post", start)
	}

	db.MeasureQueryDuration("create post", start)
	return created, nil
}

// List materializes every post; no ordering is guaranteed.
func (r *PgRepository) List(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, title, content, author_id, created_at FROM posts`,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list posts", start)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt); err != nil {
			return nil, db.HandleExecError(err, "scan post", start)
		}
		posts = append(posts, p)
	}

	if rows.Err() != nil {
		return nil, db.HandleExecError(rows.Err(), "list posts", start)
	}

	db.MeasureQueryDuration("list posts", start)
	return posts, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Post, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, title, content, author_id, created_at FROM posts WHERE id = $1`,
		string(id),
	)

	var post domain.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt)
	if err := db.HandleQueryError(err, ErrPostNotFound, "find post by id", start); err != nil {
		return domain.Post{}, err
	}

	return post, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, title, content string) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`UPDATE posts SET title = $1, content = $2 WHERE id = $3`,
		title,
		content,
		string(id),
	)
	return db.HandleExecError(err, "update post", start)
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM posts WHERE id = $1`,
		string(id),
	)
	return db.HandleExecError(err, "delete post", start)
}
