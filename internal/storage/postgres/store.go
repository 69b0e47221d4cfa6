package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindmosaic/backend/internal/models"
	"github.com/mindmosaic/backend/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.PostStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users, posts, and comments.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool and applies the schema.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY,
			content TEXT NOT NULL,
			author TEXT NOT NULL,
			is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id UUID PRIMARY KEY,
			seq BIGSERIAL,
			post_id UUID NOT NULL REFERENCES posts(id),
			content TEXT NOT NULL,
			author TEXT NOT NULL,
			is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments (post_id, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row. A unique violation on either username or
// email surfaces as ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1;
	`
	row := s.pool.QueryRow(ctx, query, email)
	return scanUser(row)
}

// ListPosts returns all posts newest-first with their comments in append order.
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	const postsQuery = `
		SELECT id, content, author, is_anonymous, created_at
		FROM posts
		ORDER BY created_at DESC;
	`
	rows, err := s.pool.Query(ctx, postsQuery)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	index := map[string]int{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Content, &p.Author, &p.IsAnonymous, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Comments = []models.Comment{}
		index[p.ID] = len(posts)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	const commentsQuery = `
		SELECT post_id, id, content, author, is_anonymous, created_at
		FROM comments
		ORDER BY post_id, seq;
	`
	crows, err := s.pool.Query(ctx, commentsQuery)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var postID string
		var c models.Comment
		if err := crows.Scan(&postID, &c.ID, &c.Content, &c.Author, &c.IsAnonymous, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Comments = append(posts[i].Comments, c)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return posts, nil
}

// CreatePost inserts a new post and returns it with an empty comment list.
func (s *Store) CreatePost(ctx context.Context, content, author string, isAnonymous bool) (models.Post, error) {
	const query = `
		INSERT INTO posts (id, content, author, is_anonymous)
		VALUES ($1, $2, $3, $4)
		RETURNING id, content, author, is_anonymous, created_at;
	`
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), content, author, isAnonymous)
	var p models.Post
	if err := row.Scan(&p.ID, &p.Content, &p.Author, &p.IsAnonymous, &p.Timestamp); err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	p.Comments = []models.Comment{}
	return p, nil
}

// AppendComment inserts a comment under an existing post. The insert is a
// single statement, so concurrent appends to one post cannot lose each other;
// a missing post surfaces through the foreign key as ErrNotFound.
func (s *Store) AppendComment(ctx context.Context, postID, content, author string, isAnonymous bool) (models.Comment, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return models.Comment{}, storage.ErrNotFound
	}
	const query = `
		INSERT INTO comments (id, post_id, content, author, is_anonymous)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, content, author, is_anonymous, created_at;
	`
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), postID, content, author, isAnonymous)
	var c models.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.Author, &c.IsAnonymous, &c.Timestamp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.Comment{}, storage.ErrNotFound
		}
		return models.Comment{}, fmt.Errorf("append comment: %w", err)
	}
	return c, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
