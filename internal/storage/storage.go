package storage

import (
	"context"
	"errors"

	"github.com/mindmosaic/backend/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict on username or email. The
// two collisions are deliberately not distinguished.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures credential persistence needed by the auth handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// PostStore captures post and comment persistence needed by the board handlers.
type PostStore interface {
	// ListPosts returns every post newest-first, comments in append order.
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, content, author string, isAnonymous bool) (models.Post, error)
	// AppendComment must be atomic: concurrent appends to one post all land.
	AppendComment(ctx context.Context, postID, content, author string, isAnonymous bool) (models.Comment, error)
}
