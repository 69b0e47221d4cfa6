package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/mindmosaic/backend/internal/auth"
	"github.com/mindmosaic/backend/internal/authoring"
	"github.com/mindmosaic/backend/internal/http/respond"
	"github.com/mindmosaic/backend/internal/middleware"
	"github.com/mindmosaic/backend/internal/models/dto"
	"github.com/mindmosaic/backend/internal/storage"
)

// PostsHandler owns the board endpoints: listing, posting, and commenting.
type PostsHandler struct {
	store  storage.PostStore
	tokens *auth.TokenManager
}

// NewPostsHandler constructs the handler.
func NewPostsHandler(store storage.PostStore, tokens *auth.TokenManager) *PostsHandler {
	return &PostsHandler{store: store, tokens: tokens}
}

// Register attaches board routes to the mux. Reading is public; authoring
// requires a bearer token.
func (h *PostsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/fetchPosts", h.handleFetchPosts)
	mux.HandleFunc("POST /api/posts", middleware.RequireAuth(h.tokens, h.handleCreatePost))
	mux.HandleFunc("POST /api/posts/{postId}/comments", middleware.RequireAuth(h.tokens, h.handleAppendComment))
}

func (h *PostsHandler) handleFetchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		log.Printf("list posts: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(w, http.StatusBadRequest, "Content is required")
		return
	}

	author := authoring.ResolveAuthor(identity, req.IsAnonymous)
	post, err := h.store.CreatePost(r.Context(), req.Content, author, req.IsAnonymous)
	if err != nil {
		log.Printf("create post: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Error creating post")
		return
	}
	respond.JSON(w, http.StatusCreated, post)
}

func (h *PostsHandler) handleAppendComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req dto.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(w, http.StatusBadRequest, "Content is required")
		return
	}

	author := authoring.ResolveAuthor(identity, req.IsAnonymous)
	comment, err := h.store.AppendComment(r.Context(), r.PathValue("postId"), req.Content, author, req.IsAnonymous)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("append comment: %v", err)
		respond.Error(w, http.StatusInternalServerError, "Error adding comment")
		return
	}
	respond.JSON(w, http.StatusCreated, comment)
}
