package handlers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mindmosaic/backend/internal/models"
	"github.com/mindmosaic/backend/internal/storage"
)

// fakeUserStore is an in-memory storage.UserStore for handler tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  []models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++
	s.users = append(s.users, user)
	return user, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// fakePostStore is an in-memory storage.PostStore. Appends are guarded by a
// mutex so the concurrent-append test exercises the same no-lost-update
// guarantee the real store gets from single-statement inserts.
type fakePostStore struct {
	mu     sync.Mutex
	nextID int
	posts  []models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{nextID: 1}
}

func (s *fakePostStore) newID() string {
	id := fmt.Sprintf("fake-%d", s.nextID)
	s.nextID++
	return id
}

func (s *fakePostStore) ListPosts(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *fakePostStore) CreatePost(_ context.Context, content, author string, isAnonymous bool) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post := models.Post{
		ID:          s.newID(),
		Content:     content,
		Author:      author,
		Timestamp:   time.Now(),
		Comments:    []models.Comment{},
		IsAnonymous: isAnonymous,
	}
	s.posts = append(s.posts, post)
	return post, nil
}

func (s *fakePostStore) AppendComment(_ context.Context, postID, content, author string, isAnonymous bool) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		comment := models.Comment{
			ID:          s.newID(),
			Content:     content,
			Author:      author,
			Timestamp:   time.Now(),
			IsAnonymous: isAnonymous,
		}
		s.posts[i].Comments = append(s.posts[i].Comments, comment)
		return comment, nil
	}
	return models.Comment{}, storage.ErrNotFound
}

// seedPost injects a post with a fixed timestamp, bypassing CreatePost's clock.
func (s *fakePostStore) seedPost(content, author string, at time.Time) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	post := models.Post{
		ID:        s.newID(),
		Content:   content,
		Author:    author,
		Timestamp: at,
		Comments:  []models.Comment{},
	}
	s.posts = append(s.posts, post)
	return post
}

func (s *fakePostStore) commentCount(postID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, post := range s.posts {
		if post.ID == postID {
			return len(post.Comments)
		}
	}
	return -1
}
