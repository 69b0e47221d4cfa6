package models

import "time"

// Post is a board entry with its comments embedded in append order.
type Post struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Timestamp   time.Time `json:"timestamp"`
	Comments    []Comment `json:"comments"`
	IsAnonymous bool      `json:"isAnonymous"`
}

// Comment lives inside its parent post and shares its lifetime.
type Comment struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Timestamp   time.Time `json:"timestamp"`
	IsAnonymous bool      `json:"isAnonymous"`
}
