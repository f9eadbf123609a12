package models

import (
	"slices"
	"time"
)

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	AuthorID    string    `json:"authorId"`   // snapshot at creation
	AuthorName  string    `json:"authorName"` // snapshot at creation
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Comments    []Comment `json:"comments"`
	Likes       []string  `json:"likes"` // user ids, each at most once
}

// PostInput is the editable part of a post.
type PostInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,category"`
}

// Clone returns a deep copy; comments and likes are never nil in the copy.
func (p Post) Clone() Post {
	c := p
	c.Comments = make([]Comment, len(p.Comments))
	copy(c.Comments, p.Comments)
	c.Likes = make([]string, len(p.Likes))
	copy(c.Likes, p.Likes)
	return c
}

func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

func (p Post) CanManage(u User) bool {
	return u.IsAdmin() || p.AuthorID == u.ID
}
