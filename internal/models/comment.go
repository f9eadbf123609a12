package models

import (
	"time"
)

type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentInput struct {
	PostID  string `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
}

func (c Comment) CanDelete(u User) bool {
	return u.IsAdmin() || c.AuthorID == u.ID
}
