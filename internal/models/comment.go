package models

import "time"

// MaxCommentLength is the maximum number of characters in a comment.
const MaxCommentLength = 500

// Comment represents a user's comment on a post.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	PostID    string    `json:"postId" yaml:"postId"`
	UserID    string    `json:"userId" yaml:"userId"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
