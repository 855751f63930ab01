package models

import (
	"slices"
	"time"
)

// Post represents an image post in the feed.
type Post struct {
	ID            string    `json:"id" yaml:"id"`
	UserID        string    `json:"userId" yaml:"userId"`
	ImageURL      string    `json:"imageUrl" yaml:"imageUrl"`
	Caption       string    `json:"caption" yaml:"caption"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
	LikesCount    int       `json:"likesCount" yaml:"likesCount"`
	CommentsCount int       `json:"commentsCount" yaml:"commentsCount"`
	// LikedBy holds the ids of users who liked the post. A nil slice means
	// the post was stored without like tracking.
	LikedBy []string `json:"likedBy,omitempty" yaml:"likedBy,omitempty"`
}

// IsLikedBy reports whether userID is in the post's likedBy set.
func (p *Post) IsLikedBy(userID string) bool {
	return slices.Contains(p.LikedBy, userID)
}

// Clone returns a copy of the post that shares no backing arrays with p.
func (p Post) Clone() Post {
	if p.LikedBy != nil {
		p.LikedBy = slices.Clone(p.LikedBy)
	}
	return p
}
