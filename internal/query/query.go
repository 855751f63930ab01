// Package query implements the read side over loaded collections. Every
// function is pure: it never touches storage and never mutates its inputs.
package query

import (
	"slices"
	"strings"

	"photogram/internal/models"
)

// UserByID returns the first user with id.
func UserByID(users []models.User, id string) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UserByUsername returns the user with username. Usernames are unique.
func UserByUsername(users []models.User, username string) (models.User, bool) {
	for _, u := range users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

// PostByID returns the first post with id.
func PostByID(posts []models.Post, id string) (models.Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// PostsByUserID keeps the posts authored by userID in their stored order.
func PostsByUserID(posts []models.Post, userID string) []models.Post {
	out := []models.Post{}
	for _, p := range posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// CommentsByPostID returns the comments on postID, newest first. Comments
// with equal timestamps keep their stored order.
func CommentsByPostID(comments []models.Comment, postID string) []models.Comment {
	out := []models.Comment{}
	for _, c := range comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Comment) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// StoriesByUserID keeps the stories of userID in their stored order.
func StoriesByUserID(stories []models.Story, userID string) []models.Story {
	out := []models.Story{}
	for _, s := range stories {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

// ActiveStories keeps the stories that have not been viewed.
func ActiveStories(stories []models.Story) []models.Story {
	out := []models.Story{}
	for _, s := range stories {
		if !s.Viewed {
			out = append(out, s)
		}
	}
	return out
}

// FavoriteByUserID returns the favorite record of userID.
func FavoriteByUserID(favorites []models.Favorite, userID string) (models.Favorite, bool) {
	for _, f := range favorites {
		if f.UserID == userID {
			return f, true
		}
	}
	return models.Favorite{}, false
}

// FavoritePostsByUserID returns the posts bookmarked by userID in post
// order. A user without a favorite record has no bookmarks.
func FavoritePostsByUserID(favorites []models.Favorite, posts []models.Post, userID string) []models.Post {
	out := []models.Post{}
	fav, ok := FavoriteByUserID(favorites, userID)
	if !ok {
		return out
	}
	for _, p := range posts {
		if fav.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// IsPostLikedByUser reports whether userID is in the post's likedBy.
// An unknown post is not liked.
func IsPostLikedByUser(posts []models.Post, postID, userID string) bool {
	p, ok := PostByID(posts, postID)
	return ok && p.IsLikedBy(userID)
}

// IsPostBookmarkedByUser reports whether postID is in the user's favorite
// record. A user without a record has bookmarked nothing.
func IsPostBookmarkedByUser(favorites []models.Favorite, postID, userID string) bool {
	f, ok := FavoriteByUserID(favorites, userID)
	return ok && f.Has(postID)
}

// SortPostsNewestFirst returns a copy of posts ordered by descending
// timestamp, ties in stored order.
func SortPostsNewestFirst(posts []models.Post) []models.Post {
	out := slices.Clone(posts)
	if out == nil {
		out = []models.Post{}
	}
	slices.SortStableFunc(out, func(a, b models.Post) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// SearchResult holds the users and posts matching a search query.
type SearchResult struct {
	Users []models.User `json:"users"`
	Posts []models.Post `json:"posts"`
}

// Search matches q case-insensitively as a substring. Users match on
// username, display name or bio. Posts match on caption or on the author's
// username or display name. A blank query matches nothing.
func Search(users []models.User, posts []models.Post, q string) SearchResult {
	res := SearchResult{Users: []models.User{}, Posts: []models.Post{}}
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return res
	}
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}

	for _, u := range users {
		if contains(u.Username) || contains(u.DisplayName) || contains(u.Bio) {
			res.Users = append(res.Users, u)
		}
	}
	for _, p := range posts {
		if contains(p.Caption) {
			res.Posts = append(res.Posts, p)
			continue
		}
		if author, ok := UserByID(users, p.UserID); ok && (contains(author.Username) || contains(author.DisplayName)) {
			res.Posts = append(res.Posts, p)
		}
	}
	return res
}
