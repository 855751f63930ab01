package models

import "slices"

// Favorite aggregates the posts a user has bookmarked.
// There is at most one Favorite per user and PostIDs holds no duplicates.
type Favorite struct {
	UserID  string   `json:"userId" yaml:"userId"`
	PostIDs []string `json:"postIds" yaml:"postIds"`
}

// Has reports whether postID is bookmarked.
func (f *Favorite) Has(postID string) bool {
	return slices.Contains(f.PostIDs, postID)
}

// Clone returns a copy of the favorite that shares no backing array with f.
func (f Favorite) Clone() Favorite {
	f.PostIDs = slices.Clone(f.PostIDs)
	if f.PostIDs == nil {
		f.PostIDs = []string{}
	}
	return f
}
