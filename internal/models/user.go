// Package models contains data structures for the application's domain models.
package models

// User represents a profile in the Photogram application.
// ID and Username are stable and unique across the users collection.
type User struct {
	ID          string `json:"id" yaml:"id"`
	Username    string `json:"username" yaml:"username"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Avatar      string `json:"avatar" yaml:"avatar"`
	Bio         string `json:"bio" yaml:"bio"`
	Followers   int    `json:"followers" yaml:"followers"`
	Following   int    `json:"following" yaml:"following"`
}
