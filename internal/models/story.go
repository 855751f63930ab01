package models

import "time"

// Story represents a short-lived image shown in the stories tray.
// Once Viewed is true it is never reset.
type Story struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"userId"`
	ImageURL  string    `json:"imageUrl" yaml:"imageUrl"`
	Viewed    bool      `json:"viewed" yaml:"viewed"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
