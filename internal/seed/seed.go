// Package seed provides the fixed demo dataset used to populate storage on
// first run, plus helpers that generate extra demo content.
package seed

import (
	_ "embed"
	"fmt"
	"slices"

	"photogram/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Dataset holds one value for every persisted collection.
type Dataset struct {
	Users     []models.User     `yaml:"users"`
	Posts     []models.Post     `yaml:"posts"`
	Comments  []models.Comment  `yaml:"comments"`
	Stories   []models.Story    `yaml:"stories"`
	Favorites []models.Favorite `yaml:"favorites"`
}

var builtin Dataset

func init() {
	ds, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded dataset is invalid: %v", err))
	}
	builtin = ds
}

// Default returns a deep copy of the built-in dataset. Callers may mutate
// the result freely.
func Default() Dataset {
	return builtin.Clone()
}

// Parse decodes a dataset from YAML and checks its id invariants.
func Parse(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode seed dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate checks that user ids and usernames are unique, and that every
// other id is unique within its collection.
func (d Dataset) Validate() error {
	userIDs := make(map[string]struct{}, len(d.Users))
	usernames := make(map[string]struct{}, len(d.Users))
	for _, u := range d.Users {
		if _, dup := userIDs[u.ID]; dup {
			return fmt.Errorf("duplicate user id %q", u.ID)
		}
		if _, dup := usernames[u.Username]; dup {
			return fmt.Errorf("duplicate username %q", u.Username)
		}
		userIDs[u.ID] = struct{}{}
		usernames[u.Username] = struct{}{}
	}
	if err := uniqueIDs("post", d.Posts, func(p models.Post) string { return p.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("comment", d.Comments, func(c models.Comment) string { return c.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("story", d.Stories, func(s models.Story) string { return s.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("favorite", d.Favorites, func(f models.Favorite) string { return f.UserID }); err != nil {
		return err
	}
	for _, f := range d.Favorites {
		seen := make(map[string]struct{}, len(f.PostIDs))
		for _, id := range f.PostIDs {
			if _, dup := seen[id]; dup {
				return fmt.Errorf("favorite for %q lists post %q twice", f.UserID, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := id(it)
		if _, dup := seen[k]; dup {
			return fmt.Errorf("duplicate %s id %q", kind, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Users:     slices.Clone(d.Users),
		Comments:  slices.Clone(d.Comments),
		Stories:   slices.Clone(d.Stories),
		Posts:     make([]models.Post, len(d.Posts)),
		Favorites: make([]models.Favorite, len(d.Favorites)),
	}
	for i, p := range d.Posts {
		out.Posts[i] = p.Clone()
	}
	for i, f := range d.Favorites {
		out.Favorites[i] = f.Clone()
	}
	return out
}
