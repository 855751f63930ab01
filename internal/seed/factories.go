package seed

import (
	"fmt"
	"net/url"
	"time"

	"photogram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Options controls how much extra demo content a Factory generates.
type Options struct {
	NumUsers        int
	PostsPerUser    int
	CommentsPerPost int
	WithStories     bool
	// MaxDays bounds how far in the past generated timestamps fall.
	MaxDays int
}

// Factory builds demo entities with realistic-looking content.
// It never touches storage; callers decide what to persist.
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
	now   func() time.Time
}

// NewFactory returns a Factory whose output is reproducible for a given seed.
func NewFactory(seed int64, opts Options) *Factory {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	return &Factory{
		faker: gofakeit.New(seed),
		opts:  opts,
		now:   time.Now,
	}
}

// PlaceholderImage builds the placeholder image URL used for posts and
// stories, carrying text as its display parameter.
func PlaceholderImage(width, height int, text string) string {
	return fmt.Sprintf("/placeholder.svg?height=%d&width=%d&text=%s", height, width, url.QueryEscape(text))
}

func (f *Factory) pastTime() time.Time {
	now := f.now().UTC()
	return f.faker.DateRange(now.AddDate(0, 0, -f.opts.MaxDays), now).UTC().Truncate(time.Second)
}

// BuildUser constructs a user whose username is not in taken.
func (f *Factory) BuildUser(taken map[string]struct{}) models.User {
	first := f.faker.FirstName()
	last := f.faker.LastName()
	username := f.faker.Username()
	for i := 2; ; i++ {
		if _, dup := taken[username]; !dup {
			break
		}
		username = fmt.Sprintf("%s%d", f.faker.Username(), i)
	}
	taken[username] = struct{}{}

	return models.User{
		ID:          "user-" + f.faker.UUID(),
		Username:    username,
		DisplayName: first + " " + last,
		Avatar:      PlaceholderImage(80, 80, first),
		Bio:         fmt.Sprintf("%s | %s", f.faker.JobTitle(), f.faker.Hobby()),
		Followers:   f.faker.Number(0, 5000),
		Following:   f.faker.Number(0, 800),
	}
}

// BuildPost constructs a post authored by user. LikedBy starts empty.
func (f *Factory) BuildPost(user models.User) models.Post {
	subject := f.faker.Noun()
	return models.Post{
		ID:        "post-" + f.faker.UUID(),
		UserID:    user.ID,
		ImageURL:  PlaceholderImage(600, 600, subject),
		Caption:   fmt.Sprintf("%s #%s #%s", f.faker.Sentence(8), f.faker.Hobby(), subject),
		Timestamp: f.pastTime(),
		LikedBy:   []string{},
	}
}

// BuildComment constructs a comment by author on post, dated after the post.
func (f *Factory) BuildComment(post models.Post, author models.User) models.Comment {
	ts := post.Timestamp.Add(time.Duration(f.faker.Number(1, 48*60)) * time.Minute)
	if now := f.now().UTC(); ts.After(now) {
		ts = now
	}
	text := f.faker.Sentence(f.faker.Number(3, 12))
	if len(text) > models.MaxCommentLength {
		text = text[:models.MaxCommentLength]
	}
	return models.Comment{
		ID:        "comment-" + f.faker.UUID(),
		PostID:    post.ID,
		UserID:    author.ID,
		Text:      text,
		Timestamp: ts,
	}
}

// BuildStory constructs an unviewed story for user.
func (f *Factory) BuildStory(user models.User) models.Story {
	return models.Story{
		ID:        "story-" + f.faker.UUID(),
		UserID:    user.ID,
		ImageURL:  PlaceholderImage(600, 600, f.faker.Noun()),
		Timestamp: f.now().UTC().Add(-time.Duration(f.faker.Number(1, 23*60)) * time.Minute).Truncate(time.Second),
	}
}

// Extend returns a copy of base with generated users, posts, comments and
// stories appended. New posts get commentsCount equal to their generated
// comments, so the count invariant holds for them.
func (f *Factory) Extend(base Dataset) Dataset {
	out := base.Clone()

	taken := make(map[string]struct{}, len(out.Users))
	for _, u := range out.Users {
		taken[u.Username] = struct{}{}
	}

	newUsers := make([]models.User, 0, f.opts.NumUsers)
	for i := 0; i < f.opts.NumUsers; i++ {
		newUsers = append(newUsers, f.BuildUser(taken))
	}
	out.Users = append(out.Users, newUsers...)
	if len(out.Users) == 0 {
		return out
	}

	for _, u := range newUsers {
		for j := 0; j < f.opts.PostsPerUser; j++ {
			post := f.BuildPost(u)
			for k := 0; k < f.opts.CommentsPerPost; k++ {
				author := out.Users[f.faker.Number(0, len(out.Users)-1)]
				out.Comments = append(out.Comments, f.BuildComment(post, author))
				post.CommentsCount++
			}
			out.Posts = append(out.Posts, post)
		}
		if f.opts.WithStories {
			out.Stories = append(out.Stories, f.BuildStory(u))
		}
	}
	return out
}
