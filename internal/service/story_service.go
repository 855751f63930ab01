package service

import (
	"context"
	"slices"

	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/query"

	"go.opentelemetry.io/otel/attribute"
)

type StoryService struct {
	deps *Deps
}

func NewStoryService(deps *Deps) *StoryService {
	return &StoryService{deps: deps}
}

// MarkStoryAsViewed sets viewed on the story. An unknown id is a no-op and
// a viewed story is never reset.
func (s *StoryService) MarkStoryAsViewed(ctx context.Context, storyID string) error {
	ctx, span := observability.StartServiceSpan(ctx, "StoryService", "MarkStoryAsViewed",
		attribute.String("story.id", storyID))
	defer span.End()

	err := s.deps.mutate(ctx, "mark_story_viewed", 0, func(ctx context.Context) error {
		stories, err := s.deps.Store.Stories(ctx)
		if err != nil {
			return internalErr(err)
		}
		i := slices.IndexFunc(stories, func(st models.Story) bool { return st.ID == storyID })
		if i < 0 || stories[i].Viewed {
			return nil
		}
		stories[i].Viewed = true
		if err := s.deps.Store.SaveStories(ctx, stories); err != nil {
			return internalErr(err)
		}
		observability.StoriesViewed.Inc()
		return nil
	})
	span.SetError(err)
	return err
}

// Stories returns every story, or only the unviewed ones when activeOnly is set.
func (s *StoryService) Stories(ctx context.Context, activeOnly bool) ([]models.Story, error) {
	stories, err := s.deps.Store.Stories(ctx)
	if err != nil {
		return nil, internalErr(err)
	}
	if activeOnly {
		return query.ActiveStories(stories), nil
	}
	return stories, nil
}

// StoriesByUser returns the stories of userID.
func (s *StoryService) StoriesByUser(ctx context.Context, userID string) ([]models.Story, error) {
	stories, err := s.deps.Store.Stories(ctx)
	if err != nil {
		return nil, internalErr(err)
	}
	return query.StoriesByUserID(stories, userID), nil
}
