package services

import (
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/pagination"
	"github.com/devrakib/socialspace/backend/internal/repositories"
)

// FeedService derives a personalized, time-ordered view of posts from
// the follow graph and the content store. Read-only.
type FeedService struct {
	store repositories.Store
}

func NewFeedService(store repositories.Store) *FeedService {
	return &FeedService{store: store}
}

// EnrichedPost is a post with author info and the viewer's like flag.
type EnrichedPost struct {
	models.Post
	Author  models.UserCompact `json:"author"`
	IsLiked bool               `json:"is_liked"`
}

// ComposeFeed returns the requested page of posts authored by users
// the viewer follows, ordered (created_at DESC, id DESC). A viewer who
// follows nobody gets an empty feed, not all posts.
func (s *FeedService) ComposeFeed(viewerID uint, page pagination.Params) ([]EnrichedPost, pagination.Meta, error) {
	followingIDs, err := s.store.Follows().GetFollowingIDs(viewerID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if len(followingIDs) == 0 {
		return []EnrichedPost{}, pagination.NewMeta(page, 0), nil
	}

	posts, err := s.store.Posts().GetByAuthorIDs(followingIDs, page.Offset(), page.Limit)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.store.Posts().CountByAuthorIDs(followingIDs)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	enriched, err := s.enrich(viewerID, posts)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return enriched, pagination.NewMeta(page, total), nil
}

func (s *FeedService) enrich(viewerID uint, posts []models.Post) ([]EnrichedPost, error) {
	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}
	authors, err := s.store.Users().GetByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := make(map[uint]models.UserCompact, len(authors))
	for _, u := range authors {
		authorMap[u.ID] = u.ToCompact()
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		liked, err := s.store.Likes().HasUserLikedPost(viewerID, p.ID)
		if err != nil {
			return nil, err
		}
		enriched[i] = EnrichedPost{
			Post:    p,
			Author:  authorMap[p.AuthorID],
			IsLiked: liked,
		}
	}
	return enriched, nil
}
