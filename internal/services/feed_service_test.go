package services

import (
	"testing"
	"time"

	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/pagination"
	"github.com/devrakib/socialspace/backend/internal/repositories/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPostAt(t *testing.T, store *inmemory.Store, authorID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Title: title, Content: "content", CreatedAt: createdAt}
	require.NoError(t, store.Posts().Create(post))
	return post
}

func TestComposeFeedOnlyFollowedAuthors(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store)
	viewer := seedUser(t, store, "viewer")
	followed := seedUser(t, store, "followed")
	stranger := seedUser(t, store, "stranger")

	require.NoError(t, store.Follows().Create(&models.Follow{FollowerID: viewer.ID, FollowingID: followed.ID}))
	seedPost(t, store, followed.ID, "from followed")
	seedPost(t, store, stranger.ID, "from stranger")

	posts, meta, err := feed.ComposeFeed(viewer.ID, pagination.Normalize(1, 10))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "from followed", posts[0].Title)
	assert.Equal(t, followed.ID, posts[0].Author.ID)
	assert.Equal(t, "followed", posts[0].Author.Username)
	assert.EqualValues(t, 1, meta.TotalItems)
}

func TestComposeFeedNewestFirst(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store)
	viewer := seedUser(t, store, "viewer")
	author := seedUser(t, store, "author")
	require.NoError(t, store.Follows().Create(&models.Follow{FollowerID: viewer.ID, FollowingID: author.ID}))

	base := time.Now().Add(-time.Hour)
	seedPostAt(t, store, author.ID, "oldest", base)
	seedPostAt(t, store, author.ID, "newest", base.Add(2*time.Minute))
	seedPostAt(t, store, author.ID, "middle", base.Add(time.Minute))

	posts, _, err := feed.ComposeFeed(viewer.ID, pagination.Normalize(1, 10))
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Title)
	assert.Equal(t, "middle", posts[1].Title)
	assert.Equal(t, "oldest", posts[2].Title)
}

func TestComposeFeedTiesBrokenByID(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store)
	viewer := seedUser(t, store, "viewer")
	author := seedUser(t, store, "author")
	require.NoError(t, store.Follows().Create(&models.Follow{FollowerID: viewer.ID, FollowingID: author.ID}))

	at := time.Now()
	first := seedPostAt(t, store, author.ID, "first", at)
	second := seedPostAt(t, store, author.ID, "second", at)

	posts, _, err := feed.ComposeFeed(viewer.ID, pagination.Normalize(1, 10))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestComposeFeedEmptyWhenFollowingNobody(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store)
	viewer := seedUser(t, store, "viewer")
	other := seedUser(t, store, "other")
	seedPost(t, store, other.ID, "invisible")

	posts, meta, err := feed.ComposeFeed(viewer.ID, pagination.Normalize(1, 10))
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, meta.TotalItems)
	assert.False(t, meta.HasNextPage)
}

func TestComposeFeedPaginates(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store)
	viewer := seedUser(t, store, "viewer")
	author := seedUser(t, store, "author")
	require.NoError(t, store.Follows().Create(&models.Follow{FollowerID: viewer.ID, FollowingID: author.ID}))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedPostAt(t, store, author.ID, "post", base.Add(time.Duration(i)*time.Minute))
	}

	page1, meta, err := feed.ComposeFeed(viewer.ID, pagination.Normalize(1, 2))
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.EqualValues(t, 5, meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNextPage)
	assert.False(t, meta.HasPreviousPage)

	page3, meta, err := feed.ComposeFeed(viewer.ID, pagination.Normalize(3, 2))
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestComposeFeedMarksViewerLikes(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store)
	viewer := seedUser(t, store, "viewer")
	author := seedUser(t, store, "author")
	require.NoError(t, store.Follows().Create(&models.Follow{FollowerID: viewer.ID, FollowingID: author.ID}))

	base := time.Now().Add(-time.Hour)
	liked := seedPostAt(t, store, author.ID, "liked", base.Add(time.Minute))
	seedPostAt(t, store, author.ID, "not liked", base)
	require.NoError(t, store.Likes().Create(&models.Like{UserID: viewer.ID, PostID: liked.ID}))

	posts, _, err := feed.ComposeFeed(viewer.ID, pagination.Normalize(1, 10))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.True(t, posts[0].IsLiked)
	assert.False(t, posts[1].IsLiked)
}
