package services

import (
	"testing"
	"time"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/pagination"
	"github.com/devrakib/socialspace/backend/internal/repositories/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)
	alice := seedUser(t, store, "alice")

	post, err := posts.Create(alice.ID, "hello world", "first post", "")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)

	got, err := posts.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Title)
	assert.Equal(t, alice.ID, got.AuthorID)
}

func TestGetUnknownPostNotFound(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)

	_, err := posts.Get(42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListPostsNewestFirst(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)
	alice := seedUser(t, store, "alice")

	base := time.Now().Add(-time.Hour)
	seedPostAt(t, store, alice.ID, "older", base)
	seedPostAt(t, store, alice.ID, "newer", base.Add(time.Minute))

	page, meta, err := posts.List(pagination.Normalize(1, 10))
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "newer", page[0].Title)
	assert.Equal(t, "older", page[1].Title)
	assert.EqualValues(t, 2, meta.TotalItems)
}

func TestGetDetailIncludesLikeCount(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")
	post := seedPost(t, store, alice.ID, "popular")
	require.NoError(t, store.Likes().Create(&models.Like{UserID: bob.ID, PostID: post.ID}))
	require.NoError(t, store.Likes().Create(&models.Like{UserID: carol.ID, PostID: post.ID}))

	detail, err := posts.GetDetail(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "popular", detail.Title)
	assert.EqualValues(t, 2, detail.LikesCount)
}

func TestListPostsEmptyPageIsNotNil(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)

	page, meta, err := posts.List(pagination.Normalize(1, 10))
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Empty(t, page)
	assert.Zero(t, meta.TotalItems)
}

func TestUpdatePostOwnershipEnforced(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, alice.ID, "original")

	_, err := posts.Update(bob.ID, post.ID, "hijacked", "")
	assert.ErrorIs(t, err, apperror.ErrPermission)

	updated, err := posts.Update(alice.ID, post.ID, "edited", "new body")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, "new body", updated.Content)
}

func TestDeletePostCascades(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)
	notifier := NewNotificationService(store)
	interactions := NewInteractionService(store, notifier)

	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, alice.ID, "doomed")

	require.NoError(t, interactions.Like(bob.ID, post.ID))
	_, err := interactions.Comment(bob.ID, post.ID, "soon gone")
	require.NoError(t, err)

	require.NoError(t, posts.Delete(alice.ID, post.ID))

	_, err = posts.Get(post.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	comments, err := store.Comments().GetByPostID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	liked, err := store.Likes().HasUserLikedPost(bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// Like and comment notifications targeting the post vanish with it.
	count, err := store.Notifications().UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeletePostOwnershipEnforced(t *testing.T) {
	store := inmemory.New()
	posts := NewPostService(store)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, alice.ID, "protected")

	err := posts.Delete(bob.ID, post.ID)
	assert.ErrorIs(t, err, apperror.ErrPermission)

	_, err = posts.Get(post.ID)
	require.NoError(t, err)
}
