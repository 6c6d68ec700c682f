package services

import (
	"sync"
	"testing"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInteractionFixture(t *testing.T) (*inmemory.Store, *InteractionService) {
	t.Helper()
	store := inmemory.New()
	notifier := NewNotificationService(store)
	return store, NewInteractionService(store, notifier)
}

func seedUser(t *testing.T, store *inmemory.Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(user))
	return user
}

func seedPost(t *testing.T, store *inmemory.Store, authorID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Title: title, Content: "content"}
	require.NoError(t, store.Posts().Create(post))
	return post
}

func TestFollowCreatesEdgeAndNotifiesTarget(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	require.NoError(t, interactions.Follow(alice.ID, bob.ID))

	following, err := store.Follows().IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	unread, err := store.Notifications().GetByRecipient(bob.ID, false)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, alice.ID, unread[0].ActorID)
	assert.Equal(t, VerbFollowed, unread[0].Verb)
	assert.Equal(t, models.TargetUser, unread[0].TargetType)
	assert.Equal(t, alice.ID, unread[0].TargetID)
}

func TestFollowSelfRejected(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")

	err := interactions.Follow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperror.ErrSelfAction)
}

func TestFollowTwiceReturnsDuplicate(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	require.NoError(t, interactions.Follow(alice.ID, bob.ID))
	err := interactions.Follow(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestFollowUnknownUserNotFound(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")

	err := interactions.Follow(alice.ID, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnfollowRemovesEdgeWithoutNotification(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	require.NoError(t, interactions.Follow(alice.ID, bob.ID))
	require.NoError(t, interactions.Unfollow(alice.ID, bob.ID))

	following, err := store.Follows().IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// The follow notification is history and survives the unfollow.
	unread, err := store.Notifications().GetByRecipient(bob.ID, false)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestUnfollowWithoutEdgeNotFound(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	err := interactions.Unfollow(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLikeNotifiesAuthor(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	require.NoError(t, interactions.Like(alice.ID, post.ID))

	liked, err := store.Likes().HasUserLikedPost(alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	unread, err := store.Notifications().GetByRecipient(bob.ID, false)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, alice.ID, unread[0].ActorID)
	assert.Equal(t, VerbLiked, unread[0].Verb)
	assert.Equal(t, models.TargetPost, unread[0].TargetType)
	assert.Equal(t, post.ID, unread[0].TargetID)
}

func TestLikeOwnPostRejected(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	err := interactions.Like(bob.ID, post.ID)
	assert.ErrorIs(t, err, apperror.ErrSelfAction)

	count, err := store.Notifications().UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeTwiceReturnsDuplicate(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	require.NoError(t, interactions.Like(alice.ID, post.ID))
	err := interactions.Like(alice.ID, post.ID)
	assert.ErrorIs(t, err, apperror.ErrDuplicate)

	// Only the first like produced a notification.
	count, err := store.Notifications().UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestConcurrentDuplicateLike(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = interactions.Like(alice.ID, post.ID)
		}(i)
	}
	wg.Wait()

	// Exactly one caller wins; the other observes the duplicate.
	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, apperror.ErrDuplicate):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)

	count, err := store.Notifications().UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnlikeKeepsNotification(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	require.NoError(t, interactions.Like(alice.ID, post.ID))
	require.NoError(t, interactions.Unlike(alice.ID, post.ID))

	liked, err := store.Likes().HasUserLikedPost(alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err := store.Notifications().UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnlikeWithoutLikeNotFound(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	err := interactions.Unlike(alice.ID, post.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCommentNotifiesAuthor(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	comment, err := interactions.Comment(alice.ID, post.ID, "nice one")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, "nice one", comment.Content)

	unread, err := store.Notifications().GetByRecipient(bob.ID, false)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, VerbCommented, unread[0].Verb)
	assert.Equal(t, models.TargetPost, unread[0].TargetType)
	assert.Equal(t, post.ID, unread[0].TargetID)
}

func TestCommentOwnPostNoNotification(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	_, err := interactions.Comment(bob.ID, post.ID, "replying to myself")
	require.NoError(t, err)

	count, err := store.Notifications().UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdateCommentOwnershipEnforced(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	comment, err := interactions.Comment(alice.ID, post.ID, "original")
	require.NoError(t, err)

	_, err = interactions.UpdateComment(bob.ID, comment.ID, "hijacked")
	assert.ErrorIs(t, err, apperror.ErrPermission)

	updated, err := interactions.UpdateComment(alice.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteCommentOwnershipEnforced(t *testing.T) {
	store, interactions := newInteractionFixture(t)
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	post := seedPost(t, store, bob.ID, "bob's post")

	comment, err := interactions.Comment(alice.ID, post.ID, "to be deleted")
	require.NoError(t, err)

	err = interactions.DeleteComment(bob.ID, comment.ID)
	assert.ErrorIs(t, err, apperror.ErrPermission)

	require.NoError(t, interactions.DeleteComment(alice.ID, comment.ID))

	comments, err := interactions.ListComments(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
