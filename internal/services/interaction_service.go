package services

import (
	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories"
)

// Notification verbs emitted by the orchestrator.
const (
	VerbFollowed  = "followed you"
	VerbLiked     = "liked your post"
	VerbCommented = "commented on your post"
)

// InteractionService is the single place a social action (follow,
// like, comment) is validated, applied to durable state, and fanned
// out into a notification. Each action's state mutation and its
// notification write run in one transaction: both persist or neither.
type InteractionService struct {
	store    repositories.Store
	notifier *NotificationService
}

func NewInteractionService(store repositories.Store, notifier *NotificationService) *InteractionService {
	return &InteractionService{store: store, notifier: notifier}
}

// Follow adds a follower -> target edge and notifies the target.
func (s *InteractionService) Follow(actorID, targetID uint) error {
	if actorID == targetID {
		return apperror.Wrap(apperror.ErrSelfAction, "cannot follow yourself")
	}
	if _, err := s.store.Users().GetByID(targetID); err != nil {
		return err
	}
	return s.store.Transaction(func(tx repositories.Store) error {
		if err := tx.Follows().Create(&models.Follow{FollowerID: actorID, FollowingID: targetID}); err != nil {
			return err
		}
		// The target is the new follower: the recipient resolves the
		// notification to the user who followed them.
		return s.notifier.Notify(tx, targetID, actorID, VerbFollowed, models.TargetUser, actorID)
	})
}

// Unfollow removes the edge. No notification is emitted.
func (s *InteractionService) Unfollow(actorID, targetID uint) error {
	if actorID == targetID {
		return apperror.Wrap(apperror.ErrSelfAction, "cannot unfollow yourself")
	}
	return s.store.Follows().Delete(actorID, targetID)
}

// Like records the (user, post) pair and notifies the post's author.
// The likes table's unique index decides concurrent duplicates: one caller
// wins, the other gets ErrDuplicate, and the loser's notification is
// rolled back with its insert.
func (s *InteractionService) Like(actorID, postID uint) error {
	post, err := s.store.Posts().GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID == actorID {
		return apperror.Wrap(apperror.ErrSelfAction, "cannot like your own post")
	}
	return s.store.Transaction(func(tx repositories.Store) error {
		if err := tx.Likes().Create(&models.Like{UserID: actorID, PostID: postID}); err != nil {
			return err
		}
		return s.notifier.Notify(tx, post.AuthorID, actorID, VerbLiked, models.TargetPost, post.ID)
	})
}

// Unlike removes the pair. The like notification is immutable history
// and stays.
func (s *InteractionService) Unlike(actorID, postID uint) error {
	post, err := s.store.Posts().GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID == actorID {
		return apperror.Wrap(apperror.ErrSelfAction, "cannot unlike your own post")
	}
	return s.store.Likes().Delete(actorID, postID)
}

// IsLiked reports whether the user has liked the post. Pure lookup.
func (s *InteractionService) IsLiked(actorID, postID uint) (bool, error) {
	if _, err := s.store.Posts().GetByID(postID); err != nil {
		return false, err
	}
	return s.store.Likes().HasUserLikedPost(actorID, postID)
}

// Comment persists a comment and notifies the post's author unless
// they commented on their own post. Comments are not a toggle; any
// number per post is allowed.
func (s *InteractionService) Comment(actorID, postID uint, content string) (*models.Comment, error) {
	post, err := s.store.Posts().GetByID(postID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{PostID: postID, AuthorID: actorID, Content: content}
	err = s.store.Transaction(func(tx repositories.Store) error {
		if err := tx.Comments().Create(comment); err != nil {
			return err
		}
		return s.notifier.Notify(tx, post.AuthorID, actorID, VerbCommented, models.TargetPost, post.ID)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *InteractionService) ListComments(postID uint) ([]models.Comment, error) {
	if _, err := s.store.Posts().GetByID(postID); err != nil {
		return nil, err
	}
	return s.store.Comments().GetByPostID(postID)
}

// UpdateComment rewrites the comment body; only the author may.
func (s *InteractionService) UpdateComment(actorID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.store.Comments().GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, apperror.Wrap(apperror.ErrPermission, "you can only update your own comments")
	}
	comment.Content = content
	if err := s.store.Comments().Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment; only the author may.
func (s *InteractionService) DeleteComment(actorID, commentID uint) error {
	comment, err := s.store.Comments().GetByID(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return apperror.Wrap(apperror.ErrPermission, "you can only delete your own comments")
	}
	return s.store.Comments().Delete(commentID)
}
