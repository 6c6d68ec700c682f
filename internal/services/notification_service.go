package services

import (
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories"
)

// NotificationService is the append-only log of social events. Records
// are created only through the interaction orchestrator; end users can
// only flip the read flag on their own notifications.
type NotificationService struct {
	store repositories.Store
}

func NewNotificationService(store repositories.Store) *NotificationService {
	return &NotificationService{store: store}
}

// Notify appends a notification through st, which is the tx-bound
// store when called from inside an orchestrated action. A user is
// never notified about their own action: recipient == actor is a no-op.
func (s *NotificationService) Notify(st repositories.Store, recipientID, actorID uint, verb, targetType string, targetID uint) error {
	if recipientID == actorID {
		return nil
	}
	return st.Notifications().Create(&models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		TargetType:  targetType,
		TargetID:    targetID,
	})
}

// List returns the recipient's notifications partitioned into unread
// and read buckets. Each bucket is ordered newest first; the unread
// bucket always precedes the read one in the response.
func (s *NotificationService) List(recipientID uint) (unread, read []models.EnrichedNotification, err error) {
	unreadRows, err := s.store.Notifications().GetByRecipient(recipientID, false)
	if err != nil {
		return nil, nil, err
	}
	readRows, err := s.store.Notifications().GetByRecipient(recipientID, true)
	if err != nil {
		return nil, nil, err
	}
	actorCache := make(map[uint]models.UserCompact)
	return s.enrich(unreadRows, actorCache), s.enrich(readRows, actorCache), nil
}

func (s *NotificationService) enrich(rows []models.Notification, actorCache map[uint]models.UserCompact) []models.EnrichedNotification {
	enriched := make([]models.EnrichedNotification, len(rows))
	for i, n := range rows {
		enriched[i] = models.EnrichedNotification{
			Notification: n,
			Target:       s.resolveTarget(n.TargetType, n.TargetID),
		}
		if actor, ok := actorCache[n.ActorID]; ok {
			enriched[i].Actor = actor
		} else if user, err := s.store.Users().GetByID(n.ActorID); err == nil {
			compact := user.ToCompact()
			actorCache[n.ActorID] = compact
			enriched[i].Actor = compact
		}
	}
	return enriched
}

// resolveTarget dispatches on the target kind and fetches the
// referenced entity. A target deleted after the notification was
// written resolves to nil and is rendered as a null target.
func (s *NotificationService) resolveTarget(targetType string, targetID uint) *models.ResolvedTarget {
	switch targetType {
	case models.TargetPost:
		post, err := s.store.Posts().GetByID(targetID)
		if err != nil {
			return nil
		}
		return &models.ResolvedTarget{ID: post.ID, Model: models.TargetPost, Data: post.Title}
	case models.TargetUser:
		user, err := s.store.Users().GetByID(targetID)
		if err != nil {
			return nil
		}
		return &models.ResolvedTarget{ID: user.ID, Model: models.TargetUser, Data: user.Username}
	case models.TargetComment:
		comment, err := s.store.Comments().GetByID(targetID)
		if err != nil {
			return nil
		}
		return &models.ResolvedTarget{ID: comment.ID, Model: models.TargetComment, Data: comment.Content}
	}
	return nil
}

// MarkRead marks a notification as read. Ownership is part of the
// lookup: someone else's notification is NotFound, not Forbidden.
func (s *NotificationService) MarkRead(notificationID, recipientID uint) error {
	return s.store.Notifications().SetRead(notificationID, recipientID, true)
}

// MarkUnread is the symmetric operation.
func (s *NotificationService) MarkUnread(notificationID, recipientID uint) error {
	return s.store.Notifications().SetRead(notificationID, recipientID, false)
}

func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	return s.store.Notifications().UnreadCount(recipientID)
}
