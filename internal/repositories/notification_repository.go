package repositories

import (
	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByRecipient(recipientID uint, isRead bool) ([]models.Notification, error)
	UnreadCount(recipientID uint) (int64, error)
	// SetRead flips is_read on a notification owned by recipientID;
	// a missing row or a row owned by someone else is NotFound.
	SetRead(notificationID, recipientID uint, isRead bool) error
	DeleteByUserID(userID uint) error
	DeleteByTarget(targetType string, targetIDs []uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipient(recipientID uint, isRead bool) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ? AND is_read = ?", recipientID, isRead).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) UnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) SetRead(notificationID, recipientID uint, isRead bool) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", isRead)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.Wrap(apperror.ErrNotFound, "notification not found")
	}
	return nil
}

// DeleteByUserID removes notifications where the user is recipient or
// actor; used only by the account deletion cascade.
func (r *postgresNotificationRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("recipient_id = ? OR actor_id = ?", userID, userID).Delete(&models.Notification{}).Error
}

func (r *postgresNotificationRepository) DeleteByTarget(targetType string, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.Where("target_type = ? AND target_id IN ?", targetType, targetIDs).Delete(&models.Notification{}).Error
}
