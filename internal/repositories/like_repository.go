package repositories

import (
	"errors"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Create(like *models.Like) error
	Delete(userID, postID uint) error
	HasUserLikedPost(userID, postID uint) (bool, error)
	CountByPostID(postID uint) (int64, error)
	DeleteByPostIDs(postIDs []uint) error
	DeleteByUserID(userID uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// Create inserts the (user, post) pair. The composite unique index
// makes concurrent duplicates resolve to exactly one winner; the loser
// gets ErrDuplicate.
func (r *PostgresLikeRepository) Create(like *models.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Wrap(apperror.ErrDuplicate, "post already liked")
		}
		return err
	}
	return nil
}

func (r *PostgresLikeRepository) Delete(userID, postID uint) error {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.Wrap(apperror.ErrNotFound, "like not found")
	}
	return nil
}

func (r *PostgresLikeRepository) HasUserLikedPost(userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresLikeRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) DeleteByPostIDs(postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error
}

func (r *PostgresLikeRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Like{}).Error
}
