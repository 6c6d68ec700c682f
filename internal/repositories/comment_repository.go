package repositories

import (
	"errors"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	GetByPostID(postID uint) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
	DeleteByPostIDs(postIDs []uint) error
	DeleteByAuthorID(authorID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *PostgresCommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *PostgresCommentRepository) DeleteByPostIDs(postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) DeleteByAuthorID(authorID uint) error {
	return r.db.Where("author_id = ?", authorID).Delete(&models.Comment{}).Error
}
