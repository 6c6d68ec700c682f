package repositories

import (
	"errors"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetAll(offset, limit int) ([]models.Post, error)
	CountAll() (int64, error)
	GetByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error)
	CountByAuthorIDs(authorIDs []uint) (int64, error)
	GetIDsByAuthorID(authorID uint) ([]uint, error)
	Update(post *models.Post) error
	Delete(id uint) error
	DeleteByAuthorID(authorID uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "post not found")
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetAll(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// GetByAuthorIDs returns a page of posts by the given authors, newest
// first with id as tiebreak so equal timestamps stay totally ordered.
func (r *PostgresPostRepository) GetByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.db.Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountByAuthorIDs(authorIDs []uint) (int64, error) {
	var count int64
	if len(authorIDs) == 0 {
		return 0, nil
	}
	err := r.db.Model(&models.Post{}).Where("author_id IN ?", authorIDs).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) GetIDsByAuthorID(authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostgresPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *PostgresPostRepository) DeleteByAuthorID(authorID uint) error {
	return r.db.Where("author_id = ?", authorID).Delete(&models.Post{}).Error
}
