package services

import (
	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/pagination"
	"github.com/devrakib/socialspace/backend/internal/repositories"
)

// PostService owns post CRUD. Updates and deletes are restricted to
// the post's author; deletion cascades to the post's comments, likes
// and notification targets in one transaction.
type PostService struct {
	store repositories.Store
}

func NewPostService(store repositories.Store) *PostService {
	return &PostService{store: store}
}

func (s *PostService) Create(authorID uint, title, content, mediaURL string) (*models.Post, error) {
	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		MediaURL: mediaURL,
	}
	if err := s.store.Posts().Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(postID uint) (*models.Post, error) {
	return s.store.Posts().GetByID(postID)
}

// PostDetail is a single post with its like count.
type PostDetail struct {
	models.Post
	LikesCount int64 `json:"likes_count"`
}

// GetDetail returns the post together with its like count.
func (s *PostService) GetDetail(postID uint) (*PostDetail, error) {
	post, err := s.store.Posts().GetByID(postID)
	if err != nil {
		return nil, err
	}
	likes, err := s.store.Likes().CountByPostID(postID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: *post, LikesCount: likes}, nil
}

func (s *PostService) List(page pagination.Params) ([]models.Post, pagination.Meta, error) {
	posts, err := s.store.Posts().GetAll(page.Offset(), page.Limit)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if posts == nil {
		// An empty page serializes as [], not null.
		posts = []models.Post{}
	}
	total, err := s.store.Posts().CountAll()
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return posts, pagination.NewMeta(page, total), nil
}

func (s *PostService) Update(actorID, postID uint, title, content string) (*models.Post, error) {
	post, err := s.store.Posts().GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, apperror.Wrap(apperror.ErrPermission, "you can only update your own posts")
	}
	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}
	if err := s.store.Posts().Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post with its children: comments and likes first,
// then notifications pointing at it, then the post row.
func (s *PostService) Delete(actorID, postID uint) error {
	post, err := s.store.Posts().GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return apperror.Wrap(apperror.ErrPermission, "you can only delete your own posts")
	}
	return s.store.Transaction(func(tx repositories.Store) error {
		ids := []uint{postID}
		if err := tx.Comments().DeleteByPostIDs(ids); err != nil {
			return err
		}
		if err := tx.Likes().DeleteByPostIDs(ids); err != nil {
			return err
		}
		if err := tx.Notifications().DeleteByTarget(models.TargetPost, ids); err != nil {
			return err
		}
		return tx.Posts().Delete(postID)
	})
}
