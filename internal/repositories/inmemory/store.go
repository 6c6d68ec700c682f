// Package inmemory provides a map-backed repositories.Store used by
// the service tests. It mirrors the Postgres implementation's error
// semantics, including duplicate-key enforcement on likes and follows.
package inmemory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories"
)

type Store struct {
	mu sync.Mutex

	nextID        uint
	users         map[uint]models.User
	posts         map[uint]models.Post
	comments      map[uint]models.Comment
	likes         map[uint]models.Like
	follows       map[uint]models.Follow
	notifications map[uint]models.Notification
}

func New() *Store {
	return &Store{
		nextID:        1,
		users:         make(map[uint]models.User),
		posts:         make(map[uint]models.Post),
		comments:      make(map[uint]models.Comment),
		likes:         make(map[uint]models.Like),
		follows:       make(map[uint]models.Follow),
		notifications: make(map[uint]models.Notification),
	}
}

func (s *Store) Users() repositories.UserRepository                 { return (*userRepo)(s) }
func (s *Store) Posts() repositories.PostRepository                 { return (*postRepo)(s) }
func (s *Store) Comments() repositories.CommentRepository           { return (*commentRepo)(s) }
func (s *Store) Likes() repositories.LikeRepository                 { return (*likeRepo)(s) }
func (s *Store) Follows() repositories.FollowRepository             { return (*followRepo)(s) }
func (s *Store) Notifications() repositories.NotificationRepository { return (*notificationRepo)(s) }

// Transaction runs fn against the same store. Rollback is not
// simulated; the orchestrator's guards run before any write, so test
// scenarios never need a partial-write undo.
func (s *Store) Transaction(fn func(repositories.Store) error) error {
	return fn(s)
}

func (s *Store) allocateID() uint {
	id := s.nextID
	s.nextID++
	return id
}

// --- users ---

type userRepo Store

func (r *userRepo) Create(user *models.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperror.Wrap(apperror.ErrDuplicate, "username or email already taken")
		}
	}
	user.ID = s.allocateID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(id uint) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(username string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
}

func (r *userRepo) GetByEmail(email string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
}

func (r *userRepo) GetByIDs(ids []uint) ([]models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *userRepo) Update(user *models.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return apperror.Wrap(apperror.ErrNotFound, "user not found")
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Delete(id uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (r *userRepo) Search(query string) ([]models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var users []models.User
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Email), q) {
			users = append(users, u)
		}
	}
	return users, nil
}

// --- posts ---

type postRepo Store

func (r *postRepo) Create(post *models.Post) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.allocateID()
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	s.posts[post.ID] = *post
	return nil
}

func (r *postRepo) GetByID(id uint) (*models.Post, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, apperror.Wrap(apperror.ErrNotFound, "post not found")
	}
	return &p, nil
}

func sortPostsNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

func pagePosts(posts []models.Post, offset, limit int) []models.Post {
	if offset >= len(posts) {
		return nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

func (r *postRepo) GetAll(offset, limit int) ([]models.Post, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []models.Post
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sortPostsNewestFirst(posts)
	return pagePosts(posts, offset, limit), nil
}

func (r *postRepo) CountAll() (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.posts)), nil
}

func (r *postRepo) GetByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	authors := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}
	var posts []models.Post
	for _, p := range s.posts {
		if authors[p.AuthorID] {
			posts = append(posts, p)
		}
	}
	sortPostsNewestFirst(posts)
	return pagePosts(posts, offset, limit), nil
}

func (r *postRepo) CountByAuthorIDs(authorIDs []uint) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	authors := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}
	var count int64
	for _, p := range s.posts {
		if authors[p.AuthorID] {
			count++
		}
	}
	return count, nil
}

func (r *postRepo) GetIDsByAuthorID(authorID uint) ([]uint, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (r *postRepo) Update(post *models.Post) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return apperror.Wrap(apperror.ErrNotFound, "post not found")
	}
	post.UpdatedAt = time.Now()
	s.posts[post.ID] = *post
	return nil
}

func (r *postRepo) Delete(id uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (r *postRepo) DeleteByAuthorID(authorID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.posts {
		if p.AuthorID == authorID {
			delete(s.posts, id)
		}
	}
	return nil
}

// --- comments ---

type commentRepo Store

func (r *commentRepo) Create(comment *models.Comment) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = s.allocateID()
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	s.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) GetByID(id uint) (*models.Comment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, apperror.Wrap(apperror.ErrNotFound, "comment not found")
	}
	return &c, nil
}

func (r *commentRepo) GetByPostID(postID uint) ([]models.Comment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var comments []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (r *commentRepo) Update(comment *models.Comment) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; !ok {
		return apperror.Wrap(apperror.ErrNotFound, "comment not found")
	}
	comment.UpdatedAt = time.Now()
	s.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) Delete(id uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comments, id)
	return nil
}

func (r *commentRepo) DeleteByPostIDs(postIDs []uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		ids[id] = true
	}
	for id, c := range s.comments {
		if ids[c.PostID] {
			delete(s.comments, id)
		}
	}
	return nil
}

func (r *commentRepo) DeleteByAuthorID(authorID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.comments {
		if c.AuthorID == authorID {
			delete(s.comments, id)
		}
	}
	return nil
}

// --- likes ---

type likeRepo Store

func (r *likeRepo) Create(like *models.Like) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return apperror.Wrap(apperror.ErrDuplicate, "post already liked")
		}
	}
	like.ID = s.allocateID()
	like.CreatedAt = time.Now()
	s.likes[like.ID] = *like
	return nil
}

func (r *likeRepo) Delete(userID, postID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.likes {
		if l.UserID == userID && l.PostID == postID {
			delete(s.likes, id)
			return nil
		}
	}
	return apperror.Wrap(apperror.ErrNotFound, "like not found")
}

func (r *likeRepo) HasUserLikedPost(userID, postID uint) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.UserID == userID && l.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r *likeRepo) CountByPostID(postID uint) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, l := range s.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *likeRepo) DeleteByPostIDs(postIDs []uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		ids[id] = true
	}
	for id, l := range s.likes {
		if ids[l.PostID] {
			delete(s.likes, id)
		}
	}
	return nil
}

func (r *likeRepo) DeleteByUserID(userID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.likes {
		if l.UserID == userID {
			delete(s.likes, id)
		}
	}
	return nil
}

// --- follows ---

type followRepo Store

func (r *followRepo) Create(follow *models.Follow) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.follows {
		if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
			return apperror.Wrap(apperror.ErrDuplicate, "already following this user")
		}
	}
	follow.ID = s.allocateID()
	follow.CreatedAt = time.Now()
	s.follows[follow.ID] = *follow
	return nil
}

func (r *followRepo) Delete(followerID, followingID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			delete(s.follows, id)
			return nil
		}
	}
	return apperror.Wrap(apperror.ErrNotFound, "follow relationship not found")
}

func (r *followRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *followRepo) GetFollowers(userID uint) ([]models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, f := range s.follows {
		if f.FollowingID == userID {
			if u, ok := s.users[f.FollowerID]; ok {
				users = append(users, u)
			}
		}
	}
	return users, nil
}

func (r *followRepo) GetFollowing(userID uint) ([]models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, f := range s.follows {
		if f.FollowerID == userID {
			if u, ok := s.users[f.FollowingID]; ok {
				users = append(users, u)
			}
		}
	}
	return users, nil
}

func (r *followRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint
	for _, f := range s.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FollowingID)
		}
	}
	return ids, nil
}

func (r *followRepo) CountFollowers(userID uint) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, f := range s.follows {
		if f.FollowingID == userID {
			count++
		}
	}
	return count, nil
}

func (r *followRepo) CountFollowing(userID uint) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, f := range s.follows {
		if f.FollowerID == userID {
			count++
		}
	}
	return count, nil
}

func (r *followRepo) DeleteByUserID(userID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.follows {
		if f.FollowerID == userID || f.FollowingID == userID {
			delete(s.follows, id)
		}
	}
	return nil
}

// --- notifications ---

type notificationRepo Store

func (r *notificationRepo) Create(notification *models.Notification) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	notification.ID = s.allocateID()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	s.notifications[notification.ID] = *notification
	return nil
}

func (r *notificationRepo) GetByRecipient(recipientID uint, isRead bool) ([]models.Notification, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var notifications []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && n.IsRead == isRead {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})
	return notifications, nil
}

func (r *notificationRepo) UnreadCount(recipientID uint) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) SetRead(notificationID, recipientID uint, isRead bool) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[notificationID]
	if !ok || n.RecipientID != recipientID {
		return apperror.Wrap(apperror.ErrNotFound, "notification not found")
	}
	n.IsRead = isRead
	s.notifications[notificationID] = n
	return nil
}

func (r *notificationRepo) DeleteByUserID(userID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if n.RecipientID == userID || n.ActorID == userID {
			delete(s.notifications, id)
		}
	}
	return nil
}

func (r *notificationRepo) DeleteByTarget(targetType string, targetIDs []uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[uint]bool, len(targetIDs))
	for _, id := range targetIDs {
		ids[id] = true
	}
	for id, n := range s.notifications {
		if n.TargetType == targetType && ids[n.TargetID] {
			delete(s.notifications, id)
		}
	}
	return nil
}
