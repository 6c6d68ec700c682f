package repositories

import "gorm.io/gorm"

// Store aggregates the per-entity repositories and provides the
// transaction boundary the interaction orchestrator runs inside.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository
	Likes() LikeRepository
	Follows() FollowRepository
	Notifications() NotificationRepository

	// Transaction runs fn against a store bound to a single database
	// transaction; fn returning an error rolls everything back.
	Transaction(fn func(Store) error) error
}

// PostgresStore implements Store on top of GORM/PostgreSQL.
type PostgresStore struct {
	db            *gorm.DB
	users         UserRepository
	posts         PostRepository
	comments      CommentRepository
	likes         LikeRepository
	follows       FollowRepository
	notifications NotificationRepository
}

// NewPostgresStore creates a PostgresStore over db, which may be a
// root connection or an open transaction.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{
		db:            db,
		users:         NewPostgresUserRepository(db),
		posts:         NewPostgresPostRepository(db),
		comments:      NewPostgresCommentRepository(db),
		likes:         NewPostgresLikeRepository(db),
		follows:       NewPostgresFollowRepository(db),
		notifications: NewPostgresNotificationRepository(db),
	}
}

func (s *PostgresStore) Users() UserRepository                 { return s.users }
func (s *PostgresStore) Posts() PostRepository                 { return s.posts }
func (s *PostgresStore) Comments() CommentRepository           { return s.comments }
func (s *PostgresStore) Likes() LikeRepository                 { return s.likes }
func (s *PostgresStore) Follows() FollowRepository             { return s.follows }
func (s *PostgresStore) Notifications() NotificationRepository { return s.notifications }

func (s *PostgresStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgresStore(tx))
	})
}
