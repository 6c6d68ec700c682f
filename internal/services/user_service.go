package services

import (
	"errors"
	"time"

	"github.com/devrakib/socialspace/backend/internal/apperror"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// TokenPair is the access/refresh pair returned on login and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// UserService handles registration, credential checks, token issuance
// and profile lifecycle, including the ordered account-deletion cascade.
type UserService struct {
	store     repositories.Store
	jwtSecret []byte
}

func NewUserService(store repositories.Store, jwtSecret string) *UserService {
	return &UserService{store: store, jwtSecret: []byte(jwtSecret)}
}

func (s *UserService) Register(req *models.RegisterRequest, profilePictureURL string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:          req.Username,
		Email:             req.Email,
		Bio:               req.Bio,
		ProfilePictureURL: profilePictureURL,
		Password:          string(hashed),
	}
	if err := s.store.Users().Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login accepts the username or the email address as the identifier.
func (s *UserService) Login(usernameOrEmail, password string) (*TokenPair, error) {
	user, err := s.store.Users().GetByUsername(usernameOrEmail)
	if errors.Is(err, apperror.ErrNotFound) {
		user, err = s.store.Users().GetByEmail(usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Wrap(apperror.ErrUnauthorized, "invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "invalid credentials")
	}
	return s.generateTokenPair(user)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *UserService) Refresh(refreshToken string) (*TokenPair, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Wrap(apperror.ErrUnauthorized, "unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.TokenType != "refresh" {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "invalid refresh token")
	}
	user, err := s.store.Users().GetByID(claims.UserID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "invalid refresh token")
	}
	return s.generateTokenPair(user)
}

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *UserService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	return s.store.Users().GetByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, req *models.UpdateProfileRequest, profilePictureURL string) (*models.User, error) {
	user, err := s.store.Users().GetByID(userID)
	if err != nil {
		return nil, err
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if profilePictureURL != "" {
		user.ProfilePictureURL = profilePictureURL
	}
	if err := s.store.Users().Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetPublicProfile returns the compact profile another user sees,
// including follower and following counts.
func (s *UserService) GetPublicProfile(userID uint) (*models.UserProfile, error) {
	user, err := s.store.Users().GetByID(userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.store.Follows().CountFollowers(userID)
	if err != nil {
		return nil, err
	}
	following, err := s.store.Follows().CountFollowing(userID)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{
		UserCompact:    user.ToCompact(),
		Bio:            user.Bio,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

func (s *UserService) Search(query string) ([]models.User, error) {
	return s.store.Users().Search(query)
}

// DeleteAccount removes the user and everything they own or touched,
// children before parents, in a single transaction: notifications
// (as recipient, actor, or targeting their posts), likes, comments,
// follow edges, posts, then the user row itself.
func (s *UserService) DeleteAccount(userID uint) error {
	if _, err := s.store.Users().GetByID(userID); err != nil {
		return err
	}
	return s.store.Transaction(func(tx repositories.Store) error {
		postIDs, err := tx.Posts().GetIDsByAuthorID(userID)
		if err != nil {
			return err
		}
		if err := tx.Notifications().DeleteByUserID(userID); err != nil {
			return err
		}
		if err := tx.Notifications().DeleteByTarget(models.TargetPost, postIDs); err != nil {
			return err
		}
		if err := tx.Likes().DeleteByUserID(userID); err != nil {
			return err
		}
		if err := tx.Likes().DeleteByPostIDs(postIDs); err != nil {
			return err
		}
		if err := tx.Comments().DeleteByAuthorID(userID); err != nil {
			return err
		}
		if err := tx.Comments().DeleteByPostIDs(postIDs); err != nil {
			return err
		}
		if err := tx.Follows().DeleteByUserID(userID); err != nil {
			return err
		}
		if err := tx.Posts().DeleteByAuthorID(userID); err != nil {
			return err
		}
		return tx.Users().Delete(userID)
	})
}
