package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"vconnect/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateDetails(ctx context.Context, userID, bio, profilePic string) error
	SetDisabled(ctx context.Context, userID string, disabled bool) error
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	SearchByName(ctx context.Context, prefix string) ([]*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	CreateShared(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.FeedPost, error)
	GetGlobalFeed(ctx context.Context, viewerID string) ([]models.FeedPost, error)
	GetUserFeed(ctx context.Context, userID string) ([]models.FeedPost, error)
	GetOtherUserFeed(ctx context.Context, targetID, viewerID string) ([]models.FeedPost, error)
	Like(ctx context.Context, userID, postID string) error
	Unlike(ctx context.Context, userID, postID string) error
}

type FriendRepository interface {
	SendRequest(ctx context.Context, fromID, toID string) error
	ConfirmRequest(ctx context.Context, confirmerID, requesterID string) error
	Unfriend(ctx context.Context, userA, userB string) error
}

type NotificationRepository interface {
	Add(ctx context.Context, q sqlx.ExtContext, userID, actorName string, notificationType int) error
	GetByUserID(ctx context.Context, userID string) ([]models.Notification, error)
}

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.Admin, error)
}

type TablesRepository interface {
	CountTablesDB() (int, error)
}

type Repository struct {
	User         UserRepository
	Post         PostRepository
	Friend       FriendRepository
	Notification NotificationRepository
	Admin        AdminRepository
	Tables       TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	notifications := NewNotificationRepository(db)

	return &Repository{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db, notifications),
		Friend:       NewFriendRepository(db, notifications),
		Notification: notifications,
		Admin:        NewAdminRepository(db),
		Tables:       NewTablesRepository(db),
	}
}
