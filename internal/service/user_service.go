package service

import (
	"context"

	"vconnect/internal/config"
	"vconnect/internal/models"
	"vconnect/internal/repository"
)

type UserService interface {
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateDetails(ctx context.Context, req repository.UpdateDetailsRequest) error
	Search(ctx context.Context, prefix string) ([]*models.User, error)
	FriendRequestList(ctx context.Context, userID string) ([]*models.User, error)
	Notifications(ctx context.Context, userID string) ([]models.Notification, error)
}

type userService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	cfg              *config.Config
}

func NewUserService(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cfg:              cfg,
	}
}

func (s *userService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateDetails(ctx context.Context, req repository.UpdateDetailsRequest) error {
	err := s.userRepo.UpdateDetails(ctx, req.UserID, req.Bio, req.ProfilePic)
	if err != nil {
		return err
	}

	return nil
}

func (s *userService) Search(ctx context.Context, prefix string) ([]*models.User, error) {
	users, err := s.userRepo.SearchByName(ctx, prefix)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// FriendRequestList resolves the user's pending request ids to user records
// for the notification screen. The order follows the request queue.
func (s *userService) FriendRequestList(ctx context.Context, userID string) ([]*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, user.FriendRequest)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s *userService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}
