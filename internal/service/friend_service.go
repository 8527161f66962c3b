package service

import (
	"context"
	"fmt"

	"vconnect/internal/repository"
)

type FriendService interface {
	SendRequest(ctx context.Context, fromID, toID string) error
	ConfirmRequest(ctx context.Context, confirmerID, requesterID string) error
	Unfriend(ctx context.Context, userA, userB string) error
}

type friendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) FriendService {
	return &friendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

func (s *friendService) SendRequest(ctx context.Context, fromID, toID string) error {
	// a user never appears in its own request queue
	if fromID == toID {
		return fmt.Errorf("нельзя отправить заявку самому себе")
	}

	err := s.friendRepo.SendRequest(ctx, fromID, toID)
	if err != nil {
		return err
	}

	return nil
}

func (s *friendService) ConfirmRequest(ctx context.Context, confirmerID, requesterID string) error {
	if confirmerID == requesterID {
		return fmt.Errorf("нельзя добавить в друзья самого себя")
	}

	err := s.friendRepo.ConfirmRequest(ctx, confirmerID, requesterID)
	if err != nil {
		return err
	}

	return nil
}

func (s *friendService) Unfriend(ctx context.Context, userA, userB string) error {
	if userA == userB {
		return fmt.Errorf("нельзя удалить из друзей самого себя")
	}

	err := s.friendRepo.Unfriend(ctx, userA, userB)
	if err != nil {
		return err
	}

	return nil
}
