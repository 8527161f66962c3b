package service

import (
	"vconnect/internal/config"
	"vconnect/internal/repository"
	"vconnect/internal/storage"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Friend FriendService
	Post   PostService
	Tables TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:   NewAuthService(rep.User, rep.Admin, cfg),
		User:   NewUserService(rep.User, rep.Notification, cfg),
		Friend: NewFriendService(rep.Friend, rep.User),
		Post:   NewPostService(rep.Post, rep.User, storage, cfg),
		Tables: NewTablesService(rep.Tables),
	}
}
