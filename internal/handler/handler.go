package handlers

import (
	"github.com/go-playground/validator/v10"
	"vconnect/internal/config"
	"vconnect/internal/repository"
	"vconnect/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	FriendService service.FriendService
	PostService   service.PostService
	TablesService service.TablesService
	UserRepo      repository.UserRepository
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		UserService:   service.User,
		FriendService: service.Friend,
		PostService:   service.Post,
		TablesService: service.Tables,
		UserRepo:      repo.User,
		Cfg:           config,
		Validate:      validator.New(),
	}
}
