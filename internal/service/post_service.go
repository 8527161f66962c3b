package service

import (
	"context"
	"fmt"
	"io"

	"vconnect/internal/config"
	"vconnect/internal/models"
	"vconnect/internal/repository"
	"vconnect/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID string, req repository.CreatePostRequest) (*models.Post, error)
	CreateSharedPost(ctx context.Context, authorID, originalPostID string, req repository.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.FeedPost, error)
	GlobalFeed(ctx context.Context, viewerID string) ([]models.FeedPost, error)
	UserFeed(ctx context.Context, userID string) ([]models.FeedPost, error)
	OtherUserFeed(ctx context.Context, targetID, viewerID string) ([]models.FeedPost, error)
	LikePost(ctx context.Context, viewerID, postID string) error
	UnlikePost(ctx context.Context, viewerID, postID string) error
	UploadPicture(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func newPost(authorID string, req repository.CreatePostRequest) *models.Post {
	if req.Weight == "" {
		req.Weight = "normal"
	}
	if req.Style == "" {
		req.Style = "normal"
	}

	return &models.Post{
		UID:       authorID,
		Body:      req.Body,
		Picture:   req.Picture,
		Public:    req.Public,
		Weight:    req.Weight,
		Style:     req.Style,
		MediaType: req.MediaType,
	}
}

func (p *postService) CreatePost(ctx context.Context, authorID string, req repository.CreatePostRequest) (*models.Post, error) {
	post := newPost(authorID, req)

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) CreateSharedPost(ctx context.Context, authorID, originalPostID string, req repository.CreatePostRequest) (*models.Post, error) {
	post := newPost(authorID, req)
	post.SharedPost = &originalPostID

	err := p.postRepo.CreateShared(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.FeedPost, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// GlobalFeed checks that the viewer exists and is not disabled before running
// the feed query.
func (p *postService) GlobalFeed(ctx context.Context, viewerID string) ([]models.FeedPost, error) {
	viewer, err := p.userRepo.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if viewer.Disabled {
		return nil, fmt.Errorf("аккаунт отключен: %w", repository.ErrInvalidCredentials)
	}

	posts, err := p.postRepo.GetGlobalFeed(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *postService) UserFeed(ctx context.Context, userID string) ([]models.FeedPost, error) {
	posts, err := p.postRepo.GetUserFeed(ctx, userID)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *postService) OtherUserFeed(ctx context.Context, targetID, viewerID string) ([]models.FeedPost, error) {
	posts, err := p.postRepo.GetOtherUserFeed(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *postService) LikePost(ctx context.Context, viewerID, postID string) error {
	return p.postRepo.Like(ctx, viewerID, postID)
}

func (p *postService) UnlikePost(ctx context.Context, viewerID, postID string) error {
	return p.postRepo.Unlike(ctx, viewerID, postID)
}

func (p *postService) UploadPicture(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, error) {
	_, pictureURL, err := p.storage.UploadPicture(ctx, ownerID, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки изображения в MinIO: %w", err)
	}

	return pictureURL, nil
}
