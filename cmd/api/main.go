package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"vconnect/cmd/app"
	"vconnect/internal/config"
	"vconnect/internal/database"
	handlers "vconnect/internal/handler"
	"vconnect/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler)
	router.HandleFunc("/health", handlers.HealthHandler)
	router.HandleFunc("/tables", handler.TablesHandler)

	router.HandleFunc("/api/auth/register", handler.Register)
	router.HandleFunc("/api/auth/login", handler.Login)
	router.HandleFunc("/api/auth/logout", handler.Logout)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken)
	router.HandleFunc("/api/admin/login", handler.AdminLogin)

	router.HandleFunc("/api/me", handler.GetCurrentUser)
	router.HandleFunc("/api/me/details", handler.UpdateDetails)
	router.HandleFunc("/api/me/notifications", handler.Notifications)
	router.HandleFunc("/api/me/friend-requests", handler.FriendRequests)
	router.HandleFunc("/api/user/{id}", handler.GetUser)
	router.HandleFunc("/api/users/search", handler.SearchUsers)

	router.HandleFunc("/api/friends/request", handler.SendFriendRequest)
	router.HandleFunc("/api/friends/confirm", handler.ConfirmFriendRequest)
	router.HandleFunc("/api/friends/{id}", handler.Unfriend)

	router.HandleFunc("/api/posts", handler.CreatePost)
	router.HandleFunc("/api/posts/{id}", handler.GetPost)
	router.HandleFunc("/api/posts/{id}/share", handler.SharePost)
	router.HandleFunc("/api/posts/{id}/like", handler.LikePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/like", handler.UnlikePost).Methods(http.MethodDelete)

	router.HandleFunc("/api/feed", handler.GlobalFeed)
	router.HandleFunc("/api/feed/me", handler.MyFeed)
	router.HandleFunc("/api/feed/user/{id}", handler.UserFeed)

	router.HandleFunc("/api/images", handler.UploadPicture)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
