package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/config"
	"github.com/mikhailsoldatkin/yatube-social/internal/api/admin"
	"github.com/mikhailsoldatkin/yatube-social/internal/api/feed"
	"github.com/mikhailsoldatkin/yatube-social/internal/api/group"
	"github.com/mikhailsoldatkin/yatube-social/internal/api/post"
	"github.com/mikhailsoldatkin/yatube-social/internal/api/profile"
	"github.com/mikhailsoldatkin/yatube-social/internal/api/user"
	"github.com/mikhailsoldatkin/yatube-social/internal/cache"
	"github.com/mikhailsoldatkin/yatube-social/internal/common"
	"github.com/mikhailsoldatkin/yatube-social/internal/middleware"
	"github.com/mikhailsoldatkin/yatube-social/internal/repository/mysql"
	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/storage"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

func main() {
	config.Init()

	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("starting yatube-social")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := common.WithRetry(db.Ping, 3); err != nil {
		util.Logger.Fatal("database is unreachable", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("slug", util.ValidateSlug)
	}

	fileStorage, err := buildStorage()
	if err != nil {
		util.Logger.Fatal("failed to initialize file storage", zap.Error(err))
	}

	// repositories
	userRepo := mysql.NewUserRepository(db)
	postRepo := mysql.NewPostRepository(db)
	groupRepo := mysql.NewGroupRepository(db)
	followRepo := mysql.NewFollowRepository(db)

	// services
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, groupRepo)
	groupService := service.NewGroupService(groupRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	feedService := service.NewFeedService(postRepo, groupRepo, userRepo, config.AppConfig.PageSize)
	statsService := service.NewStatsService(userRepo, postRepo, groupRepo, followRepo)

	// the rendered global feed stays cached for the configured TTL;
	// writes do not invalidate it
	fragmentCache := cache.NewFragmentCache(time.Duration(config.AppConfig.FeedCacheTTL) * time.Second)

	errorMonitor := middleware.NewErrorMonitor()

	// handlers
	authHandler := user.NewAuthHandler(userService)
	feedHandler := feed.NewFeedHandler(feedService, fragmentCache)
	postHandler := post.NewPostHandler(postService, userService, fileStorage)
	groupHandler := group.NewGroupHandler(groupService, feedService)
	profileHandler := profile.NewProfileHandler(feedService, followService)
	adminHandler := admin.NewAdminHandler(groupService, statsService, errorMonitor)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	registerRoutes(r, userService, authHandler, feedHandler, postHandler, groupHandler, profileHandler, adminHandler)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		util.Logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	util.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Error("forced shutdown", zap.Error(err))
	}
}

func registerRoutes(
	r *gin.Engine,
	userService *service.UserService,
	authHandler *user.AuthHandler,
	feedHandler *feed.FeedHandler,
	postHandler *post.PostHandler,
	groupHandler *group.GroupHandler,
	profileHandler *profile.ProfileHandler,
	adminHandler *admin.AdminHandler,
) {
	// public reads; OptionalAuth personalizes follow state when signed in
	r.GET("/", middleware.OptionalAuth(userService), feedHandler.Index)
	r.GET("/group/:slug/", groupHandler.GroupFeed)
	r.GET("/groups/", groupHandler.ListGroups)
	r.GET("/profile/:username/", middleware.OptionalAuth(userService), profileHandler.Profile)
	r.GET("/posts/:id/", postHandler.GetPost)

	// account endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/signup/", authHandler.Signup)
		auth.POST("/login/", authHandler.Login)
		auth.POST("/logout/", middleware.RequireAuth(userService), authHandler.Logout)
		auth.POST("/password-reset/", authHandler.RequestPasswordReset)
		auth.POST("/password-reset/confirm/", authHandler.ResetPassword)
		auth.PATCH("/profile/", middleware.RequireAuth(userService), authHandler.UpdateProfile)
		auth.DELETE("/account/", middleware.RequireAuth(userService), authHandler.DeleteAccount)
	}

	// writes and the personalized feed require a signed-in user;
	// anonymous callers are redirected to login with next preserved
	authorized := r.Group("/")
	authorized.Use(middleware.RequireAuth(userService))
	{
		authorized.POST("/create/", postHandler.CreatePost)
		authorized.POST("/posts/:id/edit/", postHandler.EditPost)
		authorized.POST("/posts/:id/comment/", postHandler.AddComment)
		authorized.POST("/profile/:username/follow/", profileHandler.Follow)
		authorized.POST("/profile/:username/unfollow/", profileHandler.Unfollow)
		authorized.GET("/follow/", feedHandler.Personal)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(userService), middleware.RequireAdmin(userService))
	{
		adminGroup.POST("/groups/", adminHandler.CreateGroup)
		adminGroup.GET("/stats/", adminHandler.Stats)
	}

	r.NoRoute(user.NotFound)
}

func buildStorage() (storage.FileStorage, error) {
	switch config.AppConfig.StorageBackend {
	case "s3":
		return storage.NewS3Storage(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
	case "gcs":
		return storage.NewGCSStorage(config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
	default:
		return storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
	}
}
