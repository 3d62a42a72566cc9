package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "miniblog/internal/app"
	"miniblog/internal/bootstrap"
	"miniblog/internal/cache"
	"miniblog/internal/pkg/passhash"
	"miniblog/internal/platform/rabbitmq"
	"miniblog/internal/repository"
	"miniblog/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	hasher := passhash.NewHasher(app.Config.Auth.BcryptCost)
	postCache := cache.NewPostCache(app.Redis, time.Duration(app.Config.Redis.PostTTLSeconds)*time.Second)
	viewPublisher := rabbitmq.NewViewPublisher(app.MQConn, app.Config.RabbitMQ.ViewPersistQueue)

	authService := appsvc.NewAuthService(userRepo, hasher)
	identityService := appsvc.NewIdentityService(userRepo)
	recoveryService := appsvc.NewRecoveryService(userRepo, hasher)
	postService := appsvc.NewPostService(postRepo, postCache, viewPublisher)

	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(identityService, recoveryService)
	postHandler := handler.NewPostHandler(postService)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/find-username", accountHandler.FindUsername)
	authGroup.POST("/verify-identity", accountHandler.VerifyIdentity)
	authGroup.POST("/change-password", accountHandler.ChangePassword)

	v1.PUT("/users/:id/password", accountHandler.ChangePasswordByID)

	postGroup := v1.Group("/posts")
	postGroup.POST("", postHandler.Create)
	postGroup.GET("", postHandler.List)
	postGroup.GET("/:id", postHandler.Get)
	postGroup.PUT("/:id", postHandler.Update)
	postGroup.DELETE("/:id", postHandler.Delete)

	return router
}
