package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell-blog/inkwell/internal/api/handler"
	"github.com/inkwell-blog/inkwell/internal/api/middleware"
	"github.com/inkwell-blog/inkwell/internal/core/auth"
	"github.com/inkwell-blog/inkwell/internal/core/ports"
	"github.com/inkwell-blog/inkwell/internal/core/service"
	"github.com/inkwell-blog/inkwell/internal/infrastructure/config"
	mongorepo "github.com/inkwell-blog/inkwell/internal/infrastructure/db/mongo"
	redisinfra "github.com/inkwell-blog/inkwell/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	uploader ports.Uploader,
	mailer ports.Mailer,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	tokens := auth.NewTokenIssuer(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL,
		cfg.Auth.RefreshTTL,
	)

	userRepo := mongorepo.NewUserRepository(db)
	blogRepo := mongorepo.NewBlogRepository(db)
	blogCache := redisinfra.NewBlogCache(rdb)

	userService := service.NewUserService(userRepo, uploader, mailer, tokens, cfg.Auth.ResetTTL, log)
	blogService := service.NewBlogService(blogRepo, uploader, blogCache, log)

	resetBaseURL := cfg.PublicURL + "/api/v1/users/reset-password"
	userHandler := handler.NewUserHandler(userService, tokens, resetBaseURL)
	blogHandler := handler.NewBlogHandler(blogService)
	authRequired := middleware.Auth(tokens)

	// --- User routes ---
	users := e.Group("/api/v1/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/refresh-token", userHandler.RefreshToken)
	users.POST("/forgot-password", userHandler.ForgotPassword)
	users.POST("/reset-password/:token", userHandler.ResetPassword)
	users.POST("/logout", userHandler.Logout, authRequired)
	users.POST("/change-password", userHandler.ChangePassword, authRequired)
	users.GET("/me", userHandler.Me, authRequired)
	users.PATCH("/me", userHandler.UpdateAccount, authRequired)
	users.PATCH("/me/avatar", userHandler.UpdateAvatar, authRequired)

	// --- Blog routes (all authenticated) ---
	blogs := e.Group("/api/v1/blogs", authRequired)
	blogs.GET("", blogHandler.List)
	blogs.POST("", blogHandler.Create)
	blogs.GET("/:id", blogHandler.Get)
	blogs.PATCH("/:id", blogHandler.Update)
	blogs.DELETE("/:id", blogHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
