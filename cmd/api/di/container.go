package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ashleendsilva/food-rescue/cmd/api/infrastructure"
	"github.com/ashleendsilva/food-rescue/internal/adapter/db/postgres"
	ginhandler "github.com/ashleendsilva/food-rescue/internal/adapter/gin/handler"
	"github.com/ashleendsilva/food-rescue/internal/adapter/gin/middleware"
	"github.com/ashleendsilva/food-rescue/internal/adapter/session"
	"github.com/ashleendsilva/food-rescue/internal/config"
	"github.com/ashleendsilva/food-rescue/internal/usecase/account"
	"github.com/ashleendsilva/food-rescue/internal/usecase/food"
	redisclient "github.com/ashleendsilva/food-rescue/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	RedisClient    *redisclient.Client
	Sessions       *middleware.SessionManager
	AccountHandler *ginhandler.AccountHandler
	FoodHandler    *ginhandler.FoodHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	sessionTTL := time.Duration(cfg.Session.TTLSeconds) * time.Second
	sessionStore := session.NewRedisStore(rdb.Client, sessionTTL, l)
	sessions := middleware.NewSessionManager(sessionStore, middleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.TTLSeconds,
		Secure:     cfg.Session.Secure,
	}, l)

	userRepo := postgres.NewUserRepoPG(db, l)
	foodRepo := postgres.NewFoodRepoPG(db, l)

	accountUC := account.New(userRepo, l)
	foodUC := food.New(foodRepo, l)

	return &Container{
		Config:         cfg,
		Logger:         l,
		DB:             db,
		RedisClient:    rdb,
		Sessions:       sessions,
		AccountHandler: ginhandler.NewAccountHandler(accountUC, sessions, l),
		FoodHandler:    ginhandler.NewFoodHandler(foodUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
