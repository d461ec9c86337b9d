package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "github.com/ashleendsilva/food-rescue/internal/adapter/gin/handler"
	ginrouter "github.com/ashleendsilva/food-rescue/internal/adapter/gin/router"
	"github.com/ashleendsilva/food-rescue/internal/adapter/gin/middleware"
)

// SetupHTTPServer creates and configures the HTTP server around the Gin
// router.
func SetupHTTPServer(
	accountHandler *ginhandler.AccountHandler,
	foodHandler *ginhandler.FoodHandler,
	sessions *middleware.SessionManager,
	addr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(accountHandler, foodHandler, sessions, l)

	l.Info("HTTP API configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
