package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashleendsilva/food-rescue/internal/adapter/gin/handler"
	"github.com/ashleendsilva/food-rescue/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	accountHandler *handler.AccountHandler,
	foodHandler *handler.FoodHandler,
	sessions *middleware.SessionManager,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(sessions.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "food-rescue",
		})
	})

	router.POST("/signup", accountHandler.SignupRoot)
	router.POST("/signup/ngo", accountHandler.SignupNGO)
	router.POST("/signup/restaurant", accountHandler.SignupRestaurant)
	router.POST("/signup/common", accountHandler.SignupCommon)
	router.POST("/login", accountHandler.Login)
	router.POST("/logout", accountHandler.Logout)
	router.GET("/status", accountHandler.Status)

	food := router.Group("/food")
	{
		food.POST("/add", foodHandler.Add)
		food.GET("/available", foodHandler.Available)
		food.GET("/my-foods", foodHandler.Mine)
		food.DELETE("/delete/:food_id", foodHandler.Delete)
		food.PUT("/update/:food_id", foodHandler.Update)
	}

	return router
}
