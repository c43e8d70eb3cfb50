package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup-api/internal/config"
	"github.com/namefreezers/weather-lookup-api/internal/handlers"
	"github.com/namefreezers/weather-lookup-api/internal/services"
)

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(cfg *config.Config, svc services.WeatherService, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger), Recovery(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		// "*" is taken literally by browsers on credentialed requests, so the
		// headers a JSON client sends are listed as well.
		AllowHeaders:     []string{"*", "Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/weather", handlers.CreateWeatherHandler(svc, logger))
	router.GET("/weather/:id", handlers.GetWeatherHandler(svc, logger))

	return router
}
