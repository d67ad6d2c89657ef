package delivery

import (
	"time"

	"github.com/Shoxzn12/level-up-pc/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	Products    *ProductHandler
	Chat        *ChatHandler
	Checkout    *CheckoutHandler
	Pages       *PageHandler
	AdminToken  string
	CORSOrigins []string
}

func NewRouter(deps RouterDeps, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	deps.Pages.RegisterRoutes(router)

	api := router.Group("/api")
	deps.Products.RegisterRoutes(api, middleware.AdminGate(deps.AdminToken, logger))
	deps.Chat.RegisterRoutes(api)
	deps.Checkout.RegisterRoutes(api)

	logger.Info("API Routes registered.")
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
