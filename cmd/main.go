package main

import (
	"os"

	"github.com/Shoxzn12/level-up-pc/config"
	"github.com/Shoxzn12/level-up-pc/internal/clients"
	"github.com/Shoxzn12/level-up-pc/internal/delivery"
	"github.com/Shoxzn12/level-up-pc/internal/repository"
	"github.com/Shoxzn12/level-up-pc/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	//  Configuration and Logging Setup
	cfg := config.LoadConfig(logger)
	config.ApplyLogLevel(logger, cfg)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Level-Up PC API...")

	// --- Data file ---
	productRepo := repository.NewFileProductRepository(cfg.DataFile, cfg.SeedFiles, logger)
	if err := productRepo.Ensure(); err != nil {
		logger.Errorf("Data file could not be prepared, catalog will start empty: %v", err)
	}

	// --- Dependency Injection ---
	chatClient := clients.NewOpenAIHTTPClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.ProviderTimeout, logger)
	paymentClient := clients.NewMercadoPagoHTTPClient(cfg.MPAccessToken, cfg.MPBaseURL, cfg.ProviderTimeout, logger)
	logger.Info("Provider clients initialized.")

	productUseCase := usecase.NewProductUseCase(productRepo, logger)
	chatUseCase := usecase.NewChatUseCase(chatClient, cfg.OpenAIKey != "", logger)
	checkoutUseCase := usecase.NewCheckoutUseCase(usecase.CheckoutConfig{
		AccessToken:   cfg.MPAccessToken,
		Production:    cfg.IsProduction(),
		PublicBaseURL: cfg.PublicBaseURL,
		CurrencyID:    cfg.CurrencyID,
	}, paymentClient, logger)
	logger.Info("Use cases initialized.")

	router := delivery.NewRouter(delivery.RouterDeps{
		Products:    delivery.NewProductHandler(productUseCase, logger),
		Chat:        delivery.NewChatHandler(chatUseCase, logger),
		Checkout:    delivery.NewCheckoutHandler(checkoutUseCase, logger),
		Pages:       delivery.NewPageHandler(cfg.StaticDir, logger),
		AdminToken:  cfg.AdminToken,
		CORSOrigins: cfg.CORSOrigins,
	}, logger)

	//  Start Server
	addr := cfg.ListenAddr()
	logger.Infof("Starting server on port %s", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
