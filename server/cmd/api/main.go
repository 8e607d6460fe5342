package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/yasai-watch/radar/internal/storage"
	"github.com/yasai-watch/radar/server/config"
	"github.com/yasai-watch/radar/server/internal/handler"
	"github.com/yasai-watch/radar/server/internal/repository"
	"github.com/yasai-watch/radar/server/internal/router"
	"github.com/yasai-watch/radar/server/internal/service"
)

func main() {
	cfg := config.Load()

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	priceRepo := repository.NewSQLitePriceRepository(db)
	priceService := service.NewPriceService(priceRepo)
	priceHandler := handler.NewPriceHandler(priceService)

	routerConfig := &router.Config{
		PriceHandler: priceHandler,
	}

	router := router.NewRouter(routerConfig)

	router.Run(fmt.Sprintf(":%s", cfg.ServerPort))
}
