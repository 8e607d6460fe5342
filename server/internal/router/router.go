package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yasai-watch/radar/server/internal/handler"
)

type Config struct {
	PriceHandler *handler.PriceHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerPriceRoutes(api, cfg.PriceHandler)

	return router
}
