package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yasai-watch/radar/server/internal/handler"
)

func registerPriceRoutes(router *gin.RouterGroup, priceHandler *handler.PriceHandler) {
	vegetables := router.Group("/vegetables")
	{
		vegetables.GET("", priceHandler.Query)
	}
}
