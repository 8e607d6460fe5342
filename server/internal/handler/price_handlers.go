package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yasai-watch/radar/server/internal/service"
)

// Recognized values of the path query parameter.
const (
	pathLatestPrices = "vegetables-list-with-prices"
	pathHistory      = "vegetables-history"
	pathSnapshot     = "vegetables"
)

type PriceHandler struct {
	priceService *service.PriceService
}

func NewPriceHandler(service *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: service,
	}
}

// Query serves the single read endpoint, dispatching on the path query
// parameter. The history view is the default.
func (h *PriceHandler) Query(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		path = pathHistory
	}

	switch path {
	case pathLatestPrices:
		items, latest, err := h.priceService.LatestPrices(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"items": items, "prices": latest},
		})
	case pathHistory:
		history, dates, err := h.priceService.History(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   history,
			"dates":  dates,
		})
	case pathSnapshot:
		snapshot, err := h.priceService.LatestSnapshot(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   snapshot,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "unknown path: " + path,
		})
	}
}

func (h *PriceHandler) fail(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": err.Error(),
	})
}
