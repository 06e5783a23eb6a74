package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wsantoso/gold-tracker/internal/services"
)

type PriceHandler struct {
	priceService *services.PriceService
}

func NewPriceHandler(priceService *services.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// GetPrices returns the current gold price snapshot. Scrape failures are
// reported in-payload with a success status; clients check the error field.
func (h *PriceHandler) GetPrices(c *gin.Context) {
	snap, err := h.priceService.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snap)
}
