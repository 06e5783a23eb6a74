package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wsantoso/gold-tracker/internal/database"
	"github.com/wsantoso/gold-tracker/internal/models"
	"github.com/wsantoso/gold-tracker/internal/services"
)

type PortfolioHandler struct {
	priceService *services.PriceService
}

func NewPortfolioHandler(priceService *services.PriceService) *PortfolioHandler {
	return &PortfolioHandler{
		priceService: priceService,
	}
}

// GetPortfolio returns the portfolio summary valued at the current market
// rate. Without a usable price snapshot no valuation is possible.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	db := database.GetDB()

	var purchases []models.Purchase
	if err := db.Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.priceService.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch current prices"})
		return
	}

	c.JSON(http.StatusOK, services.Summarize(purchases, snap.Data))
}
