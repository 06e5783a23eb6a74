package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wsantoso/gold-tracker/internal/database"
	"github.com/wsantoso/gold-tracker/internal/metrics"
	"github.com/wsantoso/gold-tracker/internal/models"
)

type PurchaseHandler struct{}

func NewPurchaseHandler() *PurchaseHandler {
	return &PurchaseHandler{}
}

// ListPurchases returns all purchases, newest purchase date first.
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	db := database.GetDB()

	purchases := []models.Purchase{}
	if err := db.Order("purchase_date DESC").Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, purchases)
}

func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if field := req.MissingField(); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Missing required field: %s", field)})
		return
	}

	purchaseDate, err := parsePurchaseDate(*req.PurchaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase := models.Purchase{
		Weight:        *req.Weight,
		PurchasePrice: *req.PurchasePrice,
		TotalPaid:     *req.TotalPaid,
		PurchaseDate:  purchaseDate,
		Notes:         req.Notes,
	}

	db := database.GetDB()
	if err := db.Create(&purchase).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.PurchaseWritesTotal.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	db := database.GetDB()

	var purchase models.Purchase
	if err := db.First(&purchase, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}

	var req models.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Weight != nil {
		purchase.Weight = *req.Weight
	}
	if req.PurchasePrice != nil {
		purchase.PurchasePrice = *req.PurchasePrice
	}
	if req.TotalPaid != nil {
		purchase.TotalPaid = *req.TotalPaid
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := parsePurchaseDate(*req.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		purchase.PurchaseDate = purchaseDate
	}
	if req.Notes != nil {
		purchase.Notes = *req.Notes
	}

	if err := db.Save(&purchase).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.PurchaseWritesTotal.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, purchase)
}

func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	db := database.GetDB()

	var purchase models.Purchase
	if err := db.First(&purchase, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}

	if err := db.Delete(&purchase).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.PurchaseWritesTotal.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted successfully"})
}

// parsePurchaseDate accepts RFC3339 timestamps as well as the bare
// "YYYY-MM-DD" value a date input submits.
func parsePurchaseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid purchase_date: %q", s)
}
