package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wsantoso/gold-tracker/internal/api/handlers"
	"github.com/wsantoso/gold-tracker/internal/metrics"
	"github.com/wsantoso/gold-tracker/internal/services"
)

func SetupRouter(priceService *services.PriceService) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	router.Use(requestID(), recordMetrics())

	// Initialize handlers
	priceHandler := handlers.NewPriceHandler(priceService)
	purchaseHandler := handlers.NewPurchaseHandler()
	portfolioHandler := handlers.NewPortfolioHandler(priceService)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/prices", priceHandler.GetPrices)

		purchases := api.Group("/purchases")
		{
			purchases.GET("", purchaseHandler.ListPurchases)
			purchases.POST("", purchaseHandler.CreatePurchase)
			purchases.PUT("/:id", purchaseHandler.UpdatePurchase)
			purchases.DELETE("/:id", purchaseHandler.DeletePurchase)
		}

		api.GET("/portfolio", portfolioHandler.GetPortfolio)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// requestID tags every request with an X-Request-ID, generating one when the
// caller did not supply it.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func recordMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
