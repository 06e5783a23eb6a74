package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsantoso/gold-tracker/internal/models"
	"github.com/wsantoso/gold-tracker/internal/services"
)

const pricePageFixture = `<!DOCTYPE html>
<html><body>
<div id="GALERI 24">
  <div class="grid divide-neutral-200 border-neutral-200">
    <div class="grid grid-cols-5 divide-x">
      <div class="p-3 col-span-1 whitespace-nowrap w-fit">0.5</div>
      <div class="p-3 col-span-2 whitespace-nowrap w-fit">Rp570.000</div>
      <div class="p-3 col-span-2 whitespace-nowrap w-fit">Rp600.000</div>
    </div>
    <div class="grid grid-cols-5 divide-x">
      <div class="p-3 col-span-1 whitespace-nowrap w-fit">1</div>
      <div class="p-3 col-span-2 whitespace-nowrap w-fit">Rp1.045.000</div>
      <div class="p-3 col-span-2 whitespace-nowrap w-fit">Rp1.100.000</div>
    </div>
  </div>
</div>
</body></html>`

func setupFullRouter(t *testing.T, priceHandler http.HandlerFunc) *gin.Engine {
	t.Helper()

	upstream := httptest.NewServer(priceHandler)
	t.Cleanup(upstream.Close)

	r := setupPurchaseRouter(t)
	priceService := services.NewPriceService(upstream.URL)
	r.GET("/api/prices", NewPriceHandler(priceService).GetPrices)
	r.GET("/api/portfolio", NewPortfolioHandler(priceService).GetPortfolio)
	return r
}

func servePriceFixture(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(pricePageFixture))
}

func TestGetPrices(t *testing.T) {
	r := setupFullRouter(t, servePriceFixture)

	w := doJSON(r, http.MethodGet, "/api/prices", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap models.PriceSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Empty(t, snap.Error)
	require.Len(t, snap.Data, 2)
	assert.Equal(t, "0.5", snap.Data[0].Label)
	assert.Equal(t, 600000.0, snap.Data[0].Buy)
	assert.NotEmpty(t, snap.LastUpdate)
}

func TestGetPricesReportsErrorInPayload(t *testing.T) {
	r := setupFullRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := doJSON(r, http.MethodGet, "/api/prices", nil)

	// Scrape failures keep the success status; the error travels in the
	// payload and clients check for it explicitly.
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestGetPortfolio(t *testing.T) {
	r := setupFullRouter(t, servePriceFixture)

	w := doJSON(r, http.MethodPost, "/api/purchases", map[string]any{
		"weight":         5.0,
		"purchase_price": 1000000.0,
		"total_paid":     5000000.0,
		"purchase_date":  "2024-03-05",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/portfolio", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.PortfolioSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 5.0, summary.TotalWeight)
	assert.Equal(t, 5000000.0, summary.TotalInvested)
	// mean buy 850,000 over the 0.5g denomination = 1,700,000 per gram
	assert.InDelta(t, 8500000, summary.CurrentValue, 0.01)
	assert.InDelta(t, 3500000, summary.ProfitLoss, 0.01)
	assert.InDelta(t, 70, summary.ProfitLossPercentage, 0.01)
	assert.Equal(t, 1, summary.PurchaseCount)
}

func TestGetPortfolioWithoutPrices(t *testing.T) {
	r := setupFullRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	w := doJSON(r, http.MethodGet, "/api/portfolio", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Could not fetch current prices", resp["error"])
}
