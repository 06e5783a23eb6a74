package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsantoso/gold-tracker/internal/database"
	"github.com/wsantoso/gold-tracker/internal/models"
)

func setupPurchaseRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, database.Initialize(dsn))

	h := NewPurchaseHandler()
	r := gin.New()
	r.GET("/api/purchases", h.ListPurchases)
	r.POST("/api/purchases", h.CreatePurchase)
	r.PUT("/api/purchases/:id", h.UpdatePurchase)
	r.DELETE("/api/purchases/:id", h.DeletePurchase)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePurchaseMissingField(t *testing.T) {
	r := setupPurchaseRouter(t)

	w := doJSON(r, http.MethodPost, "/api/purchases", map[string]any{
		"weight": 5.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing required field: purchase_price", resp["error"])
}

func TestCreatePurchase(t *testing.T) {
	r := setupPurchaseRouter(t)

	w := doJSON(r, http.MethodPost, "/api/purchases", map[string]any{
		"weight":         5.0,
		"purchase_price": 1000000.0,
		"total_paid":     5000000.0,
		"purchase_date":  "2024-03-05",
		"notes":          "first bar",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, 5.0, created.Weight)
	assert.Equal(t, "first bar", created.Notes)
	assert.Equal(t, 2024, created.PurchaseDate.Year())
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreatePurchaseBadDate(t *testing.T) {
	r := setupPurchaseRouter(t)

	w := doJSON(r, http.MethodPost, "/api/purchases", map[string]any{
		"weight":         1.0,
		"purchase_price": 1.0,
		"total_paid":     1.0,
		"purchase_date":  "bukan tanggal",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPurchasesNewestDateFirst(t *testing.T) {
	r := setupPurchaseRouter(t)

	for _, date := range []string{"2024-01-01", "2024-06-01", "2024-03-01"} {
		w := doJSON(r, http.MethodPost, "/api/purchases", map[string]any{
			"weight":         1.0,
			"purchase_price": 1000000.0,
			"total_paid":     1000000.0,
			"purchase_date":  date,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/purchases", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, 6, int(list[0].PurchaseDate.Month()))
	assert.Equal(t, 3, int(list[1].PurchaseDate.Month()))
	assert.Equal(t, 1, int(list[2].PurchaseDate.Month()))
}

func TestUpdatePurchaseNotFound(t *testing.T) {
	r := setupPurchaseRouter(t)

	w := doJSON(r, http.MethodPut, "/api/purchases/42", map[string]any{"notes": "x"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Purchase not found", resp["error"])
}

func TestUpdatePurchasePartial(t *testing.T) {
	r := setupPurchaseRouter(t)

	w := doJSON(r, http.MethodPost, "/api/purchases", map[string]any{
		"weight":         5.0,
		"purchase_price": 1000000.0,
		"total_paid":     5000000.0,
		"purchase_date":  "2024-03-05",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/purchases/%d", created.ID), map[string]any{
		"notes": "updated note",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "updated note", updated.Notes)
	assert.Equal(t, 5.0, updated.Weight, "untouched fields keep their values")
	assert.Equal(t, created.ID, updated.ID)
}

func TestDeletePurchase(t *testing.T) {
	r := setupPurchaseRouter(t)

	w := doJSON(r, http.MethodPost, "/api/purchases", map[string]any{
		"weight":         1.0,
		"purchase_price": 1000000.0,
		"total_paid":     1000000.0,
		"purchase_date":  "2024-03-05",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/purchases/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Purchase deleted successfully", resp["message"])

	w = doJSON(r, http.MethodGet, "/api/purchases", nil)
	var list []models.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestDeletePurchaseNotFound(t *testing.T) {
	r := setupPurchaseRouter(t)

	w := doJSON(r, http.MethodDelete, "/api/purchases/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
