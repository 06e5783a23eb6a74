package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsantoso/gold-tracker/internal/models"
)

func TestFetchPricesBackendErrorInPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"scrape failed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.FetchPrices(context.Background())

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "scrape failed", backendErr.Message)
	assert.Equal(t, http.StatusOK, backendErr.Status, "the error travelled in a successful response")
}

func TestFetchPricesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"last_update":"2026-01-12T10:00:00Z","data":{"1":{"sell":1045000,"buy":1100000},"0.5":{"sell":570000,"buy":600000}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	snap, err := c.FetchPrices(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Data, 2)
	assert.Equal(t, "0.5", snap.Data[0].Label, "denominations sort by weight")
	assert.Equal(t, 600000.0, snap.Data[0].Buy)
}

func TestCreatePurchaseBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Missing required field: weight"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.CreatePurchase(context.Background(), models.CreatePurchaseRequest{})

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusBadRequest, backendErr.Status)
	assert.Equal(t, "Missing required field: weight", backendErr.Message)
}

func TestTransportErrorWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, nil)
	_, err := c.FetchPurchases(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)

	var backendErr *BackendError
	assert.False(t, errors.As(err, &backendErr))
}

func TestDeletePurchase(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"message":"Purchase deleted successfully"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	require.NoError(t, c.DeletePurchase(context.Background(), 7))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/purchases/7", gotPath)
}

func TestUpdatePurchaseTargetsID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":3,"weight":5}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	weight := 5.0
	updated, err := c.UpdatePurchase(context.Background(), 3, models.UpdatePurchaseRequest{Weight: &weight})

	require.NoError(t, err)
	assert.Equal(t, "/api/purchases/3", gotPath)
	assert.Equal(t, uint(3), updated.ID)
}
