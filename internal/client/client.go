// Package client implements the portfolio client: typed API operations
// against the tracker backend, session state, and the controller driving a
// presentation surface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/wsantoso/gold-tracker/internal/models"
)

// TransportError is a network or decode failure: the backend was never
// reached or its response could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BackendError is an error the backend itself reported, either as a non-2xx
// response or as an explicit error field in an otherwise successful payload.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return e.Message
}

// Client issues requests against the tracker REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client for the given base URL. A nil httpClient selects
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchPrices retrieves the current price snapshot. An error field in the
// payload is reported as a BackendError even on a successful response.
func (c *Client) FetchPrices(ctx context.Context) (*models.PriceSnapshot, error) {
	var snap models.PriceSnapshot
	resp, err := c.do(ctx, http.MethodGet, "/api/prices", nil, &snap)
	if err != nil {
		return nil, err
	}
	if snap.Error != "" {
		return nil, &BackendError{Status: resp.StatusCode, Message: snap.Error}
	}
	return &snap, nil
}

// FetchPurchases retrieves the full purchase collection in backend order.
func (c *Client) FetchPurchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if _, err := c.do(ctx, http.MethodGet, "/api/purchases", nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// FetchPortfolio retrieves the server-computed portfolio summary.
func (c *Client) FetchPortfolio(ctx context.Context) (*models.PortfolioSummary, error) {
	var payload struct {
		models.PortfolioSummary
		Error string `json:"error"`
	}
	resp, err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, &BackendError{Status: resp.StatusCode, Message: payload.Error}
	}
	return &payload.PortfolioSummary, nil
}

// CreatePurchase submits a new purchase record.
func (c *Client) CreatePurchase(ctx context.Context, req models.CreatePurchaseRequest) (*models.Purchase, error) {
	var created models.Purchase
	if _, err := c.do(ctx, http.MethodPost, "/api/purchases", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePurchase replaces the fields of an existing record.
func (c *Client) UpdatePurchase(ctx context.Context, id uint, req models.UpdatePurchaseRequest) (*models.Purchase, error) {
	var updated models.Purchase
	path := fmt.Sprintf("/api/purchases/%d", id)
	if _, err := c.do(ctx, http.MethodPut, path, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePurchase removes a record.
func (c *Client) DeletePurchase(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/purchases/%d", id)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses become BackendErrors carrying the payload's error text;
// everything below that is a TransportError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*http.Response, error) {
	op := fmt.Sprintf("%s %s", method, path)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return resp, &BackendError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, &TransportError{Op: op, Err: err}
		}
	}
	return resp, nil
}
