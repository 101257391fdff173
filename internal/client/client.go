package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"table-orders/internal/models"
)

// Client is a typed HTTP client for the table-order API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Menu fetches the active menu items.
func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateOrder submits an order creation request.
func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	var resp models.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// KitchenOrders fetches in-flight orders. A non-empty status restricts the
// result server-side to that exact status.
func (c *Client) KitchenOrders(ctx context.Context, status string) ([]models.Order, error) {
	path := "/api/kitchen/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus issues a status transition command for an order.
func (c *Client) UpdateStatus(ctx context.Context, orderID int, status models.OrderStatus) (*models.UpdateStatusResponse, error) {
	path := fmt.Sprintf("/api/orders/%d/status", orderID)
	req := models.UpdateStatusRequest{Status: string(status)}

	var resp models.UpdateStatusResponse
	if err := c.do(ctx, http.MethodPatch, path, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs one JSON request/response round trip. Transport failures
// become NetworkError; non-2xx responses and unparsable success bodies
// become DomainError.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out interface{}) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainErrorFromResponse(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &DomainError{StatusCode: resp.StatusCode, Body: string(raw)}
		}
	}

	return nil
}

// domainErrorFromResponse extracts the server's detail message when the
// error body is JSON and carries one; otherwise the raw body is surfaced.
func domainErrorFromResponse(statusCode int, raw []byte) *DomainError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return &DomainError{StatusCode: statusCode, Detail: payload.Detail, Body: string(raw)}
	}
	return &DomainError{StatusCode: statusCode, Body: string(raw)}
}
