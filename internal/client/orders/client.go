// Package orders implements the REST client for the external order API.
// The storefront stores do not depend on it; it is driven directly by
// the CLI.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mlapshin/storefront/internal/common"
)

// Order mirrors the order resource returned by the API.
type Order struct {
	ID              int64       `json:"id"`
	OrderNumber     string      `json:"order_number"`
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
	Items           []OrderItem `json:"items"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID       int64        `json:"id"`
	Product  OrderProduct `json:"product"`
	Quantity int          `json:"quantity"`
	Price    float64      `json:"price"`
}

// OrderProduct is the product summary embedded in an order line.
type OrderProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CreateOrderRequest is the payload for creating an order.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
}

// Client talks to the order API over HTTP/JSON. Transient failures
// (network errors, 5xx) are retried with exponential backoff.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient constructs a client for the given base URL, e.g.
// "http://localhost:8000/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetOrders lists the current user's orders. The API may return either a
// paginated envelope with a results field or a bare array.
func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/orders/", nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Results []Order `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}

	var orders []Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode order list: %w", err)
	}
	return orders, nil
}

// GetOrder fetches a single order by id. A 404 maps to
// common.ErrOrderNotFound.
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/", id), nil)
	if err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &order, nil
}

// CreateOrder places a new order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/orders/create/", payload)
	if err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode created order: %w", err)
	}
	return &order, nil
}

// do performs one API call with retries. 5xx responses and transport
// errors are retried; 4xx responses fail immediately.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body []byte

	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		switch {
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("order api: %s", resp.Status))
		case resp.StatusCode == http.StatusNotFound:
			return common.ErrOrderNotFound
		case resp.StatusCode >= 400:
			return fmt.Errorf("order api: %s: %s", resp.Status, string(data))
		}

		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
