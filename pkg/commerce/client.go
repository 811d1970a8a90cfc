// Package commerce is a client for the hosted commerce platform that holds
// Parkpal's customer and order records. Bookings are mirrored as orders so
// billing and receipts stay in one place.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkpal/parkpal-backend/logger"
)

// ClientInterface defines the commerce operations services depend on.
type ClientInterface interface {
	CreateCustomer(ctx context.Context, email, firstName, lastName string) (*Customer, error)
	CreateOrder(ctx context.Context, customerID string) (*Order, error)
	AddLineItem(ctx context.Context, orderID string, item LineItem) (*Order, error)
	ConfirmOrder(ctx context.Context, orderID string) (*Order, error)
	CancelOrder(ctx context.Context, orderID string) (*Order, error)
}

type Client struct {
	baseURL    string
	storeID    string
	secretKey  string
	httpClient *http.Client
}

var _ ClientInterface = (*Client)(nil)

// Customer is the platform's customer record linked from types.User.
type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Order mirrors a booking on the commerce platform.
type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"account_id"`
	Status     string          `json:"status"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Items      []LineItem      `json:"items"`
}

// LineItem is one booked space within an order.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type apiError struct {
	Message string `json:"message"`
}

func NewClient(baseURL, storeID, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		storeID:   storeID,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) CreateCustomer(ctx context.Context, email, firstName, lastName string) (*Customer, error) {
	body := map[string]string{
		"email":      email,
		"first_name": firstName,
		"last_name":  lastName,
	}
	var customer Customer
	if err := c.do(ctx, http.MethodPost, "/accounts", body, &customer); err != nil {
		return nil, err
	}
	logger.GetLogger().Debugw("Created commerce customer", "customerID", customer.ID)
	return &customer, nil
}

func (c *Client) CreateOrder(ctx context.Context, customerID string) (*Order, error) {
	body := map[string]any{
		"account_id": customerID,
		"draft":      true,
	}
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) AddLineItem(ctx context.Context, orderID string, item LineItem) (*Order, error) {
	body := map[string]any{
		"items": []LineItem{item},
	}
	var order Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+orderID, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ConfirmOrder(ctx context.Context, orderID string) (*Order, error) {
	body := map[string]any{"draft": false, "status": "complete"}
	var order Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+orderID, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	body := map[string]any{"canceled": true}
	var order Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+orderID, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	log := logger.GetLogger()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.storeID, c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	log.Debugw("Commerce API request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("commerce API returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("commerce API returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
