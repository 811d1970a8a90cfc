package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "store-1", user)
		assert.Equal(t, "sk_test", pass)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jo@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Customer{
			ID:        "cust_123",
			Email:     "jo@example.com",
			FirstName: "Jo",
			LastName:  "Park",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "store-1", "sk_test")
	customer, err := client.CreateCustomer(context.Background(), "jo@example.com", "Jo", "Park")
	require.NoError(t, err)
	assert.Equal(t, "cust_123", customer.ID)
}

func TestOrderLifecycle(t *testing.T) {
	var confirmed bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/orders":
			_ = json.NewEncoder(w).Encode(Order{ID: "ord_1", CustomerID: "cust_123", Status: "draft"})
		case r.Method == http.MethodPut && r.URL.Path == "/orders/ord_1":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			order := Order{ID: "ord_1", CustomerID: "cust_123", Status: "draft"}
			if items, ok := body["items"]; ok {
				raw, _ := json.Marshal(items)
				require.NoError(t, json.Unmarshal(raw, &order.Items))
				order.GrandTotal = decimal.NewFromInt(25)
			}
			if status, ok := body["status"].(string); ok && status == "complete" {
				confirmed = true
				order.Status = "complete"
			}
			_ = json.NewEncoder(w).Encode(order)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "store-1", "sk_test")
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, "cust_123")
	require.NoError(t, err)
	assert.Equal(t, "ord_1", order.ID)

	order, err = client.AddLineItem(ctx, order.ID, LineItem{
		ProductID: "space-1",
		Quantity:  2,
		Price:     decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.True(t, order.GrandTotal.Equal(decimal.NewFromInt(25)))

	order, err = client.ConfirmOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "complete", order.Status)
	assert.True(t, confirmed)
}

func TestAPIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid secret key"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "store-1", "bad-key")
	_, err := client.CreateOrder(context.Background(), "cust_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid secret key")
	assert.Contains(t, err.Error(), "401")
}
