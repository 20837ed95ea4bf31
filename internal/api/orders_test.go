package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestGetAllOrdersDecodesServicePayload(t *testing.T) {
	var gotAuth string
	addr := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		// One amount as a JSON number, one as a string: both serializers
		// exist in the wild and both must decode.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"userid":7,"status":"paid","totalamount":249.98,"paymentgatewayid":"pi_abc","createdat":"2025-03-12T14:30:00Z"},
			{"id":2,"userid":9,"status":"pending","totalamount":"59.97","createdat":"2025-03-14T09:00:00Z"}
		]`))
	})

	c := NewOrdersClient(addr, nil)
	orders, err := c.GetAllOrders(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, int64(1), orders[0].ID)
	assert.Equal(t, StatusPaid, orders[0].Status)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.RequireFromString("249.98")))
	assert.True(t, orders[1].TotalAmount.Equal(decimal.RequireFromString("59.97")))
	assert.Empty(t, orders[1].PaymentGatewayID)
}

func TestGetOrderByIDJoinsCustomerFields(t *testing.T) {
	addr := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":42,"userid":7,"status":"shipped","totalamount":"19.98",
			"createdat":"2025-03-12T14:30:00Z",
			"firstname":"Lucía","lastname":"Fernández","email":"lucia@example.com",
			"items":[{"productid":11,"productName":"Teclado","quantity":2,"priceatpurchase":"9.99"}]
		}`))
	})

	c := NewOrdersClient(addr, nil)
	detail, err := c.GetOrderByID(context.Background(), "tok", 42)
	require.NoError(t, err)

	assert.Equal(t, "Lucía", detail.FirstName)
	assert.Equal(t, "lucia@example.com", detail.Email)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Teclado", detail.Items[0].ProductName)
	assert.Equal(t, 2, detail.Items[0].Quantity)
}

func TestUpdateOrderStatusSendsPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	addr := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	c := NewOrdersClient(addr, nil)
	err := c.UpdateOrderStatus(context.Background(), "tok", 5, StatusShipped)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/orders/5/status", gotPath)
	assert.Equal(t, map[string]string{"status": "shipped"}, gotBody)
}

func TestCreateOrderCarriesIdempotencyKey(t *testing.T) {
	var gotBody map[string]any
	addr := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"userid":7,"status":"paid","totalamount":"10.00"}`))
	})

	c := NewOrdersClient(addr, nil)
	created, err := c.CreateOrder(context.Background(), "tok", CreateOrderRequest{
		UserID:         7,
		Status:         StatusPaid,
		TotalAmount:    decimal.RequireFromString("10.00"),
		IdempotencyKey: "key-abc",
		Items: []CreateOrderItem{
			{ProductID: 1, Quantity: 1, PriceAtPurchase: decimal.RequireFromString("10.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "key-abc", gotBody["idempotency_key"])
}

func TestServiceErrorMessageSurfaces(t *testing.T) {
	addr := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"estado no permitido"}`))
	})

	c := NewOrdersClient(addr, nil)
	err := c.UpdateOrderStatus(context.Background(), "tok", 5, StatusCancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estado no permitido")
}

func TestStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("returned").Valid())
	assert.False(t, OrderStatus("").Valid())
}
