package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status the order service accepts, in the order
// the console presents them.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is the order service's list shape. Monetary amounts arrive either as
// JSON numbers or as strings depending on the service's serializer, which
// decimal.Decimal accepts both of.
type Order struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"userid"`
	Status           OrderStatus     `json:"status"`
	TotalAmount      decimal.Decimal `json:"totalamount"`
	PaymentGatewayID string          `json:"paymentgatewayid"`
	CreatedAt        time.Time       `json:"createdat"`
	Items            []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ProductID       int64           `json:"productid"`
	ProductName     string          `json:"productName"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceatpurchase"`
}

// OrderDetail extends Order with the customer fields the detail endpoint
// joins in. Items may be nil while the service is still assembling them.
type OrderDetail struct {
	Order
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

type CreateOrderRequest struct {
	UserID           int64             `json:"userid"`
	Status           OrderStatus       `json:"status"`
	TotalAmount      decimal.Decimal   `json:"totalamount"`
	PaymentGatewayID string            `json:"paymentgatewayid"`
	IdempotencyKey   string            `json:"idempotency_key"`
	Items            []CreateOrderItem `json:"items"`
}

type CreateOrderItem struct {
	ProductID       int64           `json:"productid"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceatpurchase"`
}

type updateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// OrdersClient talks to the external order service. Every call carries the
// session's bearer token; the service owns all order business rules.
type OrdersClient struct {
	Client
}

func NewOrdersClient(addr string, hc *http.Client) *OrdersClient {
	return &OrdersClient{Client: newClient(addr, hc)}
}

func (c *OrdersClient) authed(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		r, merr := jsonBody(body)
		if merr != nil {
			return nil, merr
		}
		req, err = http.NewRequestWithContext(ctx, method, c.url(path), r)
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.url(path), nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (c *OrdersClient) GetAllOrders(ctx context.Context, token string) ([]Order, error) {
	req, err := c.authed(ctx, http.MethodGet, "/api/orders", token, nil)
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := c.do(req, &orders); err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	return orders, nil
}

func (c *OrdersClient) GetOrderByID(ctx context.Context, token string, id int64) (*OrderDetail, error) {
	req, err := c.authed(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), token, nil)
	if err != nil {
		return nil, err
	}
	var detail OrderDetail
	if err := c.do(req, &detail); err != nil {
		return nil, fmt.Errorf("orders: get %d: %w", id, err)
	}
	return &detail, nil
}

func (c *OrdersClient) UpdateOrderStatus(ctx context.Context, token string, id int64, status OrderStatus) error {
	req, err := c.authed(ctx, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", id), token, updateStatusRequest{Status: status})
	if err != nil {
		return err
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("orders: update status %d: %w", id, err)
	}
	return nil
}

func (c *OrdersClient) CreateOrder(ctx context.Context, token string, in CreateOrderRequest) (*Order, error) {
	req, err := c.authed(ctx, http.MethodPost, "/api/orders", token, in)
	if err != nil {
		return nil, err
	}
	var created Order
	if err := c.do(req, &created); err != nil {
		return nil, fmt.Errorf("orders: create: %w", err)
	}
	return &created, nil
}
