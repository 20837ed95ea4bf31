package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/api"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/flash"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/middleware"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/sessioncookie"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/session"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/pkg/view"
)

type statusUpdate struct {
	id     int64
	status api.OrderStatus
}

// fakeOrderService mutates its data only when a call succeeds, like the real
// service: a failing update must leave the rendered list unchanged.
type fakeOrderService struct {
	orders    map[int64]*api.OrderDetail
	updateErr error
	createErr error
	updates   []statusUpdate
	created   []api.CreateOrderRequest
}

func (f *fakeOrderService) GetAllOrders(ctx context.Context, token string) ([]api.Order, error) {
	out := make([]api.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o.Order)
	}
	return out, nil
}

func (f *fakeOrderService) GetOrderByID(ctx context.Context, token string, id int64) (*api.OrderDetail, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, errors.New("orden no encontrada")
	}
	return o, nil
}

func (f *fakeOrderService) UpdateOrderStatus(ctx context.Context, token string, id int64, status api.OrderStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	o, ok := f.orders[id]
	if !ok {
		return errors.New("orden no encontrada")
	}
	o.Status = status
	f.updates = append(f.updates, statusUpdate{id: id, status: status})
	return nil
}

func (f *fakeOrderService) CreateOrder(ctx context.Context, token string, in api.CreateOrderRequest) (*api.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &api.Order{ID: 99, UserID: in.UserID, Status: in.Status, TotalAmount: in.TotalAmount}, nil
}

type noAuth struct{}

func (noAuth) Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error) {
	return nil, errors.New("not used")
}
func (noAuth) Register(ctx context.Context, in api.RegisterRequest) error {
	return errors.New("not used")
}

func seedOrders() map[int64]*api.OrderDetail {
	return map[int64]*api.OrderDetail{
		1: {
			Order: api.Order{
				ID: 1, UserID: 7, Status: api.StatusPaid,
				TotalAmount:      decimal.RequireFromString("249.98"),
				PaymentGatewayID: "pi_abc",
				CreatedAt:        time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC),
				Items: []api.OrderItem{
					{ProductID: 11, ProductName: "Teclado mecánico", Quantity: 2, PriceAtPurchase: decimal.RequireFromString("9.99")},
				},
			},
			FirstName: "Lucía", LastName: "Fernández", Email: "lucia@example.com",
		},
	}
}

type testEnv struct {
	router     *gin.Engine
	svc        *fakeOrderService
	sessCodec  *sessioncookie.Codec
	flashCodec *flash.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	secret := []byte("test-secret")
	sessCodec := sessioncookie.New(secret, false)
	flashCodec := flash.NewCodec(secret, "genezis_flash", false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := &fakeOrderService{orders: seedOrders()}
	h := NewOrdersHandler(svc, flashCodec)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.FlashMiddleware(flashCodec))
	r.Use(middleware.SessionMiddleware(middleware.SessionCfg{Codec: sessCodec, Auth: noAuth{}}))

	adm := r.Group("/admin", middleware.RequireAuth(flashCodec), middleware.RequireAdmin(flashCodec))
	adm.GET("/orders", h.List)
	adm.GET("/orders/new", h.NewGet)
	adm.POST("/orders/new", h.NewPost)
	adm.POST("/orders/:id/status", h.StatusPost)
	adm.GET("/orders/:id", h.Detail)
	adm.GET("/orders/:id/pdf", h.ExportPDF)

	return &testEnv{router: r, svc: svc, sessCodec: sessCodec, flashCodec: flashCodec}
}

func (e *testEnv) adminRequest(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	user, err := json.Marshal(session.User{ID: 1, FirstName: "Admin", LastName: "Genezis", Email: "admin@example.com", Role: "admin"})
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "genezis_token", Value: e.sessCodec.Encode("tok-admin")})
	req.AddCookie(&http.Cookie{Name: "genezis_user", Value: e.sessCodec.Encode(string(user))})

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) flashFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	res := w.Result()
	for _, c := range res.Cookies() {
		if c.Name == "genezis_flash" && c.Value != "" {
			f, err := e.flashCodec.Decode(c.Value)
			require.NoError(t, err)
			return f.Message
		}
	}
	return ""
}

func TestListRendersOrders(t *testing.T) {
	env := newTestEnv(t)

	w := env.adminRequest(t, http.MethodGet, "/admin/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "$249.98")
	assert.Contains(t, body, "pi_abc")
	assert.Contains(t, body, "paid")
}

func TestListRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?return_to=")
}

func TestStatusPostAppliesChange(t *testing.T) {
	env := newTestEnv(t)

	w := env.adminRequest(t, http.MethodPost, "/admin/orders/1/status", url.Values{"status": {"shipped"}})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/orders", w.Header().Get("Location"))
	require.Len(t, env.svc.updates, 1)
	assert.Equal(t, statusUpdate{id: 1, status: api.StatusShipped}, env.svc.updates[0])
	assert.Equal(t, api.StatusShipped, env.svc.orders[1].Status)
	assert.Equal(t, "Estado actualizado.", env.flashFrom(t, w))
}

func TestStatusPostFailureLeavesOrderUntouched(t *testing.T) {
	env := newTestEnv(t)
	env.svc.updateErr = errors.New("service down")

	w := env.adminRequest(t, http.MethodPost, "/admin/orders/1/status", url.Values{"status": {"shipped"}})

	// The list is only ever changed through the service, so a failed update
	// redirects back to the last known good state with an error flash.
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/orders", w.Header().Get("Location"))
	assert.Equal(t, api.StatusPaid, env.svc.orders[1].Status)
	assert.Empty(t, env.svc.updates)
	assert.Equal(t, "Error al actualizar el estado.", env.flashFrom(t, w))
}

func TestStatusPostRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.adminRequest(t, http.MethodPost, "/admin/orders/1/status", url.Values{"status": {"returned"}})

	assert.GreaterOrEqual(t, w.Code, 400)
	assert.Empty(t, env.svc.updates)
	assert.Equal(t, api.StatusPaid, env.svc.orders[1].Status)
}

func TestNewPostAddRowKeepsTypedInput(t *testing.T) {
	env := newTestEnv(t)

	w := env.adminRequest(t, http.MethodPost, "/admin/orders/new", url.Values{
		"action":          {"add_row"},
		"user_id":         {"7"},
		"status":          {"paid"},
		"total_amount":    {"not-a-number"},
		"item_product_id": {"11"},
		"item_quantity":   {"2"},
		"item_price":      {"9.99"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// Typed values survive the re-render, including the invalid one.
	assert.Contains(t, body, "not-a-number")
	assert.Contains(t, body, "9.99")
	assert.Empty(t, env.svc.created)
}

func TestNewPostCreatesOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.adminRequest(t, http.MethodPost, "/admin/orders/new", url.Values{
		"action":             {"create"},
		"user_id":            {"7"},
		"status":             {"paid"},
		"total_amount":       {"19.98"},
		"payment_gateway_id": {"manual"},
		"item_product_id":    {"11"},
		"item_quantity":      {"2"},
		"item_price":         {"9.99"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Len(t, env.svc.created, 1)

	got := env.svc.created[0]
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, api.StatusPaid, got.Status)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("19.98")))
	assert.NotEmpty(t, got.IdempotencyKey)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(11), got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "Orden creada.", env.flashFrom(t, w))
}

func TestNewPostServiceFailureReRendersForm(t *testing.T) {
	env := newTestEnv(t)
	env.svc.createErr = errors.New("service down")

	w := env.adminRequest(t, http.MethodPost, "/admin/orders/new", url.Values{
		"action":          {"create"},
		"user_id":         {"7"},
		"status":          {"paid"},
		"total_amount":    {"19.98"},
		"item_product_id": {"11"},
		"item_quantity":   {"2"},
		"item_price":      {"9.99"},
	})

	require.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Error al crear la orden.")
	assert.Contains(t, body, "19.98")
}

func TestConvertCreateFormValidationMessages(t *testing.T) {
	tests := []struct {
		name  string
		form  func() urlFormValues
		field string
	}{
		{"bad user id", func() urlFormValues { f := validFormValues(); f.userID = "siete"; return f }, "user_id"},
		{"bad status", func() urlFormValues { f := validFormValues(); f.status = "returned"; return f }, "status"},
		{"bad total", func() urlFormValues { f := validFormValues(); f.total = "mucho"; return f }, "total_amount"},
		{"bad item", func() urlFormValues { f := validFormValues(); f.itemQty = "dos"; return f }, "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.form()
			_, errs := convertCreateForm(f.toForm())
			assert.Contains(t, errs, tt.field)
		})
	}
}

type urlFormValues struct {
	userID, status, total string
	itemID, itemQty       string
	itemPrice             string
}

func validFormValues() urlFormValues {
	return urlFormValues{userID: "7", status: "paid", total: "19.98", itemID: "11", itemQty: "2", itemPrice: "9.99"}
}

func (f urlFormValues) toForm() view.CreateOrderForm {
	return view.CreateOrderForm{
		UserID:      f.userID,
		Status:      f.status,
		TotalAmount: f.total,
		Items: []view.CreateOrderFormItem{
			{ProductID: f.itemID, Quantity: f.itemQty, PriceAtPurchase: f.itemPrice},
		},
	}
}
