package admin

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/api"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/flash"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/middleware"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/render"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/invoice"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/shared/apperr"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/pkg/view"
)

// OrderService is the slice of the order service client the console uses.
// The external service owns all order business rules; this layer only
// forwards and renders.
type OrderService interface {
	GetAllOrders(ctx context.Context, token string) ([]api.Order, error)
	GetOrderByID(ctx context.Context, token string, id int64) (*api.OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, token string, id int64, status api.OrderStatus) error
	CreateOrder(ctx context.Context, token string, in api.CreateOrderRequest) (*api.Order, error)
}

type OrdersHandler struct {
	Orders   OrderService
	Flash    *flash.Codec
	Exporter *invoice.Exporter
}

func NewOrdersHandler(orders OrderService, fl *flash.Codec) *OrdersHandler {
	return &OrdersHandler{Orders: orders, Flash: fl, Exporter: invoice.NewExporter()}
}

func statusStrings() []string {
	out := make([]string, 0, len(api.OrderStatuses))
	for _, s := range api.OrderStatuses {
		out = append(out, string(s))
	}
	return out
}

func sessionToken(c *gin.Context) (string, bool) {
	store, err := middleware.SessionStore(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return "", false
	}
	return store.Token(), true
}

// List fetches every order and renders the management table. A fetch failure
// is terminal for this load cycle: static message, no retry.
func (h *OrdersHandler) List(c *gin.Context) {
	token, ok := sessionToken(c)
	if !ok {
		return
	}

	orders, err := h.Orders.GetAllOrders(c.Request.Context(), token)
	if err != nil {
		middleware.Fail(c, apperr.UnavailableErr("No se pudieron cargar las órdenes.", err))
		return
	}

	items := make([]view.AdminOrderListItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, view.AdminOrderListItem{
			ID:               o.ID,
			UserID:           o.UserID,
			Status:           string(o.Status),
			Total:            view.Money(o.TotalAmount),
			PaymentGatewayID: o.PaymentGatewayID,
			CreatedAt:        o.CreatedAt.Format("02/01/2006"),
		})
	}

	render.Page(c, http.StatusOK, "admin_orders", "Gestión de Órdenes", view.AdminOrdersListPage{
		Items:    items,
		Statuses: statusStrings(),
	})
}

// StatusPost sends a status change to the order service. The rendered list is
// updated only through the service: on failure nothing local changed, so the
// redirect shows the last-known-good list plus an error flash.
func (h *OrdersHandler) StatusPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Orden no encontrada."))
		return
	}

	status := api.OrderStatus(strings.TrimSpace(c.PostForm("status")))
	if !status.Valid() {
		middleware.Fail(c, apperr.InvalidErr("Estado de orden no válido.", nil))
		return
	}

	token, ok := sessionToken(c)
	if !ok {
		return
	}

	if err := h.Orders.UpdateOrderStatus(c.Request.Context(), token, id, status); err != nil {
		render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashError, "Error al actualizar el estado.")
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashSuccess, "Estado actualizado.")
}

// NewGet renders the manual-creation form with one blank item row.
func (h *OrdersHandler) NewGet(c *gin.Context) {
	render.Page(c, http.StatusOK, "admin_order_new", "Crear Orden Manual", view.CreateOrderPage{
		Form:     view.EmptyCreateOrderForm(),
		Statuses: statusStrings(),
	})
}

func readCreateForm(c *gin.Context) view.CreateOrderForm {
	form := view.CreateOrderForm{
		UserID:           strings.TrimSpace(c.PostForm("user_id")),
		Status:           strings.TrimSpace(c.PostForm("status")),
		TotalAmount:      strings.TrimSpace(c.PostForm("total_amount")),
		PaymentGatewayID: strings.TrimSpace(c.PostForm("payment_gateway_id")),
	}

	products := c.PostFormArray("item_product_id")
	quantities := c.PostFormArray("item_quantity")
	prices := c.PostFormArray("item_price")
	for i := range products {
		item := view.CreateOrderFormItem{ProductID: products[i]}
		if i < len(quantities) {
			item.Quantity = quantities[i]
		}
		if i < len(prices) {
			item.PriceAtPurchase = prices[i]
		}
		form.Items = append(form.Items, item)
	}
	if len(form.Items) == 0 {
		form.Items = []view.CreateOrderFormItem{{}}
	}
	return form
}

// convertCreateForm turns the string-typed form into the numeric request the
// order service expects. This is the one place form values become numbers.
func convertCreateForm(form view.CreateOrderForm) (api.CreateOrderRequest, map[string]string) {
	errs := map[string]string{}
	var req api.CreateOrderRequest

	userID, err := strconv.ParseInt(form.UserID, 10, 64)
	if err != nil {
		errs["user_id"] = "El ID de usuario debe ser un número."
	}
	req.UserID = userID

	req.Status = api.OrderStatus(form.Status)
	if !req.Status.Valid() {
		errs["status"] = "Estado no válido."
	}

	total, err := decimal.NewFromString(form.TotalAmount)
	if err != nil {
		errs["total_amount"] = "El monto total debe ser un número."
	}
	req.TotalAmount = total
	req.PaymentGatewayID = form.PaymentGatewayID

	for _, item := range form.Items {
		productID, perr := strconv.ParseInt(item.ProductID, 10, 64)
		quantity, qerr := strconv.Atoi(item.Quantity)
		price, prerr := decimal.NewFromString(item.PriceAtPurchase)
		if perr != nil || qerr != nil || prerr != nil {
			errs["items"] = "Cada producto necesita ID, cantidad y precio numéricos."
			continue
		}
		req.Items = append(req.Items, api.CreateOrderItem{
			ProductID:       productID,
			Quantity:        quantity,
			PriceAtPurchase: price,
		})
	}
	if len(req.Items) == 0 && errs["items"] == "" {
		errs["items"] = "Agregue al menos un producto."
	}

	return req, errs
}

// NewPost handles the creation form. The add_row/remove_row actions only
// reshape the item rows; "create" converts and submits. On any failure the
// form re-renders with what the user typed, like the modal staying open.
func (h *OrdersHandler) NewPost(c *gin.Context) {
	form := readCreateForm(c)

	switch c.PostForm("action") {
	case "add_row":
		form.Items = append(form.Items, view.CreateOrderFormItem{})
		render.Page(c, http.StatusOK, "admin_order_new", "Crear Orden Manual", view.CreateOrderPage{
			Form: form, Statuses: statusStrings(),
		})
		return
	case "remove_row":
		if len(form.Items) > 1 {
			form.Items = form.Items[:len(form.Items)-1]
		}
		render.Page(c, http.StatusOK, "admin_order_new", "Crear Orden Manual", view.CreateOrderPage{
			Form: form, Statuses: statusStrings(),
		})
		return
	}

	req, errs := convertCreateForm(form)
	if len(errs) > 0 {
		render.Page(c, http.StatusBadRequest, "admin_order_new", "Crear Orden Manual", view.CreateOrderPage{
			Form: form, Statuses: statusStrings(), Errors: errs,
		})
		return
	}
	req.IdempotencyKey = uuid.NewString()

	token, ok := sessionToken(c)
	if !ok {
		return
	}

	if _, err := h.Orders.CreateOrder(c.Request.Context(), token, req); err != nil {
		render.Page(c, http.StatusBadGateway, "admin_order_new", "Crear Orden Manual", view.CreateOrderPage{
			Form: form, Statuses: statusStrings(), Error: "Error al crear la orden.",
		})
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/admin/orders", view.FlashSuccess, "Orden creada.")
}
