package admin

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/api"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/middleware"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/render"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/invoice"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/shared/apperr"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/pkg/view"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// formatDateEs renders a timestamp the way the storefront does:
// "12 de marzo de 2025, 14:30".
func formatDateEs(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%d de %s de %d, %02d:%02d",
		t.Day(), spanishMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// buildInvoice maps an order detail to the printable invoice view. Row
// subtotals are computed here (quantity × unit price); the footer total is
// the order's own totalAmount, shown verbatim even if the rows disagree.
func buildInvoice(detail *api.OrderDetail) view.InvoiceDetail {
	paymentID := detail.PaymentGatewayID
	if paymentID == "" {
		paymentID = "N/A"
	}

	inv := view.InvoiceDetail{
		OrderID:          detail.ID,
		Date:             formatDateEs(detail.CreatedAt),
		CustomerName:     detail.FirstName + " " + detail.LastName,
		CustomerEmail:    detail.Email,
		Status:           string(detail.Status),
		PaymentGatewayID: paymentID,
		Total:            view.Money(detail.TotalAmount),
		Loading:          detail.Items == nil,
	}

	for _, item := range detail.Items {
		inv.Rows = append(inv.Rows, view.InvoiceRow{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   view.Money(item.PriceAtPurchase),
			Subtotal:    view.Money(view.LineSubtotal(item.Quantity, item.PriceAtPurchase)),
		})
	}
	return inv
}

// Detail renders the invoice view for one order. A detail without items is
// shown as still loading, matching the service's partial responses.
func (h *OrdersHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Orden no encontrada."))
		return
	}

	token, ok := sessionToken(c)
	if !ok {
		return
	}

	detail, err := h.Orders.GetOrderByID(c.Request.Context(), token, id)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Orden no encontrada."))
		return
	}

	render.Page(c, http.StatusOK, "invoice", fmt.Sprintf("Orden #%d", id), view.InvoicePage{
		Invoice: buildInvoice(detail),
	})
}

// ExportPDF runs the capture→encode pipeline and streams the artifact. A
// second export while one is in flight is rejected, not queued.
func (h *OrdersHandler) ExportPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Orden no encontrada."))
		return
	}

	token, ok := sessionToken(c)
	if !ok {
		return
	}

	detail, err := h.Orders.GetOrderByID(c.Request.Context(), token, id)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Orden no encontrada."))
		return
	}

	inv := buildInvoice(detail)
	if inv.Loading {
		middleware.Fail(c, apperr.ConflictErr("Los detalles de la orden aún se están cargando."))
		return
	}

	var buf bytes.Buffer
	if err := h.Exporter.Export(c.Request.Context(), inv, &buf); err != nil {
		if errors.Is(err, invoice.ErrExportInFlight) {
			middleware.Fail(c, apperr.ConflictErr("Ya hay una exportación en curso. Intente de nuevo."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+invoice.Filename(id)+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
