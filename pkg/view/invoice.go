package view

// InvoiceRow is one purchased product line. Subtotal is computed client-side
// (quantity × unit price); the invoice footer total is not.
type InvoiceRow struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// InvoiceDetail is the printable rendering of one order.
type InvoiceDetail struct {
	OrderID          int64
	Date             string
	CustomerName     string
	CustomerEmail    string
	Status           string
	PaymentGatewayID string // "N/A" when the order has none

	Rows []InvoiceRow

	// Total comes verbatim from the order record's totalAmount. The server
	// is the source of truth; rows are never summed into it.
	Total string

	// Loading marks a detail fetch whose items have not arrived yet.
	Loading bool
}

type InvoicePage struct {
	Invoice InvoiceDetail
}
