package view

type AdminOrderListItem struct {
	ID               int64
	UserID           int64
	Status           string
	Total            string
	PaymentGatewayID string
	CreatedAt        string
}

type AdminOrdersListPage struct {
	Items    []AdminOrderListItem
	Statuses []string
}

// CreateOrderForm mirrors the manual-creation modal: one order header plus a
// variable-length list of item rows. Everything stays a string so a rejected
// submit re-renders exactly what the user typed; conversion to numeric types
// happens right before the create call.
type CreateOrderForm struct {
	UserID           string
	Status           string
	TotalAmount      string
	PaymentGatewayID string
	Items            []CreateOrderFormItem
}

type CreateOrderFormItem struct {
	ProductID       string
	Quantity        string
	PriceAtPurchase string
}

// EmptyCreateOrderForm starts with one blank item row, like the modal does.
func EmptyCreateOrderForm() CreateOrderForm {
	return CreateOrderForm{
		Status: "paid",
		Items:  []CreateOrderFormItem{{}},
	}
}

type CreateOrderPage struct {
	Form     CreateOrderForm
	Statuses []string
	Errors   map[string]string
	Error    string
}
