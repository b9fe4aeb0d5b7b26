package http

import "time"

// ErrorResponse is the stable JSON error shape returned for all failures.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// CreateOrderRequest is the payload for placing a new order.
type CreateOrderRequest struct {
	CustomerID  string         `json:"customer_id"`
	Items       []ItemRequest  `json:"items"`
	Subtotal    int64          `json:"subtotal"`
	ShippingFee int64          `json:"shipping_fee"`
	Tax         int64          `json:"tax"`
	Total       int64          `json:"total"`
	Address     AddressRequest `json:"address"`
	Payment     string         `json:"payment_method"`
}

// ItemRequest is one requested line item.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// AddressRequest is the shipping address payload.
type AddressRequest struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Building  string `json:"building"`
	Floor     string `json:"floor,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Area      string `json:"area"`
	City      string `json:"city"`
	Landmark  string `json:"landmark,omitempty"`
}

// CreateOrderResponse identifies the newly placed order.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

// OrderResponse is the full order representation with its tracking log.
type OrderResponse struct {
	ID            string                  `json:"id"`
	Number        string                  `json:"number"`
	CustomerID    string                  `json:"customer_id"`
	Status        string                  `json:"status"`
	Subtotal      int64                   `json:"subtotal"`
	ShippingFee   int64                   `json:"shipping_fee"`
	Tax           int64                   `json:"tax"`
	Total         int64                   `json:"total"`
	PaymentMethod string                  `json:"payment_method"`
	Address       AddressRequest          `json:"address"`
	Items         []ItemResponse          `json:"items"`
	Tracking      []TrackingEventResponse `json:"tracking"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ItemResponse is one line item in an order representation.
type ItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// TrackingEventResponse is one entry of the tracking log.
type TrackingEventResponse struct {
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderSummaryResponse is a compact order representation for history views.
type OrderSummaryResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// TransitionRequest asks for a move to a target status.
type TransitionRequest struct {
	Target  string `json:"target"`
	Message string `json:"message,omitempty"`
}

// CancellationRequest carries an optional customer-stated reason.
type CancellationRequest struct {
	Message string `json:"message,omitempty"`
}

// TransitionResponse reports the order's status after a transition request.
type TransitionResponse struct {
	ID       string                `json:"id"`
	Status   string                `json:"status"`
	Tracking TrackingEventResponse `json:"tracking"`
}

// OpenReturnRequest is the payload for opening a return or exchange.
type OpenReturnRequest struct {
	ItemIDs     []string `json:"item_ids"`
	Kind        string   `json:"kind"`
	Reason      string   `json:"reason"`
	Description string   `json:"description"`
	Attachments []string `json:"attachments,omitempty"`
}

// ResolutionRequest records the gateway's final decision on a return request.
type ResolutionRequest struct {
	Status string `json:"status"`
}

// ReturnRequestResponse identifies the submitted return request.
type ReturnRequestResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Kind      string    `json:"kind"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
