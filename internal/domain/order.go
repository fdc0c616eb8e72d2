package domain

import "time"

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	default:
		return false
	}
}

func (t OrderType) String() string {
	return string(t)
}

const OrderStatusPending = "pending"

// CreateOrderRequest is the body accepted by POST /api/orders. Items holds the
// JSON-encoded line-item snapshot taken from the cart at submission time.
type CreateOrderRequest struct {
	CustomerName        string    `json:"customerName"`
	CustomerEmail       string    `json:"customerEmail"`
	CustomerPhone       string    `json:"customerPhone"`
	OrderType           OrderType `json:"orderType"`
	SpecialInstructions *string   `json:"specialInstructions,omitempty"`
	Items               string    `json:"items"`
	TotalAmount         string    `json:"totalAmount"`
}

type Order struct {
	ID                  int64     `json:"id"`
	CustomerName        string    `json:"customerName"`
	CustomerEmail       string    `json:"customerEmail"`
	CustomerPhone       string    `json:"customerPhone"`
	OrderType           OrderType `json:"orderType"`
	Items               string    `json:"items"`
	TotalAmount         string    `json:"totalAmount"`
	SpecialInstructions *string   `json:"specialInstructions"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}

// OrderLine is the line-item shape carried inside CreateOrderRequest.Items.
type OrderLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
}
