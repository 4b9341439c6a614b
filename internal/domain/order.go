package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethodCOD is the only supported payment method (pay on delivery).
const PaymentMethodCOD = "COD"

type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Color       string  `json:"color"`
}

// OrderRequest is the payload submitted to the order service. It is derived
// from the cart at submission time and never stored.
type OrderRequest struct {
	Items         []OrderItem  `json:"items"`
	Total         float64      `json:"total"`
	CustomerInfo  CustomerInfo `json:"customer_info"`
	PaymentMethod string       `json:"payment_method"`
}

type Order struct {
	ID            string       `json:"id"`
	Status        OrderStatus  `json:"status"`
	Items         []OrderItem  `json:"items"`
	Total         float64      `json:"total"`
	CustomerInfo  CustomerInfo `json:"customer_info"`
	PaymentMethod string       `json:"payment_method"`
	CreatedAt     time.Time    `json:"created_at"`
}
