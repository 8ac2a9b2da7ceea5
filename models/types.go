// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Order status constants
const (
	StatusPending  = "pending"
	StatusInvoiced = "invoiced"
)

// Legacy status values still emitted by older backend deployments.
const (
	legacyStatusPending  = "pendente"
	legacyStatusInvoiced = "faturado"
)

// Request types

// UpdateOrderRequest is the body of PUT /orders/{id}. Key names match the
// backend contract exactly and must not be changed independently.
type UpdateOrderRequest struct {
	ClientName    string     `json:"client_name"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []LineItem `json:"items"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	PaymentMethod string     `json:"payment_method"`
	Observations  string     `json:"observations"`
	SupermarketID string     `json:"supermarket_id"`
}

type CreateOrderRequest struct {
	ClientName    string     `json:"client_name"`
	Status        string     `json:"status"`
	Items         []LineItem `json:"items"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	PaymentMethod string     `json:"payment_method"`
	Observations  string     `json:"observations"`
	SupermarketID string     `json:"supermarket_id"`
}

// Response types

type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

// LineItem is a single product line of an order. Quantity and unit price are
// non-negative; malformed wire values decode to 0 rather than failing.
type LineItem struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Order is the tracked entity. All fields except Altered come from the Order
// Data Source; Altered is derived client-side by the tracker and never sent
// back to the server.
type Order struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"supermarket_id"`
	CustomerName  string     `json:"client_name"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Notes         string     `json:"observations,omitempty"`
	Status        string     `json:"status"`
	Total         *float64   `json:"total,omitempty"`
	LineItems     []LineItem `json:"items"`
	OrderedAt     time.Time  `json:"created_at"`
	ServerAltered bool       `json:"foi_alterado,omitempty"`
	Altered       bool       `json:"altered,omitempty"`
}

// DeclaredTotal returns the server-supplied total and whether it is usable.
func (o Order) DeclaredTotal() (float64, bool) {
	if o.Total == nil {
		return 0, false
	}
	return *o.Total, true
}

// ComputedTotal returns the server total when declared, otherwise the sum of
// quantity x unit price over the line items.
func (o Order) ComputedTotal() float64 {
	if t, ok := o.DeclaredTotal(); ok {
		return t
	}
	var sum float64
	for _, it := range o.LineItems {
		sum += it.Quantity * it.UnitPrice
	}
	return sum
}

// NormalizeStatus maps legacy Portuguese status values onto the canonical
// constants. Unknown values pass through unchanged.
func NormalizeStatus(s string) string {
	switch s {
	case legacyStatusPending:
		return StatusPending
	case legacyStatusInvoiced:
		return StatusInvoiced
	default:
		return s
	}
}
