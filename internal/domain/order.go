package domain

import "time"

type OrderStatus string

const (
	StatusProcessing     OrderStatus = "Processing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "COD"
	PaymentUPI PaymentMethod = "UPI"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentUPI
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// Order is an immutable audit record once placed: only status and
// paymentStatus are ever mutated, by administrative action. Items is a
// by-value snapshot of the cart at placement time.
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	CustomerName    string        `json:"customerName"`
	CustomerMobile  string        `json:"customerMobile"`
	CustomerAddress string        `json:"customerAddress"`
	Date            string        `json:"date"`
	Items           []CartItem    `json:"items"`
	Total           float64       `json:"total"`
	Status          OrderStatus   `json:"status"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
}

// CanTransitionTo reports whether the order's status may change to target.
// The selector is a direct three-way choice, so jumping straight to a later
// state is allowed. Delivered is terminal.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	if !target.Valid() {
		return false
	}
	return o.Status != StatusDelivered
}

// OrderDate formats a placement timestamp the way the persisted documents
// expect it: ISO-8601 with millisecond precision in UTC.
func OrderDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
