package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		current OrderStatus
		target  OrderStatus
		allowed bool
	}{
		{"processing to out for delivery", StatusProcessing, StatusOutForDelivery, true},
		{"processing straight to delivered", StatusProcessing, StatusDelivered, true},
		{"out for delivery to delivered", StatusOutForDelivery, StatusDelivered, true},
		{"out for delivery back to processing", StatusOutForDelivery, StatusProcessing, true},
		{"delivered is terminal", StatusDelivered, StatusProcessing, false},
		{"delivered stays delivered", StatusDelivered, StatusDelivered, false},
		{"unknown target", StatusProcessing, OrderStatus("Shipped"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.current}
			assert.Equal(t, tt.allowed, o.CanTransitionTo(tt.target))
		})
	}
}

func TestOrderDate_Format(t *testing.T) {
	ts := time.Date(2024, 5, 17, 9, 30, 15, 120_000_000, time.UTC)
	assert.Equal(t, "2024-05-17T09:30:15.120Z", OrderDate(ts))
}

func TestSnapshotItems_Independent(t *testing.T) {
	items := []CartItem{{Product: Product{ID: "p1", Price: 10}, Quantity: 2}}
	snap := SnapshotItems(items)

	items[0].Price = 20
	items[0].Quantity = 5

	assert.Equal(t, 10.0, snap[0].Price)
	assert.Equal(t, 2, snap[0].Quantity)
}
