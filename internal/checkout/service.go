// Package checkout turns a cart into an order. It is the one cross-cutting
// sequence in the system and is deliberately best-effort, not atomic: once
// the order is stored it stands, even if clearing the cart afterwards fails.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/example/bala-store/internal/cart"
	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/events"
	"github.com/example/bala-store/internal/logging"
	"github.com/example/bala-store/internal/repository"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
)

type Service struct {
	orders    *repository.Orders
	cart      *cart.Engine
	publisher *events.Publisher
}

func NewService(orders *repository.Orders, cartEngine *cart.Engine, publisher *events.Publisher) *Service {
	return &Service{
		orders:    orders,
		cart:      cartEngine,
		publisher: publisher,
	}
}

// CustomerDetails are the delivery fields collected at checkout.
type CustomerDetails struct {
	Name    string
	Mobile  string
	Address string
}

// Place snapshots the cart into a new order owned by user. The order starts
// as Processing/Pending regardless of payment method: even a "paid via app"
// declaration stays Pending until an administrator confirms it.
func (s *Service) Place(ctx context.Context, user domain.UserAccount, details CustomerDetails, method domain.PaymentMethod) (domain.Order, error) {
	if !method.Valid() {
		return domain.Order{}, ErrInvalidPaymentMethod
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	// Total is computed from the snapshot just taken, not read back from
	// the cart, so a concurrent cart mutation cannot skew it.
	order := domain.Order{
		UserID:          user.ID,
		CustomerName:    details.Name,
		CustomerMobile:  details.Mobile,
		CustomerAddress: details.Address,
		Date:            domain.OrderDate(time.Now()),
		Items:           domain.SnapshotItems(items),
		Total:           domain.ItemsTotal(items),
		Status:          domain.StatusProcessing,
		PaymentMethod:   method,
		PaymentStatus:   domain.PaymentPending,
	}

	placed, err := s.orders.Add(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	// The order is already stored; a failed cart clear leaves a stale cart
	// behind, which is a tolerable display inconsistency, not a data
	// integrity problem.
	if err := s.cart.Clear(ctx); err != nil {
		logging.Component("checkout").Warn().Err(err).
			Str("order_id", placed.ID).
			Msg("order placed but cart could not be cleared")
	}

	s.publisher.OrderPlaced(ctx, placed)
	return placed, nil
}

// UpdateStatus moves an order along the delivery workflow and publishes the
// transition.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return domain.Order{}, err
	}
	s.publisher.OrderStatusChanged(ctx, orderID, status)
	return updated, nil
}

// ConfirmPayment marks an order as paid and publishes the confirmation.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string) (domain.Order, error) {
	updated, err := s.orders.MarkPaid(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	s.publisher.OrderPaymentConfirmed(ctx, orderID)
	return updated, nil
}
