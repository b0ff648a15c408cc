// Package notify turns order events into customer mail. It runs as its own
// process (cmd/notifier) on a dedicated consumer group, so a mail outage
// never touches the storefront.
package notify

import (
	"context"

	"github.com/example/bala-store/internal/email"
	"github.com/example/bala-store/internal/events"
	"github.com/example/bala-store/internal/logging"
	"github.com/example/bala-store/internal/repository"
)

// Handler reacts to consumed order events.
type Handler struct {
	email *email.Service
	users *repository.Users
}

func NewHandler(emailService *email.Service, users *repository.Users) *Handler {
	return &Handler{email: emailService, users: users}
}

// HandleEvent dispatches one envelope. Only order.placed produces mail;
// everything else is acknowledged silently.
func (h *Handler) HandleEvent(ctx context.Context, envelope events.Envelope) error {
	if envelope.Type != events.TypeOrderPlaced {
		return nil
	}
	return h.handleOrderPlaced(envelope)
}

func (h *Handler) handleOrderPlaced(envelope events.Envelope) error {
	log := logging.Component("notify")

	order, err := envelope.Order()
	if err != nil {
		log.Warn().Err(err).Str("order_id", envelope.OrderID).Msg("could not decode order snapshot")
		return err
	}

	account, ok := h.users.Get(order.UserID)
	if !ok || account.Email == "" {
		// The account may have been deleted since placement; the order
		// itself still stands.
		log.Info().Str("order_id", order.ID).Str("user_id", order.UserID).
			Msg("no mail address for order, skipping confirmation")
		return nil
	}

	if err := h.email.SendOrderConfirmation(account.Email, order); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("could not send confirmation mail")
		return err
	}

	log.Info().Str("order_id", order.ID).Str("to", account.Email).Msg("confirmation mail sent")
	return nil
}
