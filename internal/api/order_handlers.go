package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/bala-store/internal/api/middleware"
	"github.com/example/bala-store/internal/checkout"
	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/payment"
	"github.com/example/bala-store/internal/repository"
)

// OrderHandlers serves checkout, order history and the admin order
// workflow.
type OrderHandlers struct {
	checkout  *checkout.Service
	orders    *repository.Orders
	settings  *repository.Settings
	storeName string
}

func NewOrderHandlers(checkoutService *checkout.Service, orders *repository.Orders, settings *repository.Settings, storeName string) *OrderHandlers {
	return &OrderHandlers{
		checkout:  checkoutService,
		orders:    orders,
		settings:  settings,
		storeName: storeName,
	}
}

// PlaceOrderRequest carries the delivery details collected at checkout.
type PlaceOrderRequest struct {
	CustomerName    string               `json:"customerName" validate:"required"`
	CustomerMobile  string               `json:"customerMobile" validate:"required"`
	CustomerAddress string               `json:"customerAddress" validate:"required"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" validate:"required"`
}

// PlaceOrder snapshots the cart into a new order for the authenticated
// user.
func (h *OrderHandlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	details := checkout.CustomerDetails{
		Name:    req.CustomerName,
		Mobile:  req.CustomerMobile,
		Address: req.CustomerAddress,
	}
	order, err := h.checkout.Place(r.Context(), identity, details, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, "cart is empty", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrInvalidPaymentMethod):
			respondError(w, "unknown payment method", http.StatusBadRequest)
		default:
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// ListMyOrders returns the authenticated user's orders, newest first.
func (h *OrderHandlers) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.orders.ListByUser(identity.ID))
}

// GetOrder returns one order. Customers may only see their own; admins may
// see any.
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	order, ok := h.orders.Get(chi.URLParam(r, "orderID"))
	if !ok || (identity.Role != domain.RoleAdmin && order.UserID != identity.ID) {
		respondError(w, "order not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// PaymentLinkResponse carries everything the UPI payment screen needs.
type PaymentLinkResponse struct {
	Link   string `json:"link"`
	QRCode string `json:"qrCode,omitempty"`
}

// PaymentLink builds the UPI deep link for an order from the store
// settings.
func (h *OrderHandlers) PaymentLink(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	order, ok := h.orders.Get(chi.URLParam(r, "orderID"))
	if !ok || (identity.Role != domain.RoleAdmin && order.UserID != identity.ID) {
		respondError(w, "order not found", http.StatusNotFound)
		return
	}

	settings := h.settings.Get()
	if settings.UPIID == "" {
		respondError(w, "UPI payments are not configured", http.StatusConflict)
		return
	}

	link := payment.BuildUPILink(settings.UPIID, h.storeName, order.Total, "Order "+order.ID)
	respondJSON(w, http.StatusOK, PaymentLinkResponse{Link: link, QRCode: settings.QRCode})
}

// ListAllOrders returns every order for the management screen.
func (h *OrderHandlers) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orders.List())
}

// UpdateStatusRequest moves an order along the delivery workflow.
type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

// UpdateStatus sets an order's delivery status.
func (h *OrderHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.checkout.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, "order not found", http.StatusNotFound)
		case errors.Is(err, repository.ErrInvalidStatus):
			respondError(w, "unknown order status", http.StatusBadRequest)
		case errors.Is(err, repository.ErrOrderDelivered):
			respondError(w, "delivered orders can no longer change", http.StatusConflict)
		default:
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// ConfirmPayment marks an order as paid.
func (h *OrderHandlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.ConfirmPayment(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, "order not found", http.StatusNotFound)
		case errors.Is(err, repository.ErrAlreadyPaid):
			respondError(w, "order is already marked as paid", http.StatusConflict)
		default:
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusOK, order)
}
