package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/bala-store/internal/cart"
	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/repository"
)

// CartHandlers serves the shared storefront cart.
type CartHandlers struct {
	cart     *cart.Engine
	products *repository.Products
}

func NewCartHandlers(cartEngine *cart.Engine, products *repository.Products) *CartHandlers {
	return &CartHandlers{cart: cartEngine, products: products}
}

// CartResponse bundles the lines with the derived totals the storefront
// shows in the header badge and at checkout.
type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func (h *CartHandlers) view() CartResponse {
	return CartResponse{
		Items: h.cart.Items(),
		Total: h.cart.Total(),
		Count: h.cart.Count(),
	}
}

// GetCart returns the current cart.
func (h *CartHandlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view())
}

// AddItemRequest adds one unit of a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddItem adds one unit of a product, merging into an existing line when
// the product is already in the cart.
func (h *CartHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, ok := h.products.Get(req.ProductID)
	if !ok {
		respondError(w, "product not found", http.StatusNotFound)
		return
	}
	if product.StockStatus == domain.OutOfStock {
		respondError(w, "product is out of stock", http.StatusConflict)
		return
	}

	if err := h.cart.Add(r.Context(), product); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.view())
}

// UpdateItemRequest sets the quantity of a cart line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets a line's quantity. Anything below one removes the line.
func (h *CartHandlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), req.Quantity); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.view())
}

// RemoveItem removes a line from the cart.
func (h *CartHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Remove(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.view())
}

// ClearCart empties the cart.
func (h *CartHandlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.view())
}
