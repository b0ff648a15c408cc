package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/repository"
)

// CatalogHandlers serves products and categories.
type CatalogHandlers struct {
	products   *repository.Products
	categories *repository.Categories
}

func NewCatalogHandlers(products *repository.Products, categories *repository.Categories) *CatalogHandlers {
	return &CatalogHandlers{products: products, categories: categories}
}

// ProductRequest carries product fields for create and update.
type ProductRequest struct {
	Name        domain.LocalizedString `json:"name"`
	Price       float64                `json:"price" validate:"gte=0"`
	Image       string                 `json:"image"`
	CategoryID  string                 `json:"categoryId" validate:"required"`
	Size        string                 `json:"size"`
	StockStatus domain.StockStatus     `json:"stockStatus"`
}

func (req *ProductRequest) toProduct() domain.Product {
	status := req.StockStatus
	if status == "" {
		status = domain.InStock
	}
	return domain.Product{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		Size:        req.Size,
		StockStatus: status,
	}
}

// ListProducts returns the whole catalog in insertion order.
func (h *CatalogHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.products.List())
}

// GetProduct returns one product by id.
func (h *CatalogHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.products.Get(chi.URLParam(r, "productID"))
	if !ok {
		respondError(w, "product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// CreateProduct adds a product. The category must exist at creation time;
// it may be deleted later without touching the product.
func (h *CatalogHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Name.Complete() {
		respondError(w, "product name must be set in both languages", http.StatusBadRequest)
		return
	}
	if _, ok := h.categories.Get(req.CategoryID); !ok {
		respondError(w, "category not found", http.StatusBadRequest)
		return
	}
	if req.StockStatus != "" && !req.StockStatus.Valid() {
		respondError(w, "unknown stock status", http.StatusBadRequest)
		return
	}

	product, err := h.products.Add(r.Context(), req.toProduct())
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct replaces a product's fields.
func (h *CatalogHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Name.Complete() {
		respondError(w, "product name must be set in both languages", http.StatusBadRequest)
		return
	}
	if req.StockStatus != "" && !req.StockStatus.Valid() {
		respondError(w, "unknown stock status", http.StatusBadRequest)
		return
	}

	product := req.toProduct()
	product.ID = chi.URLParam(r, "productID")
	if _, ok := h.products.Get(product.ID); !ok {
		respondError(w, "product not found", http.StatusNotFound)
		return
	}
	if err := h.products.Update(r.Context(), product); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog. Existing order
// snapshots keep their copy.
func (h *CatalogHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// ToggleStock flips a product between in and out of stock.
func (h *CatalogHandlers) ToggleStock(w http.ResponseWriter, r *http.Request) {
	status, err := h.products.ToggleStock(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, "product not found", http.StatusNotFound)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]domain.StockStatus{"stockStatus": status})
}

// SetStockRequest sets a product's stock state explicitly.
type SetStockRequest struct {
	StockStatus domain.StockStatus `json:"stockStatus" validate:"required"`
}

// SetStock sets a product's stock state explicitly, the non-toggling
// variant used by bulk edits.
func (h *CatalogHandlers) SetStock(w http.ResponseWriter, r *http.Request) {
	var req SetStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.StockStatus.Valid() {
		respondError(w, "unknown stock status", http.StatusBadRequest)
		return
	}

	if err := h.products.SetStockStatus(r.Context(), chi.URLParam(r, "productID"), req.StockStatus); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, "product not found", http.StatusNotFound)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]domain.StockStatus{"stockStatus": req.StockStatus})
}

// CategoryRequest carries category fields for create and update.
type CategoryRequest struct {
	Name  domain.LocalizedString `json:"name"`
	Image string                 `json:"image"`
}

// ListCategories returns all categories.
func (h *CatalogHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.categories.List())
}

// CreateCategory adds a category.
func (h *CatalogHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Name.Complete() {
		respondError(w, "category name must be set in both languages", http.StatusBadRequest)
		return
	}

	category, err := h.categories.Add(r.Context(), domain.Category{Name: req.Name, Image: req.Image})
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// UpdateCategory replaces a category's fields.
func (h *CatalogHandlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Name.Complete() {
		respondError(w, "category name must be set in both languages", http.StatusBadRequest)
		return
	}

	category := domain.Category{
		ID:    chi.URLParam(r, "categoryID"),
		Name:  req.Name,
		Image: req.Image,
	}
	if _, ok := h.categories.Get(category.ID); !ok {
		respondError(w, "category not found", http.StatusNotFound)
		return
	}
	if err := h.categories.Update(r.Context(), category); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// DeleteCategory removes a category. Products keep their categoryId even
// when it no longer resolves.
func (h *CatalogHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
