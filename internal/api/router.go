package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/example/bala-store/internal/api/middleware"
	"github.com/example/bala-store/internal/auth"
	"github.com/example/bala-store/internal/domain"
)

// Handlers bundles every handler group the router mounts.
type Handlers struct {
	Auth     *AuthHandlers
	Catalog  *CatalogHandlers
	Cart     *CartHandlers
	Orders   *OrderHandlers
	Settings *SettingsHandlers
	Backup   *BackupHandlers
}

// NewRouter wires the HTTP surface. Catalog reads are public, the cart and
// orders need a session, management endpoints need the admin role.
func NewRouter(h *Handlers, jwtService *auth.JWTService, authService *auth.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)

	r.Route("/api", func(r chi.Router) {
		// Public surface: browsing and getting a session.
		r.Group(func(r chi.Router) {
			r.Post("/auth/login", h.Auth.Login)
			r.Post("/auth/google", h.Auth.LoginWithGoogle)
			r.Post("/auth/signup", h.Auth.Signup)

			r.Get("/products", h.Catalog.ListProducts)
			r.Get("/products/{productID}", h.Catalog.GetProduct)
			r.Get("/categories", h.Catalog.ListCategories)
		})

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtService, authService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.Get("/cart", h.Cart.GetCart)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Patch("/cart/items/{productID}", h.Cart.UpdateItem)
			r.Delete("/cart/items/{productID}", h.Cart.RemoveItem)
			r.Delete("/cart", h.Cart.ClearCart)

			r.Post("/orders", h.Orders.PlaceOrder)
			r.Get("/orders", h.Orders.ListMyOrders)
			r.Get("/orders/{orderID}", h.Orders.GetOrder)
			r.Get("/orders/{orderID}/payment-link", h.Orders.PaymentLink)

			r.Get("/settings", h.Settings.GetSettings)
		})

		// Management surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtService, authService))
			r.Use(middleware.RequireRole(domain.RoleAdmin))

			r.Post("/products", h.Catalog.CreateProduct)
			r.Put("/products/{productID}", h.Catalog.UpdateProduct)
			r.Delete("/products/{productID}", h.Catalog.DeleteProduct)
			r.Post("/products/{productID}/stock-toggle", h.Catalog.ToggleStock)
			r.Put("/products/{productID}/stock", h.Catalog.SetStock)

			r.Post("/categories", h.Catalog.CreateCategory)
			r.Put("/categories/{categoryID}", h.Catalog.UpdateCategory)
			r.Delete("/categories/{categoryID}", h.Catalog.DeleteCategory)

			r.Get("/admin/orders", h.Orders.ListAllOrders)
			r.Patch("/admin/orders/{orderID}/status", h.Orders.UpdateStatus)
			r.Post("/admin/orders/{orderID}/payment", h.Orders.ConfirmPayment)

			r.Get("/users", h.Auth.ListUsers)
			r.Patch("/users/{userID}", h.Auth.UpdateUser)
			r.Delete("/users/{userID}", h.Auth.DeleteUser)

			r.Put("/settings", h.Settings.SaveSettings)

			r.Get("/backup/export", h.Backup.Export)
			r.Post("/backup/import", h.Backup.Import)
		})
	})

	return r
}
