package router

import (
	"net/http"

	"deposito626-api/internal/handler"
	"deposito626-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler         *handler.Handler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	GateHandler     *handler.GateHandler
	CheckoutHandler *handler.CheckoutHandler
	AdminHandler    *handler.AdminHandler
	AdminAuth       func(http.Handler) http.Handler
	UploadsDir      string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Token"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// Uploaded product images - public
	if cfg.UploadsDir != "" {
		fileServer := http.FileServer(http.Dir(cfg.UploadsDir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health check endpoints
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		// Storefront catalog
		if cfg.CatalogHandler != nil {
			r.Get("/products", cfg.CatalogHandler.ListProducts)
			r.Get("/products/{id}", cfg.CatalogHandler.GetProduct)
			r.Get("/store-status", cfg.CatalogHandler.StoreStatus)
		}

		// Access gate
		if cfg.GateHandler != nil {
			r.Route("/access", func(r chi.Router) {
				r.Get("/", cfg.GateHandler.State)
				r.Post("/unlock", cfg.GateHandler.Unlock)
				r.Post("/modal/open", cfg.GateHandler.OpenModal)
				r.Post("/modal/close", cfg.GateHandler.CloseModal)
			})
		}

		// Cart
		if cfg.CartHandler != nil {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cfg.CartHandler.Get)
				r.Post("/items", cfg.CartHandler.AddItem)
				r.Patch("/items", cfg.CartHandler.UpdateItem)
				r.Delete("/items", cfg.CartHandler.RemoveItem)
				r.Post("/open", cfg.CartHandler.SetOpen)
			})
		}

		// Checkout
		if cfg.CheckoutHandler != nil {
			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", cfg.CheckoutHandler.State)
				r.Post("/", cfg.CheckoutHandler.Checkout)
				r.Post("/send", cfg.CheckoutHandler.Send)
				r.Post("/copy", cfg.CheckoutHandler.Copy)
				r.Post("/abandon", cfg.CheckoutHandler.Abandon)
			})
		}

		// Admin endpoints
		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				// Login is the only unauthenticated admin route
				r.Post("/login", cfg.AdminHandler.Login)

				r.Group(func(r chi.Router) {
					if cfg.AdminAuth != nil {
						r.Use(cfg.AdminAuth)
					}

					r.Post("/logout", cfg.AdminHandler.Logout)
					r.Post("/logout-all", cfg.AdminHandler.LogoutAll)
					r.Post("/refresh", cfg.AdminHandler.Refresh)
					r.Get("/me", cfg.AdminHandler.Me)

					r.Post("/products", cfg.AdminHandler.CreateProduct)
					r.Put("/products/{id}", cfg.AdminHandler.UpdateProduct)
					r.Delete("/products/{id}", cfg.AdminHandler.DeleteProduct)

					r.Put("/store-status", cfg.AdminHandler.UpdateStoreStatus)

					r.Get("/orders", cfg.AdminHandler.ListOrders)
					r.Get("/orders/stats", cfg.AdminHandler.OrderStats)
					r.Patch("/orders/{id}/status", cfg.AdminHandler.UpdateOrderStatus)

					r.Get("/audit", cfg.AdminHandler.ListAudit)
					r.Post("/uploads", cfg.AdminHandler.UploadImage)
					r.Post("/members", cfg.AdminHandler.AddMember)
				})
			})
		}
	})

	return r
}
