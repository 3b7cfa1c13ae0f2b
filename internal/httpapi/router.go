package httpapi

import (
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/auth"
	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Auth      *auth.Service
	Metrics   *metrics.ServerMetrics
	AuthH     *AuthHandler
	UsersH    *UsersHandler
	CatalogH  *CatalogHandler
	ProductsH *ProductsHandler
	CartH     *CartHandler
	OrdersH   *OrdersHandler
	InvoicesH *InvoicesHandler
	ReportsH  *ReportsHandler
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Compress(5))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	customer := deps.Auth.Middleware(domain.RoleCustomer)
	admin := deps.Auth.Middleware(domain.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", deps.AuthH.Login)

		r.Route("/users", func(r chi.Router) {
			r.Use(admin)
			r.Post("/", deps.UsersH.Create)
			r.Get("/", deps.UsersH.List)
			r.Get("/{user_id}", deps.UsersH.Get)
			r.Put("/{user_id}", deps.UsersH.Update)
			r.Delete("/{user_id}", deps.UsersH.Delete)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(customer)
			r.Get("/", deps.UsersH.Me)
			r.Put("/", deps.UsersH.UpdateMe)
		})

		r.Route("/brands", func(r chi.Router) {
			r.With(customer).Get("/", deps.CatalogH.ListBrands)
			r.With(customer).Get("/{brand_id}", deps.CatalogH.GetBrand)
			r.With(admin).Post("/", deps.CatalogH.CreateBrand)
			r.With(admin).Put("/{brand_id}", deps.CatalogH.UpdateBrand)
			r.With(admin).Delete("/{brand_id}", deps.CatalogH.DeleteBrand)
		})

		r.Route("/categories", func(r chi.Router) {
			r.With(customer).Get("/", deps.CatalogH.ListCategories)
			r.With(customer).Get("/{category_id}", deps.CatalogH.GetCategory)
			r.With(admin).Post("/", deps.CatalogH.CreateCategory)
			r.With(admin).Put("/{category_id}", deps.CatalogH.UpdateCategory)
			r.With(admin).Delete("/{category_id}", deps.CatalogH.DeleteCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.With(customer).Get("/", deps.ProductsH.List)
			r.With(customer).Get("/{product_id}", deps.ProductsH.Get)
			r.With(customer).Get("/barcode/{barcode}", deps.ProductsH.GetByBarcode)
			r.With(admin).Post("/", deps.ProductsH.Create)
			r.With(admin).Put("/{product_id}", deps.ProductsH.Update)
			r.With(admin).Delete("/{product_id}", deps.ProductsH.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(customer)
			r.Get("/", deps.CartH.GetCart)
			r.Post("/items", deps.CartH.AddItem)
			r.Put("/items/{product_id}", deps.CartH.UpdateQuantity)
			r.Delete("/items/{product_id}", deps.CartH.RemoveItem)
			r.Delete("/", deps.CartH.ClearCart)
		})

		r.With(customer).Post("/orders", deps.OrdersH.CreateOrder)

		r.Route("/invoices", func(r chi.Router) {
			r.With(customer).Get("/me", deps.InvoicesH.ListMine)
			r.With(admin).Get("/", deps.InvoicesH.List)
			r.With(admin).Get("/user/{user_id}", deps.InvoicesH.ListByUser)
			r.With(admin).Get("/{invoice_id}", deps.InvoicesH.Get)
			r.With(admin).Patch("/{invoice_id}/status", deps.InvoicesH.UpdateStatus)
			r.With(admin).Delete("/{invoice_id}", deps.InvoicesH.Delete)
		})

		r.With(admin).Get("/reports", deps.ReportsH.Generate)
	})

	return r
}
