package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FahriNazarudin/E-commerce/internal/auth"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Register wires every resource handler. Provider webhooks stay public; the
// rest sits behind the access-control gate.
func Register(r *chi.Mux, gate *auth.Gate, uh *UsersHandler, ph *CatalogHandler, ch *CartsHandler, xh *CheckoutHandler, bh *ChatHandler) {
	r.Post("/register", uh.register)
	r.Post("/login", uh.login)
	r.Post("/login/google", uh.googleLogin)

	r.Post("/checkout/notification", xh.notification)
	r.Post("/notification/handling", xh.notification)

	r.Group(func(r chi.Router) {
		r.Use(gate.Authenticate)

		r.Get("/users/{id}", uh.get)
		r.Put("/users/{id}", uh.update)

		r.Get("/products", ph.listProducts)
		r.Get("/products/{id}", ph.getProduct)
		r.With(gate.RequireAdmin).Post("/products", ph.createProduct)
		r.With(gate.RequireAdmin).Put("/products/{id}", ph.updateProduct)
		r.With(gate.RequireAdmin).Delete("/products/{id}", ph.deleteProduct)

		r.Get("/categories", ph.listCategories)
		r.Get("/categories/{id}", ph.getCategory)
		r.With(gate.RequireAdmin).Post("/categories", ph.createCategory)
		r.With(gate.RequireAdmin).Put("/categories/{id}", ph.updateCategory)
		r.With(gate.RequireAdmin).Delete("/categories/{id}", ph.deleteCategory)

		r.Post("/carts", ch.add)
		r.Get("/carts", ch.list)
		r.Put("/carts/{id}", ch.update)
		r.Delete("/carts/{id}", ch.delete)

		r.Post("/checkout/snap", xh.snap)
		r.Post("/checkout/qris", xh.qris)
		r.Get("/checkout/status/{orderId}", xh.status)
		r.Get("/transaction/status/{orderId}", xh.status)

		r.Post("/chatbot", bh.message)
	})
}
