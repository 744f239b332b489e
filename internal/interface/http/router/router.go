package router

import (
	"time"

	"github.com/eazybank/banking/internal/interface/http/handler"
	"github.com/eazybank/banking/internal/interface/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(handlers *handler.Handlers, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/health", handlers.Account.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/create", handlers.Account.CreateAccount)
		r.Get("/fetch", handlers.Account.FetchAccountDetails)
		r.Put("/update", handlers.Account.UpdateAccountDetails)
		r.Delete("/delete", handlers.Account.DeleteAccountDetails)

		r.Get("/fetchCustomerDetails", handlers.Customer.FetchCustomerDetails)

		r.Get("/build-version", handlers.Account.BuildVersionInfo)
		r.Get("/go-version", handlers.Account.GoVersionInfo)
		r.Get("/contact-info", handlers.Account.ContactInfo)
	})

	return r
}
