package gateway

import (
	"net/http"
	"time"

	"github.com/eazybank/banking/internal/config"
	"github.com/eazybank/banking/internal/interface/http/middleware"
	"github.com/eazybank/banking/internal/resilience"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the three edge routes:
//
//	/eazybank/accounts/** -> accounts pool, circuit breaker with a static
//	                         contact-support fallback while open
//	/eazybank/loans/**    -> loans pool, 3 GET attempts with 100ms..1s
//	                         doubling jittered backoff
//	/eazybank/cards/**    -> cards pool, header stamping only
func NewRouter(cfg config.GatewayConfig, logger *zap.Logger) *chi.Mux {
	proxy := NewProxy(logger)

	accountsBreaker := resilience.NewCircuitBreaker("accounts", resilience.BreakerConfig{
		FailureThreshold: 0.5,
		MinimumCalls:     5,
		WindowSize:       10,
		OpenDuration:     10 * time.Second,
		HalfOpenProbes:   2,
	})
	loansRetry := resilience.NewRetry(resilience.RetryConfig{
		Attempts:       3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     1000 * time.Millisecond,
		Multiplier:     2,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "api-gateway"})
	})

	r.Handle("/eazybank/accounts/*", proxy.Handler(Route{
		Prefix:   "/eazybank/accounts",
		Target:   cfg.AccountsURL,
		Breaker:  accountsBreaker,
		Fallback: contactSupportFallback,
	}))
	r.Handle("/eazybank/loans/*", proxy.Handler(Route{
		Prefix: "/eazybank/loans",
		Target: cfg.LoansURL,
		Retry:  loansRetry,
	}))
	r.Handle("/eazybank/cards/*", proxy.Handler(Route{
		Prefix: "/eazybank/cards",
		Target: cfg.CardsURL,
	}))

	return r
}

func contactSupportFallback(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusServiceUnavailable, map[string]string{
		"message": "Accounts service is down, please try again later or contact support at (555) 555-1234.",
	})
}
