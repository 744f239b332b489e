package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eazybank/banking/internal/domain"
	"github.com/eazybank/banking/internal/resilience"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResponseTimeHeader records when the route was evaluated, for tracing a
// request through the edge.
const ResponseTimeHeader = "X-Response-Time"

var errBackendFailure = errors.New("backend returned server error")

// hopByHopHeaders are connection-scoped and must not be forwarded to the
// backend. Same set httputil.ReverseProxy removes.
var hopByHopHeaders = map[string]bool{
	"Connection":          true,
	"Proxy-Connection":    true,
	"Keep-Alive":          true,
	"Proxy-Authenticate":  true,
	"Proxy-Authorization": true,
	"Te":                  true,
	"Trailer":             true,
	"Transfer-Encoding":   true,
	"Upgrade":             true,
}

// Route binds a path prefix to a backend pool with its resilience policy.
// The prefix is stripped before forwarding, so /eazybank/loans/api/fetch
// reaches the loans pool as /api/fetch.
type Route struct {
	Prefix   string
	Target   string
	Breaker  *resilience.CircuitBreaker
	Retry    *resilience.Retry // applied to GET requests only
	Fallback http.HandlerFunc  // served while the breaker is open
}

// Proxy forwards requests to backend services, buffering bodies so a
// failed GET can be retried.
type Proxy struct {
	client *http.Client
	logger *zap.Logger
}

func NewProxy(logger *zap.Logger) *Proxy {
	return &Proxy{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Handler builds the http.HandlerFunc serving one route.
func (p *Proxy) Handler(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evaluatedAt := time.Now()

		rewritten := strings.TrimPrefix(r.URL.Path, route.Prefix)
		if rewritten == "" {
			rewritten = "/"
		}

		var bodyBytes []byte
		if r.Body != nil {
			var readErr error
			bodyBytes, readErr = io.ReadAll(r.Body)
			r.Body.Close()
			if readErr != nil {
				p.logger.Error("failed to read request body",
					zap.Error(readErr),
					zap.String("prefix", route.Prefix),
				)
				w.Header().Set(ResponseTimeHeader, evaluatedAt.Format(time.RFC3339Nano))
				respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Failed to read request body"})
				return
			}
		}

		correlationID := r.Header.Get(domain.CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		var resp *http.Response
		attempt := func() error {
			next, err := p.forward(r, route.Target, rewritten, correlationID, bodyBytes)
			if err != nil {
				return err
			}
			if resp != nil {
				resp.Body.Close()
			}
			resp = next
			if resp.StatusCode >= http.StatusInternalServerError {
				return errBackendFailure
			}
			return nil
		}

		call := attempt
		if route.Retry != nil && r.Method == http.MethodGet {
			call = func() error {
				return route.Retry.Do(r.Context(), attempt)
			}
		}

		var err error
		if route.Breaker != nil {
			err = route.Breaker.Do(call)
			if errors.Is(err, resilience.ErrOpenState) {
				p.logger.Warn("route circuit open, serving fallback",
					zap.String("prefix", route.Prefix),
					zap.String("correlation_id", correlationID),
				)
				w.Header().Set(ResponseTimeHeader, evaluatedAt.Format(time.RFC3339Nano))
				route.serveFallback(w, r)
				return
			}
		} else {
			err = call()
		}

		w.Header().Set(ResponseTimeHeader, evaluatedAt.Format(time.RFC3339Nano))

		if resp == nil {
			p.logger.Error("failed to reach backend",
				zap.Error(err),
				zap.String("prefix", route.Prefix),
				zap.String("target", route.Target),
				zap.String("correlation_id", correlationID),
			)
			respondJSON(w, http.StatusBadGateway, map[string]string{"message": "Service unavailable"})
			return
		}
		defer resp.Body.Close()

		// Pass the backend's final answer through, including a 5xx that
		// survived the retry budget.
		for key, values := range resp.Header {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}
		w.WriteHeader(resp.StatusCode)
		io.Copy(w, resp.Body)
	}
}

func (p *Proxy) forward(r *http.Request, target, path, correlationID string, body []byte) (*http.Response, error) {
	targetURL := target + path
	if r.URL.RawQuery != "" {
		targetURL += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, targetURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for key, values := range r.Header {
		if hopByHopHeaders[http.CanonicalHeaderKey(key)] {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set(domain.CorrelationIDHeader, correlationID)

	return p.client.Do(req)
}

func (route Route) serveFallback(w http.ResponseWriter, r *http.Request) {
	if route.Fallback != nil {
		route.Fallback(w, r)
		return
	}
	respondJSON(w, http.StatusServiceUnavailable, map[string]string{
		"message": "Service is down, please try again later.",
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
