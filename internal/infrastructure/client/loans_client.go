package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eazybank/banking/internal/domain"
	"github.com/eazybank/banking/internal/resilience"
	"go.uber.org/zap"
)

// LoansHTTPClient fetches loan summaries from the loans service, guarded
// by its own circuit breaker so a failing loans backend cannot keep
// soaking up aggregation traffic.
type LoansHTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *zap.Logger
}

func NewLoansClient(baseURL string, timeout time.Duration, breaker *resilience.CircuitBreaker, logger *zap.Logger) *LoansHTTPClient {
	return &LoansHTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		breaker: breaker,
		logger:  logger,
	}
}

func (c *LoansHTTPClient) FetchLoanDetails(ctx context.Context, correlationID, mobileNumber string) (*domain.LoanSummary, error) {
	var summary domain.LoanSummary

	err := c.breaker.Do(func() error {
		return fetchJSON(ctx, c.http, c.baseURL, "loans service", correlationID, mobileNumber, c.timeout, &summary)
	})
	if err != nil {
		if errors.Is(err, resilience.ErrOpenState) {
			c.logger.Warn("loans circuit open, call rejected",
				zap.String("correlation_id", correlationID),
				zap.String("mobile_number", mobileNumber),
			)
			return nil, fmt.Errorf("%w: loans circuit breaker open", domain.ErrDownstreamUnavailable)
		}
		c.logger.Error("loans fetch failed",
			zap.Error(err),
			zap.String("correlation_id", correlationID),
			zap.String("mobile_number", mobileNumber),
		)
		return nil, err
	}

	return &summary, nil
}
