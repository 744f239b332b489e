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

// CardsHTTPClient fetches card summaries from the cards service behind its
// own circuit breaker.
type CardsHTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *zap.Logger
}

func NewCardsClient(baseURL string, timeout time.Duration, breaker *resilience.CircuitBreaker, logger *zap.Logger) *CardsHTTPClient {
	return &CardsHTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		breaker: breaker,
		logger:  logger,
	}
}

func (c *CardsHTTPClient) FetchCardDetails(ctx context.Context, correlationID, mobileNumber string) (*domain.CardSummary, error) {
	var summary domain.CardSummary

	err := c.breaker.Do(func() error {
		return fetchJSON(ctx, c.http, c.baseURL, "cards service", correlationID, mobileNumber, c.timeout, &summary)
	})
	if err != nil {
		if errors.Is(err, resilience.ErrOpenState) {
			c.logger.Warn("cards circuit open, call rejected",
				zap.String("correlation_id", correlationID),
				zap.String("mobile_number", mobileNumber),
			)
			return nil, fmt.Errorf("%w: cards circuit breaker open", domain.ErrDownstreamUnavailable)
		}
		c.logger.Error("cards fetch failed",
			zap.Error(err),
			zap.String("correlation_id", correlationID),
			zap.String("mobile_number", mobileNumber),
		)
		return nil, err
	}

	return &summary, nil
}
