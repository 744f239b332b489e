package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/eazybank/banking/internal/domain"
)

// fetchJSON issues a GET against base + /api/fetch?mobileNumber=... with
// the correlation header set, bounded by timeout, and decodes the body
// into out. Transport failures and non-200 responses both surface as
// domain.ErrDownstreamUnavailable so the aggregation policy stays uniform.
func fetchJSON(ctx context.Context, httpClient *http.Client, base, service, correlationID, mobileNumber string, timeout time.Duration, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := fmt.Sprintf("%s/api/fetch?mobileNumber=%s", base, url.QueryEscape(mobileNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", service, err)
	}
	req.Header.Set(domain.CorrelationIDHeader, correlationID)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s call failed: %w", domain.ErrDownstreamUnavailable, service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", domain.ErrDownstreamUnavailable, service, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %w", domain.ErrDownstreamUnavailable, service, err)
	}

	return nil
}
