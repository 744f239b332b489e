package handler

import (
	"context"
	"net/http"

	"github.com/eazybank/banking/internal/domain"
	"github.com/eazybank/banking/internal/interface/http/dto"
	"github.com/eazybank/banking/internal/interface/http/middleware"
	"go.uber.org/zap"
)

// CustomerDetailsFetcher is the aggregation surface the handler uses.
type CustomerDetailsFetcher interface {
	FetchCustomerDetails(ctx context.Context, mobileNumber, correlationID string) (*domain.CustomerDetails, error)
}

// CustomerHandler serves the aggregated customer view.
type CustomerHandler struct {
	details CustomerDetailsFetcher
	logger  *zap.Logger
}

func NewCustomerHandler(details CustomerDetailsFetcher, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		details: details,
		logger:  logger,
	}
}

// FetchCustomerDetails returns the customer, account, loans, and cards
// for a mobile number in one response.
func (h *CustomerHandler) FetchCustomerDetails(w http.ResponseWriter, r *http.Request) {
	mobileNumber := r.URL.Query().Get("mobileNumber")
	if fieldErr := dto.ValidateMobileNumber(mobileNumber); fieldErr != nil {
		respondError(w, r, http.StatusBadRequest, fieldErr.Message, []dto.FieldError{*fieldErr})
		return
	}

	correlationID := middleware.GetCorrelationID(r.Context())

	details, err := h.details.FetchCustomerDetails(r.Context(), mobileNumber, correlationID)
	if err != nil {
		h.logger.Error("failed to fetch customer details",
			zap.Error(err),
			zap.String("mobile_number", mobileNumber),
			zap.String("correlation_id", correlationID),
		)
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerDetailsResponse(details))
}
