package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/eazybank/banking/internal/application/service"
	"github.com/eazybank/banking/internal/domain"
	"github.com/eazybank/banking/internal/interface/http/dto"
	"go.uber.org/zap"
)

// BuildVersion is stamped at build time via -ldflags.
var BuildVersion = "3.0"

// AccountOperations is the service surface the handler depends on.
type AccountOperations interface {
	CreateAccount(ctx context.Context, req service.CreateAccountRequest) (*domain.Customer, *domain.Account, error)
	FetchAccountDetails(ctx context.Context, mobileNumber string) (*domain.Customer, *domain.Account, error)
	UpdateAccountDetails(ctx context.Context, req service.UpdateAccountRequest) (*domain.Customer, *domain.Account, error)
	DeleteAccountDetails(ctx context.Context, mobileNumber string) error
}

type AccountHandler struct {
	accounts AccountOperations
	logger   *zap.Logger
}

func NewAccountHandler(accounts AccountOperations, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// CreateAccount registers a customer and opens an account.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if fieldErrors := req.Validate(); fieldErrors != nil {
		respondError(w, r, http.StatusBadRequest, "validation failed", fieldErrors)
		return
	}

	_, _, err := h.accounts.CreateAccount(r.Context(), service.CreateAccountRequest{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		h.logger.Error("failed to create account",
			zap.Error(err),
			zap.String("mobile_number", req.MobileNumber),
		)
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ResponseDto{
		StatusCode: dto.StatusCreated,
		StatusMsg:  dto.MessageCreated,
	})
}

// FetchAccountDetails returns the customer and account for a mobile number.
func (h *AccountHandler) FetchAccountDetails(w http.ResponseWriter, r *http.Request) {
	mobileNumber := r.URL.Query().Get("mobileNumber")
	if fieldErr := dto.ValidateMobileNumber(mobileNumber); fieldErr != nil {
		respondError(w, r, http.StatusBadRequest, fieldErr.Message, []dto.FieldError{*fieldErr})
		return
	}

	customer, account, err := h.accounts.FetchAccountDetails(r.Context(), mobileNumber)
	if err != nil {
		h.logger.Error("failed to fetch account details",
			zap.Error(err),
			zap.String("mobile_number", mobileNumber),
		)
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(customer, account))
}

// UpdateAccountDetails updates customer and account fields.
func (h *AccountHandler) UpdateAccountDetails(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if fieldErrors := req.ValidateForUpdate(); fieldErrors != nil {
		respondError(w, r, http.StatusBadRequest, "validation failed", fieldErrors)
		return
	}

	_, _, err := h.accounts.UpdateAccountDetails(r.Context(), service.UpdateAccountRequest{
		Name:          req.Name,
		Email:         req.Email,
		MobileNumber:  req.MobileNumber,
		AccountType:   req.Account.AccountType,
		BranchAddress: req.Account.BranchAddress,
	})
	if err != nil {
		h.logger.Error("failed to update account details",
			zap.Error(err),
			zap.String("mobile_number", req.MobileNumber),
		)
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ResponseDto{
		StatusCode: dto.StatusOK,
		StatusMsg:  dto.MessageOK,
	})
}

// DeleteAccountDetails removes the customer and their account.
func (h *AccountHandler) DeleteAccountDetails(w http.ResponseWriter, r *http.Request) {
	mobileNumber := r.URL.Query().Get("mobileNumber")
	if fieldErr := dto.ValidateMobileNumber(mobileNumber); fieldErr != nil {
		respondError(w, r, http.StatusBadRequest, fieldErr.Message, []dto.FieldError{*fieldErr})
		return
	}

	if err := h.accounts.DeleteAccountDetails(r.Context(), mobileNumber); err != nil {
		h.logger.Error("failed to delete account details",
			zap.Error(err),
			zap.String("mobile_number", mobileNumber),
		)
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ResponseDto{
		StatusCode: dto.StatusOK,
		StatusMsg:  dto.MessageOK,
	})
}

// BuildVersionInfo reports the running build.
func (h *AccountHandler) BuildVersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"buildVersion": BuildVersion})
}

// GoVersionInfo reports the runtime the service was built with.
func (h *AccountHandler) GoVersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"goVersion": runtime.Version()})
}

// ContactInfo returns the on-call support details.
func (h *AccountHandler) ContactInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Welcome to EazyBank accounts related APIs",
		"contactDetails": map[string]string{
			"name":  "Saugat Dev - Developer",
			"email": "saugat@eazybank.com",
		},
		"onCallSupport": []string{"(555) 555-1234", "(555) 523-1345"},
	})
}

// HealthCheck handles the health probe.
func (h *AccountHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string, fieldErrors []dto.FieldError) {
	respondJSON(w, status, dto.ErrorResponse{
		APIPath:      r.URL.Path,
		ErrorCode:    status,
		ErrorMessage: message,
		ErrorTime:    time.Now(),
		Errors:       fieldErrors,
	})
}

// respondDomainError maps domain errors onto HTTP statuses: not-found
// records 404, duplicate registration 409, downstream outage 503, broken
// request fields 400, anything else 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound), errors.Is(err, domain.ErrAccountNotFound):
		respondError(w, r, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrCustomerAlreadyExists):
		respondError(w, r, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrDownstreamUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidMobileNumber),
		errors.Is(err, domain.ErrInvalidCustomerName),
		errors.Is(err, domain.ErrInvalidEmail):
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
	default:
		respondError(w, r, http.StatusInternalServerError, dto.MessageError, nil)
	}
}
