package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eazybank/banking/internal/domain"
	"go.uber.org/zap"
)

// AccountService implements the accounts CRUD operations over the customer
// store. Creation also draws the account number and emits an event for the
// notification worker.
type AccountService struct {
	customerRepo   domain.CustomerRepository
	accountRepo    domain.AccountRepository
	eventPublisher domain.EventPublisher // Optional - can be nil
	logger         *zap.Logger
}

func NewAccountService(
	customerRepo domain.CustomerRepository,
	accountRepo domain.AccountRepository,
	eventPublisher domain.EventPublisher,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		customerRepo:   customerRepo,
		accountRepo:    accountRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

type CreateAccountRequest struct {
	Name         string
	Email        string
	MobileNumber string
}

type UpdateAccountRequest struct {
	Name          string
	Email         string
	MobileNumber  string
	AccountType   string
	BranchAddress string
}

// CreateAccount registers a new customer and opens their savings account.
// A mobile number that is already registered fails with
// domain.ErrCustomerAlreadyExists before anything is written.
func (s *AccountService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*domain.Customer, *domain.Account, error) {
	customer, err := domain.NewCustomer(req.Name, req.Email, req.MobileNumber)
	if err != nil {
		return nil, nil, err
	}

	_, err = s.customerRepo.FindByMobileNumber(ctx, req.MobileNumber)
	if err == nil {
		s.logger.Info("duplicate registration rejected",
			zap.String("mobile_number", req.MobileNumber),
		)
		return nil, nil, domain.ErrCustomerAlreadyExists
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing customer: %w", err)
	}

	// The unique index on mobile_number backstops a concurrent create.
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, nil, fmt.Errorf("failed to create customer: %w", err)
	}

	account := domain.NewAccount(customer.ID)
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		zap.String("mobile_number", customer.MobileNumber),
		zap.Int64("account_number", account.AccountNumber),
	)

	if s.eventPublisher != nil {
		go s.publishAccountEvent(domain.EventTypeAccountCreated, customer, account)
	}

	return customer, account, nil
}

// FetchAccountDetails returns the customer and account for the mobile
// number, or domain.ErrCustomerNotFound / domain.ErrAccountNotFound.
func (s *AccountService) FetchAccountDetails(ctx context.Context, mobileNumber string) (*domain.Customer, *domain.Account, error) {
	customer, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return nil, nil, err
	}

	account, err := s.accountRepo.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, nil, err
	}

	return customer, account, nil
}

// UpdateAccountDetails updates the customer and account identified by the
// mobile number. Missing customer or account surfaces as a typed not-found
// error rather than a bare failure.
func (s *AccountService) UpdateAccountDetails(ctx context.Context, req UpdateAccountRequest) (*domain.Customer, *domain.Account, error) {
	customer, err := s.customerRepo.FindByMobileNumber(ctx, req.MobileNumber)
	if err != nil {
		return nil, nil, err
	}

	account, err := s.accountRepo.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	account.AccountType = req.AccountType
	account.BranchAddress = req.BranchAddress

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.Info("account updated",
		zap.String("mobile_number", customer.MobileNumber),
		zap.Int64("account_number", account.AccountNumber),
	)

	if s.eventPublisher != nil {
		go s.publishAccountEvent(domain.EventTypeAccountUpdated, customer, account)
	}

	return customer, account, nil
}

// DeleteAccountDetails removes the account and then the customer for the
// mobile number.
func (s *AccountService) DeleteAccountDetails(ctx context.Context, mobileNumber string) error {
	customer, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return err
	}

	account, err := s.accountRepo.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return err
	}

	if err := s.accountRepo.DeleteByCustomerID(ctx, customer.ID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if err := s.customerRepo.Delete(ctx, customer.ID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("account deleted",
		zap.String("mobile_number", mobileNumber),
		zap.Int64("account_number", account.AccountNumber),
	)

	if s.eventPublisher != nil {
		go s.publishAccountEvent(domain.EventTypeAccountDeleted, customer, account)
	}

	return nil
}

func (s *AccountService) publishAccountEvent(eventType string, customer *domain.Customer, account *domain.Account) {
	// Use background context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := domain.NewAccountEvent(eventType, domain.AccountEventPayload{
		MobileNumber:  customer.MobileNumber,
		CustomerName:  customer.Name,
		Email:         customer.Email,
		AccountNumber: account.AccountNumber,
		AccountType:   account.AccountType,
		BranchAddress: account.BranchAddress,
	})

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish account event",
			zap.Error(err),
			zap.String("event_type", eventType),
			zap.String("mobile_number", customer.MobileNumber),
			zap.String("event_id", event.GetEventID()),
		)
	} else {
		s.logger.Debug("account event published",
			zap.String("event_type", eventType),
			zap.String("event_id", event.GetEventID()),
		)
	}
}
