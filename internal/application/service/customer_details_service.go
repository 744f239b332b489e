package service

import (
	"context"

	"github.com/eazybank/banking/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CustomerDetailsService composes the aggregated customer view: the local
// customer and account joined with loan and card summaries fetched from
// the downstream services.
//
// The two downstream lookups are independent, so they run concurrently and
// the request pays max(loans, cards) latency instead of the sum. The
// partial-failure policy is all-or-nothing: if either downstream fails the
// whole aggregation fails with domain.ErrDownstreamUnavailable. A degraded
// view with a missing loans or cards block is never returned.
//
// One leg failing never cancels the other. Each leg's outcome must reach
// its own circuit breaker, and an aborted call against a healthy backend
// would be recorded as that backend's failure.
type CustomerDetailsService struct {
	customerRepo domain.CustomerRepository
	accountRepo  domain.AccountRepository
	loansClient  domain.LoansClient
	cardsClient  domain.CardsClient
	logger       *zap.Logger
}

func NewCustomerDetailsService(
	customerRepo domain.CustomerRepository,
	accountRepo domain.AccountRepository,
	loansClient domain.LoansClient,
	cardsClient domain.CardsClient,
	logger *zap.Logger,
) *CustomerDetailsService {
	return &CustomerDetailsService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		loansClient:  loansClient,
		cardsClient:  cardsClient,
		logger:       logger,
	}
}

// FetchCustomerDetails aggregates customer, account, loans, and cards for
// the mobile number. The correlation id is forwarded on both downstream
// calls. A missing customer or account aborts before any fan-out; ctx
// cancellation reaches both downstream calls, which carry the caller's
// context directly.
func (s *CustomerDetailsService) FetchCustomerDetails(ctx context.Context, mobileNumber, correlationID string) (*domain.CustomerDetails, error) {
	customer, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	var (
		loans *domain.LoanSummary
		cards *domain.CardSummary
	)

	var g errgroup.Group
	g.Go(func() error {
		result, err := s.loansClient.FetchLoanDetails(ctx, correlationID, mobileNumber)
		if err != nil {
			return err
		}
		loans = result
		return nil
	})
	g.Go(func() error {
		result, err := s.cardsClient.FetchCardDetails(ctx, correlationID, mobileNumber)
		if err != nil {
			return err
		}
		cards = result
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("aggregation aborted on downstream failure",
			zap.Error(err),
			zap.String("correlation_id", correlationID),
			zap.String("mobile_number", mobileNumber),
		)
		return nil, err
	}

	s.logger.Info("customer details aggregated",
		zap.String("correlation_id", correlationID),
		zap.String("mobile_number", mobileNumber),
	)

	return &domain.CustomerDetails{
		Customer: customer,
		Account:  account,
		Loans:    loans,
		Cards:    cards,
	}, nil
}
