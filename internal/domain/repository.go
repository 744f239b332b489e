package domain

import "context"

// CorrelationIDHeader is the header every service in the platform uses to
// carry the trace token linking one logical request across calls.
const CorrelationIDHeader = "eazybank-correlation-id"

type CustomerRepository interface {
	FindByMobileNumber(ctx context.Context, mobileNumber string) (*Customer, error)
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, customerID int64) error
}

type AccountRepository interface {
	FindByCustomerID(ctx context.Context, customerID int64) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	DeleteByCustomerID(ctx context.Context, customerID int64) error
}

// LoansClient fetches loan data from the loans service. The correlation id
// is forwarded so the call can be traced across services.
type LoansClient interface {
	FetchLoanDetails(ctx context.Context, correlationID, mobileNumber string) (*LoanSummary, error)
}

// CardsClient fetches card data from the cards service.
type CardsClient interface {
	FetchCardDetails(ctx context.Context, correlationID, mobileNumber string) (*CardSummary, error)
}
