package domain

import (
	"math/rand"
	"time"
)

const (
	AccountTypeSavings   = "Savings"
	DefaultBranchAddress = "123 Main Street, New York"

	// SystemUser is recorded as created_by/updated_by until the platform
	// grows an authenticated principal.
	SystemUser = "Anonymous"
)

// Account is the single deposit account opened alongside a customer.
// Exactly one account exists per customer in this model.
type Account struct {
	AccountNumber int64
	CustomerID    int64
	AccountType   string
	BranchAddress string
	CreatedAt     time.Time
	CreatedBy     string
	UpdatedAt     *time.Time
	UpdatedBy     string
}

// NewAccount opens a savings account for the customer with a freshly drawn
// account number. Uniqueness against existing rows is the caller's job; the
// repository retries the draw on a duplicate-key collision.
func NewAccount(customerID int64) *Account {
	return &Account{
		AccountNumber: GenerateAccountNumber(),
		CustomerID:    customerID,
		AccountType:   AccountTypeSavings,
		BranchAddress: DefaultBranchAddress,
		CreatedAt:     time.Now(),
		CreatedBy:     SystemUser,
	}
}

// GenerateAccountNumber draws a random 10-digit account number in
// [1000000000, 1899999999].
func GenerateAccountNumber() int64 {
	return 1000000000 + rand.Int63n(900000000)
}
