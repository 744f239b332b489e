package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Domain errors
var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrAccountNotFound       = errors.New("account not found")
	ErrCustomerAlreadyExists = errors.New("customer already registered with given mobile number")
	ErrInvalidMobileNumber   = errors.New("mobile number must be 10 digits")
	ErrInvalidCustomerName   = errors.New("name length must be between 5 and 30")
	ErrInvalidEmail          = errors.New("email address is not valid")
	ErrDownstreamUnavailable = errors.New("downstream service unavailable")
)

// Customer is the aggregate root owned by the accounts service. Every
// customer is keyed by a unique 10-digit mobile number.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	MobileNumber string
	CreatedAt    time.Time
	CreatedBy    string
	UpdatedAt    *time.Time
	UpdatedBy    string
}

// NewCustomer creates a customer, guarding the domain invariants.
func NewCustomer(name, email, mobileNumber string) (*Customer, error) {
	if n := utf8.RuneCountInString(name); n < 5 || n > 30 {
		return nil, ErrInvalidCustomerName
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !ValidMobileNumber(mobileNumber) {
		return nil, ErrInvalidMobileNumber
	}

	return &Customer{
		Name:         name,
		Email:        email,
		MobileNumber: mobileNumber,
		CreatedAt:    time.Now(),
		CreatedBy:    SystemUser,
	}, nil
}

// ValidMobileNumber reports whether s is exactly 10 ASCII digits.
func ValidMobileNumber(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidEmail performs a minimal structural check: a single '@' followed by
// a dotted domain part. Full RFC parsing is the mail gateway's problem.
func ValidEmail(s string) bool {
	at := -1
	for i, r := range s {
		if r == '@' {
			if at != -1 {
				return false
			}
			at = i
		}
	}
	if at <= 0 || at == len(s)-1 {
		return false
	}
	host := s[at+1:]
	dotted := false
	for i, r := range host {
		if r == '.' {
			if i == 0 || i == len(host)-1 {
				return false
			}
			dotted = true
		}
	}
	return dotted
}
