package dto

import (
	"time"
	"unicode/utf8"

	"github.com/eazybank/banking/internal/domain"
)

// Response status constants
const (
	StatusCreated  = "201"
	MessageCreated = "Account created successfully"
	StatusOK       = "200"
	MessageOK      = "Request processed successfully"
	StatusError    = "500"
	MessageError   = "An error occurred. Please try again or contact Dev team"
)

type AccountDto struct {
	AccountNumber int64  `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	BranchAddress string `json:"branchAddress"`
}

// CustomerRequest is the create/update payload. The account block is only
// meaningful on update; creation generates the account.
type CustomerRequest struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	MobileNumber string      `json:"mobileNumber"`
	Account      *AccountDto `json:"accountsDto,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the customer fields, returning one message per invalid
// field, or nil when the payload is acceptable.
func (r *CustomerRequest) Validate() []FieldError {
	var errs []FieldError

	switch {
	case r.Name == "":
		errs = append(errs, FieldError{Field: "name", Message: "Name can not be null or empty"})
	case utf8.RuneCountInString(r.Name) < 5 || utf8.RuneCountInString(r.Name) > 30:
		errs = append(errs, FieldError{Field: "name", Message: "The name length must be between 5 and 30"})
	}

	switch {
	case r.Email == "":
		errs = append(errs, FieldError{Field: "email", Message: "Email can not be null or empty"})
	case !domain.ValidEmail(r.Email):
		errs = append(errs, FieldError{Field: "email", Message: "Email should be valid"})
	}

	if err := ValidateMobileNumber(r.MobileNumber); err != nil {
		errs = append(errs, *err)
	}

	return errs
}

// ValidateForUpdate applies the create rules plus the account block the
// update call requires.
func (r *CustomerRequest) ValidateForUpdate() []FieldError {
	errs := r.Validate()

	if r.Account == nil {
		return append(errs, FieldError{Field: "accountsDto", Message: "Account details can not be null or empty"})
	}
	if r.Account.AccountType == "" {
		errs = append(errs, FieldError{Field: "accountsDto.accountType", Message: "Account Type can not be null or empty"})
	}
	if r.Account.BranchAddress == "" {
		errs = append(errs, FieldError{Field: "accountsDto.branchAddress", Message: "Branch Address can not be null or empty"})
	}

	return errs
}

// ValidateMobileNumber checks the query-string form of the mobile number.
func ValidateMobileNumber(mobileNumber string) *FieldError {
	switch {
	case mobileNumber == "":
		return &FieldError{Field: "mobileNumber", Message: "Mobile number can not be null or empty"}
	case !domain.ValidMobileNumber(mobileNumber):
		return &FieldError{Field: "mobileNumber", Message: "Mobile number must be 10 digits"}
	}
	return nil
}

// ResponseDto is the status/message envelope used by the mutating calls.
type ResponseDto struct {
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMsg"`
}

// ErrorResponse mirrors the error body shape of the rest of the platform.
type ErrorResponse struct {
	APIPath      string       `json:"apiPath"`
	ErrorCode    int          `json:"errorCode"`
	ErrorMessage string       `json:"errorMessage"`
	ErrorTime    time.Time    `json:"errorTime"`
	Errors       []FieldError `json:"errors,omitempty"`
}

type CustomerResponse struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	MobileNumber string     `json:"mobileNumber"`
	Account      AccountDto `json:"accountsDto"`
}

type CustomerDetailsResponse struct {
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	MobileNumber string              `json:"mobileNumber"`
	Account      AccountDto          `json:"accountsDto"`
	Loans        *domain.LoanSummary `json:"loansDto"`
	Cards        *domain.CardSummary `json:"cardsDto"`
}

func NewCustomerResponse(customer *domain.Customer, account *domain.Account) CustomerResponse {
	return CustomerResponse{
		Name:         customer.Name,
		Email:        customer.Email,
		MobileNumber: customer.MobileNumber,
		Account:      NewAccountDto(account),
	}
}

func NewAccountDto(account *domain.Account) AccountDto {
	return AccountDto{
		AccountNumber: account.AccountNumber,
		AccountType:   account.AccountType,
		BranchAddress: account.BranchAddress,
	}
}

func NewCustomerDetailsResponse(details *domain.CustomerDetails) CustomerDetailsResponse {
	return CustomerDetailsResponse{
		Name:         details.Customer.Name,
		Email:        details.Customer.Email,
		MobileNumber: details.Customer.MobileNumber,
		Account:      NewAccountDto(details.Account),
		Loans:        details.Loans,
		Cards:        details.Cards,
	}
}
