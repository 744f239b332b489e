package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eazybank/banking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Customer, error) {
	args := m.Called(ctx, mobileNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByCustomerID(ctx context.Context, customerID int64) (*domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func TestCreateAccount_Success(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	mockCustomerRepo.On("FindByMobileNumber", ctx, "9876543210").Return(nil, domain.ErrCustomerNotFound)
	mockCustomerRepo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Customer).ID = 7
	}).Return(nil)
	mockAccountRepo.On("Create", ctx, mock.AnythingOfType("*domain.Account")).Return(nil)

	customer, account, err := svc.CreateAccount(ctx, CreateAccountRequest{
		Name:         "Saugat Dev",
		Email:        "a@b.com",
		MobileNumber: "9876543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Saugat Dev", customer.Name)
	assert.Equal(t, "9876543210", customer.MobileNumber)
	assert.Equal(t, int64(7), account.CustomerID)
	assert.Equal(t, domain.AccountTypeSavings, account.AccountType)
	assert.Equal(t, domain.DefaultBranchAddress, account.BranchAddress)
	assert.GreaterOrEqual(t, account.AccountNumber, int64(1000000000))
	assert.Less(t, account.AccountNumber, int64(10000000000))

	mockCustomerRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestCreateAccount_DuplicateMobileNumber(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	existing := &domain.Customer{ID: 1, Name: "Saugat Dev", MobileNumber: "9876543210"}
	mockCustomerRepo.On("FindByMobileNumber", ctx, "9876543210").Return(existing, nil)

	_, _, err := svc.CreateAccount(ctx, CreateAccountRequest{
		Name:         "Saugat Dev",
		Email:        "a@b.com",
		MobileNumber: "9876543210",
	})

	assert.ErrorIs(t, err, domain.ErrCustomerAlreadyExists)
	mockCustomerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockAccountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAccount_InvalidInputRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	_, _, err := svc.CreateAccount(ctx, CreateAccountRequest{
		Name:         "Jo",
		Email:        "a@b.com",
		MobileNumber: "9876543210",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomerName)

	_, _, err = svc.CreateAccount(ctx, CreateAccountRequest{
		Name:         "Saugat Dev",
		Email:        "a@b.com",
		MobileNumber: "12345",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMobileNumber)

	mockCustomerRepo.AssertNotCalled(t, "FindByMobileNumber", mock.Anything, mock.Anything)
	mockAccountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFetchAccountDetails_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	mockCustomerRepo.On("FindByMobileNumber", ctx, "1234567890").Return(nil, domain.ErrCustomerNotFound)

	_, _, err := svc.FetchAccountDetails(ctx, "1234567890")

	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	mockAccountRepo.AssertNotCalled(t, "FindByCustomerID", mock.Anything, mock.Anything)
}

func TestFetchAccountDetails_Success(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	customer := &domain.Customer{ID: 3, Name: "Saugat Dev", Email: "a@b.com", MobileNumber: "9876543210"}
	account := &domain.Account{AccountNumber: 1234567890, CustomerID: 3, AccountType: domain.AccountTypeSavings}

	mockCustomerRepo.On("FindByMobileNumber", ctx, "9876543210").Return(customer, nil)
	mockAccountRepo.On("FindByCustomerID", ctx, int64(3)).Return(account, nil)

	gotCustomer, gotAccount, err := svc.FetchAccountDetails(ctx, "9876543210")

	assert.NoError(t, err)
	assert.Equal(t, customer, gotCustomer)
	assert.Equal(t, account, gotAccount)
}

func TestUpdateAccountDetails_CustomerNotFound(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	mockCustomerRepo.On("FindByMobileNumber", ctx, "1234567890").Return(nil, domain.ErrCustomerNotFound)

	_, _, err := svc.UpdateAccountDetails(ctx, UpdateAccountRequest{
		Name:          "Updated Name",
		Email:         "new@b.com",
		MobileNumber:  "1234567890",
		AccountType:   domain.AccountTypeSavings,
		BranchAddress: domain.DefaultBranchAddress,
	})

	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	mockCustomerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockAccountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateAccountDetails_Success(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	customer := &domain.Customer{ID: 3, Name: "Saugat Dev", Email: "a@b.com", MobileNumber: "9876543210"}
	account := &domain.Account{AccountNumber: 1234567890, CustomerID: 3, AccountType: domain.AccountTypeSavings}

	mockCustomerRepo.On("FindByMobileNumber", ctx, "9876543210").Return(customer, nil)
	mockAccountRepo.On("FindByCustomerID", ctx, int64(3)).Return(account, nil)
	mockAccountRepo.On("Update", ctx, account).Return(nil)
	mockCustomerRepo.On("Update", ctx, customer).Return(nil)

	gotCustomer, gotAccount, err := svc.UpdateAccountDetails(ctx, UpdateAccountRequest{
		Name:          "Saugat Developer",
		Email:         "dev@b.com",
		MobileNumber:  "9876543210",
		AccountType:   "Current",
		BranchAddress: "456 Side Street, Boston",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Saugat Developer", gotCustomer.Name)
	assert.Equal(t, "dev@b.com", gotCustomer.Email)
	assert.Equal(t, "Current", gotAccount.AccountType)
	assert.Equal(t, "456 Side Street, Boston", gotAccount.BranchAddress)

	mockCustomerRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestDeleteAccountDetails_Success(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	customer := &domain.Customer{ID: 5, MobileNumber: "9876543210"}
	account := &domain.Account{AccountNumber: 1234567890, CustomerID: 5}

	mockCustomerRepo.On("FindByMobileNumber", ctx, "9876543210").Return(customer, nil)
	mockAccountRepo.On("FindByCustomerID", ctx, int64(5)).Return(account, nil)
	mockAccountRepo.On("DeleteByCustomerID", ctx, int64(5)).Return(nil)
	mockCustomerRepo.On("Delete", ctx, int64(5)).Return(nil)

	err := svc.DeleteAccountDetails(ctx, "9876543210")

	assert.NoError(t, err)
	mockCustomerRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestDeleteAccountDetails_NotFoundHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	mockCustomerRepo.On("FindByMobileNumber", ctx, "1234567890").Return(nil, domain.ErrCustomerNotFound)

	err := svc.DeleteAccountDetails(ctx, "1234567890")

	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	mockAccountRepo.AssertNotCalled(t, "DeleteByCustomerID", mock.Anything, mock.Anything)
	mockCustomerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateAccount_RepositoryErrorWrapped(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	mockCustomerRepo := new(MockCustomerRepository)
	mockAccountRepo := new(MockAccountRepository)

	svc := NewAccountService(mockCustomerRepo, mockAccountRepo, nil, logger)

	dbErr := errors.New("database error")
	mockCustomerRepo.On("FindByMobileNumber", ctx, "9876543210").Return(nil, domain.ErrCustomerNotFound)
	mockCustomerRepo.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Return(dbErr)

	_, _, err := svc.CreateAccount(ctx, CreateAccountRequest{
		Name:         "Saugat Dev",
		Email:        "a@b.com",
		MobileNumber: "9876543210",
	})

	assert.ErrorIs(t, err, dbErr)
	mockAccountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
