package persistence

import (
	"time"

	"github.com/eazybank/banking/internal/domain"
)

// CustomerModel represents the database schema for customers
type CustomerModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(100);not null"`
	MobileNumber string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	CreatedAt    time.Time  `gorm:"not null"`
	CreatedBy    string     `gorm:"type:varchar(20);not null"`
	UpdatedAt    *time.Time `gorm:"default:null"`
	UpdatedBy    string     `gorm:"type:varchar(20)"`
}

func (CustomerModel) TableName() string {
	return "customer"
}

// ToDomain converts database model to domain entity
func (m *CustomerModel) ToDomain() *domain.Customer {
	return &domain.Customer{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		MobileNumber: m.MobileNumber,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
		UpdatedAt:    m.UpdatedAt,
		UpdatedBy:    m.UpdatedBy,
	}
}

// FromDomain converts domain entity to database model
func CustomerModelFromDomain(customer *domain.Customer) *CustomerModel {
	return &CustomerModel{
		ID:           customer.ID,
		Name:         customer.Name,
		Email:        customer.Email,
		MobileNumber: customer.MobileNumber,
		CreatedAt:    customer.CreatedAt,
		CreatedBy:    customer.CreatedBy,
		UpdatedAt:    customer.UpdatedAt,
		UpdatedBy:    customer.UpdatedBy,
	}
}

// AccountModel represents the database schema for accounts
type AccountModel struct {
	AccountNumber int64      `gorm:"primaryKey;autoIncrement:false"`
	CustomerID    int64      `gorm:"not null;index"`
	AccountType   string     `gorm:"type:varchar(100);not null"`
	BranchAddress string     `gorm:"type:varchar(200);not null"`
	CreatedAt     time.Time  `gorm:"not null"`
	CreatedBy     string     `gorm:"type:varchar(20);not null"`
	UpdatedAt     *time.Time `gorm:"default:null"`
	UpdatedBy     string     `gorm:"type:varchar(20)"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts database model to domain entity
func (m *AccountModel) ToDomain() *domain.Account {
	return &domain.Account{
		AccountNumber: m.AccountNumber,
		CustomerID:    m.CustomerID,
		AccountType:   m.AccountType,
		BranchAddress: m.BranchAddress,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		UpdatedAt:     m.UpdatedAt,
		UpdatedBy:     m.UpdatedBy,
	}
}

// FromDomain converts domain entity to database model
func AccountModelFromDomain(account *domain.Account) *AccountModel {
	return &AccountModel{
		AccountNumber: account.AccountNumber,
		CustomerID:    account.CustomerID,
		AccountType:   account.AccountType,
		BranchAddress: account.BranchAddress,
		CreatedAt:     account.CreatedAt,
		CreatedBy:     account.CreatedBy,
		UpdatedAt:     account.UpdatedAt,
		UpdatedBy:     account.UpdatedBy,
	}
}
