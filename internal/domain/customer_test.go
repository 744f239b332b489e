package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomer_SetsAuditDefaults(t *testing.T) {
	customer, err := NewCustomer("Saugat Dev", "saugat@eazybank.com", "9876543210")
	assert.NoError(t, err)
	assert.Equal(t, "Saugat Dev", customer.Name)
	assert.Equal(t, SystemUser, customer.CreatedBy)
	assert.False(t, customer.CreatedAt.IsZero())
	assert.Nil(t, customer.UpdatedAt)
}

func TestNewCustomer_RejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		args   [3]string
		expect error
	}{
		{"short name", [3]string{"Jo", "a@b.com", "9876543210"}, ErrInvalidCustomerName},
		{"long name", [3]string{"An Exceptionally Long Customer Name Indeed", "a@b.com", "9876543210"}, ErrInvalidCustomerName},
		{"bad email", [3]string{"Saugat Dev", "nope", "9876543210"}, ErrInvalidEmail},
		{"short mobile", [3]string{"Saugat Dev", "a@b.com", "12345"}, ErrInvalidMobileNumber},
		{"alpha mobile", [3]string{"Saugat Dev", "a@b.com", "98765a3210"}, ErrInvalidMobileNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customer, err := NewCustomer(tc.args[0], tc.args[1], tc.args[2])
			assert.Nil(t, customer)
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestNewCustomer_NameLengthCountedInRunes(t *testing.T) {
	// 5 characters, 6 bytes.
	customer, err := NewCustomer("Renée", "renee@eazybank.com", "9876543210")
	assert.NoError(t, err)
	assert.Equal(t, "Renée", customer.Name)

	// 30 characters, 60 bytes.
	customer, err = NewCustomer(strings.Repeat("é", 30), "renee@eazybank.com", "9876543210")
	assert.NoError(t, err)
	assert.NotNil(t, customer)

	_, err = NewCustomer(strings.Repeat("é", 31), "renee@eazybank.com", "9876543210")
	assert.ErrorIs(t, err, ErrInvalidCustomerName)
}

func TestValidMobileNumber(t *testing.T) {
	assert.True(t, ValidMobileNumber("9876543210"))
	assert.True(t, ValidMobileNumber("0000000000"))
	assert.False(t, ValidMobileNumber(""))
	assert.False(t, ValidMobileNumber("987654321"))
	assert.False(t, ValidMobileNumber("98765432101"))
	assert.False(t, ValidMobileNumber("98765 3210"))
	assert.False(t, ValidMobileNumber("98765x3210"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("saugat@eazybank.com"))
	assert.True(t, ValidEmail("a@b.co"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("plainaddress"))
	assert.False(t, ValidEmail("@eazybank.com"))
	assert.False(t, ValidEmail("saugat@"))
	assert.False(t, ValidEmail("saugat@localhost"))
	assert.False(t, ValidEmail("a@@b.com"))
	assert.False(t, ValidEmail("a@.com"))
	assert.False(t, ValidEmail("a@b.com."))
}
