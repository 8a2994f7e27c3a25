package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccountName(t *testing.T) {
	assert.NoError(t, ValidateAccountName("Assets:Checking"))
	assert.Error(t, ValidateAccountName(""))
	assert.Error(t, ValidateAccountName("   "))
	assert.Error(t, ValidateAccountName(strings.Repeat("x", 101)))
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency("USD"))
	assert.NoError(t, ValidateCurrency("usd"), "case folded before checking")
	assert.NoError(t, ValidateCurrency(""), "empty means use the default")
	assert.Error(t, ValidateCurrency("US"))
	assert.Error(t, ValidateCurrency("dollars"))
	assert.Error(t, ValidateCurrency("U5D"))
}
