package validation

import (
	"fmt"
	"strings"

	"github.com/tallybook/tally/internal/constants"
	"github.com/tallybook/tally/internal/utils"
)

// ValidateAccountName validates an account name without checking
// existence.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("account name can't be empty")
	}

	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}

	return nil
}

// ValidateCurrency validates a currency code format.
func ValidateCurrency(currency string) error {
	currency = strings.TrimSpace(strings.ToUpper(currency))

	if currency == "" {
		return nil // Empty is allowed (will use default)
	}

	if len(currency) != 3 {
		return fmt.Errorf("currency code must be 3 characters (e.g. USD)")
	}

	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must contain only letters")
		}
	}

	return nil
}

// ValidateAmount is a prompt-compatible validator for amount input.
func ValidateAmount(s string) error {
	_, err := utils.ParseAmount(s)
	return err
}
