package prompts

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tallybook/tally/internal/ui"
)

// PromptAccountName prompts for an account name with validation
func PromptAccountName(validator func(string) error) (string, error) {
	return PromptInput("Account Name:", "", validator)
}

// PromptCurrency prompts for currency selection with common options
func PromptCurrency(defaultCurrency string, customValidator func(string) error) (string, error) {
	commonCurrencies := []string{
		"USD - US Dollar",
		"EUR - Euro",
		"GBP - British Pound",
		"JPY - Japanese Yen",
		"CNY - Chinese Yuan",
		"TWD - Taiwan Dollar",
		"Other (Custom)",
	}

	message := fmt.Sprintf("Currency (default: %s):", defaultCurrency)

	defaultOption := commonCurrencies[0]
	for _, o := range commonCurrencies {
		if strings.HasPrefix(o, defaultCurrency+" ") {
			defaultOption = o
			break
		}
	}

	selected, err := PromptSelect(message, commonCurrencies, defaultOption)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	if selected == "Other (Custom)" {
		customCurrency, err := PromptInput("Enter currency code:", "", customValidator)
		if err != nil {
			return "", fmt.Errorf("input cancelled: %w", err)
		}
		return strings.ToUpper(strings.TrimSpace(customCurrency)), nil
	}

	currencyCode := strings.Split(selected, " ")[0]
	return currencyCode, nil
}

// PromptSecurity prompts for an optional security symbol. Empty means
// the account is denominated in plain currency.
func PromptSecurity() (string, error) {
	symbol, err := PromptInput("Security symbol (press Enter for none):", "", nil)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(symbol)), nil
}

// PromptAccountSelection picks one account name from the registry,
// with live balances in the option labels.
func PromptAccountSelection(message string, names []string, labels map[string]string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("no accounts registered yet")
	}

	displays := make([]string, 0, len(names))
	back := make(map[string]string, len(names))
	for _, name := range names {
		display := name
		if label, ok := labels[name]; ok && label != "" {
			display = fmt.Sprintf("%s (%s)", name, label)
		}
		displays = append(displays, display)
		back[display] = name
	}

	var selected string
	prompt := &survey.Select{
		Message:  message,
		Options:  displays,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected, ui.IconOption()); err != nil {
		return "", err
	}

	return back[selected], nil
}
