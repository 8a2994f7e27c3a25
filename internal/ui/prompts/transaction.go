package prompts

import (
	"time"

	"github.com/tallybook/tally/internal/constants"
)

// PromptTransactionDate prompts for the posted date
func PromptTransactionDate() (string, error) {
	defaultDate := time.Now().Format(constants.DateFormat)
	date, err := PromptDate(
		"Posted Date (YYYY-MM-DD):",
		defaultDate,
		"Press Enter for today",
	)
	if err != nil {
		return "", err
	}

	return date, nil
}

// PromptMemo prompts for the split memo
func PromptMemo() (string, error) {
	return PromptInput("Memo (optional):", "", nil)
}

// PromptDeleteConfirm asks before a transaction teardown. Destroy is
// permanent: the splits leave their accounts and the carcass is
// unusable.
func PromptDeleteConfirm(description string) (bool, error) {
	return PromptConfirm("Delete transaction '"+description+"'? This cannot be undone.", false)
}
