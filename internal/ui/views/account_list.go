package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/utils"
)

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(accounts []*engine.Account) error {
	headers := []string{"Name", "Currency", "Security", "Balance", "Cleared", "Reconciled"}
	tableData := pterm.TableData{headers}

	for _, acc := range accounts {
		balance := utils.FormatAmount(acc.Balance())
		if acc.Security() != "" {
			// Security accounts also carry a share count.
			balance = fmt.Sprintf("%s (%s %s)", balance, utils.FormatQuantity(acc.ShareBalance()), acc.Security())
		}

		coloredBalance := balance
		switch {
		case acc.Balance().IsNegative():
			coloredBalance = pterm.Red(balance)
		case acc.Balance().IsPositive():
			coloredBalance = pterm.Green(balance)
		}

		tableData = append(tableData, []string{
			acc.Name(),
			acc.Currency(),
			acc.Security(),
			coloredBalance,
			utils.FormatAmount(acc.ClearedBalance()),
			utils.FormatAmount(acc.ReconciledBalance()),
		})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))

	return nil
}
