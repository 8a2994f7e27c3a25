package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/constants"
	"github.com/tallybook/tally/internal/service"
	"github.com/tallybook/tally/internal/ui/prompts"
	"github.com/tallybook/tally/internal/utils"
)

type addFlags struct {
	Desc   string
	Amount string
	From   string
	To     string
	Memo   string
	Date   string
}

type addRunner struct {
	svc   *service.Service
	flags *addFlags
	cmd   *cobra.Command
}

func NewAddCmd(svc *service.Service) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Long: `Record a new transaction in the ledger.

	The amount leaves the source account and arrives at the destination
	account; the engine keeps the two legs in balance. You can use flags
	for quick entry or interactive mode for guided input.

	Examples:
	# Interactive mode
	tally add

	# Quick mode with flags
	tally add --desc "Buy Coffee" --amount 4.50 --from "Assets:Cash" --to "Expenses:Coffee"

	# Backdated entry
	tally add --desc "Rent" --amount 1200 --from "Assets:Checking" --to "Expenses:Rent" --date 2026-08-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}
	cmd.Flags().StringVarP(&flags.Desc, "desc", "d", "", "Transaction description")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Transaction amount (e.g., 150 or 150.50)")
	cmd.Flags().StringVarP(&flags.From, "from", "f", "", "Source account (where money comes from)")
	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Destination account (where money goes to)")
	cmd.Flags().StringVarP(&flags.Memo, "memo", "m", "", "Memo carried on both legs")
	cmd.Flags().StringVar(&flags.Date, "date", "", "Posted date (YYYY-MM-DD), default is today")

	return cmd
}

func (r *addRunner) Run() error {
	hasFlags := r.cmd.Flags().Changed("desc") || r.cmd.Flags().Changed("amount") ||
		r.cmd.Flags().Changed("from") || r.cmd.Flags().Changed("to")

	var err error
	if hasFlags {
		err = r.flagsMode()
	} else {
		err = r.interactiveMode()
	}
	if err != nil {
		return err
	}

	return nil
}

func (r *addRunner) flagsMode() error {
	if r.flags.Amount == "" || r.flags.From == "" || r.flags.To == "" {
		return fmt.Errorf("when using flags, --amount, --from, and --to are all required")
	}

	if r.flags.Desc == "" {
		r.flags.Desc = "-"
	}

	amount, err := utils.ParseAmount(r.flags.Amount)
	if err != nil {
		return err
	}

	var date time.Time
	if r.flags.Date != "" {
		date, err = time.ParseInLocation(constants.DateFormat, r.flags.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
		}
	}

	return r.record(r.flags.From, r.flags.To, amount, r.flags.Desc, r.flags.Memo, date)
}

func (r *addRunner) interactiveMode() error {
	description, err := prompts.PromptDescription("Transaction description (optional):", false)
	if err != nil {
		return err
	}
	if description == "" {
		description = "-"
	}

	amountStr, err := prompts.PromptAmount(
		"Amount:",
		"Enter the amount, no currency symbol (e.g. 150 or 150.50)",
		nil,
	)
	if err != nil {
		return err
	}
	amount, err := utils.ParseAmount(amountStr)
	if err != nil {
		return err
	}

	names, labels := r.accountOptions()

	fromAccount, err := prompts.PromptAccountSelection("From account:", names, labels)
	if err != nil {
		return err
	}

	toAccount, err := prompts.PromptAccountSelection("To account:", names, labels)
	if err != nil {
		return err
	}

	memo, err := prompts.PromptMemo()
	if err != nil {
		return err
	}

	dateStr, err := prompts.PromptTransactionDate()
	if err != nil {
		return err
	}
	date, err := time.ParseInLocation(constants.DateFormat, dateStr, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	return r.record(fromAccount, toAccount, amount, description, memo, date)
}

func (r *addRunner) record(from, to string, amount decimal.Decimal, desc, memo string, date time.Time) error {
	txn, err := r.svc.Transaction.RecordSimple(from, to, amount, desc, memo, date)
	if err != nil {
		return err
	}

	pterm.Success.Printf("Transaction recorded (%s)\n", txn.ID)
	return nil
}

func (r *addRunner) accountOptions() ([]string, map[string]string) {
	accounts := r.svc.Account.GetAllAccounts()

	names := make([]string, 0, len(accounts))
	labels := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		names = append(names, acc.Name())
		labels[acc.Name()] = fmt.Sprintf("Balance: %s %s", utils.FormatAmount(acc.Balance()), acc.Currency())
	}

	return names, labels
}
