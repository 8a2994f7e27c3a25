package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/service"
	"github.com/tallybook/tally/internal/ui/prompts"
	"github.com/tallybook/tally/internal/ui/views"
	"github.com/tallybook/tally/internal/validation"
)

func NewAccountCmd(svc *service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(newAccountCreateCmd(svc))
	cmd.AddCommand(newAccountListCmd(svc))

	return cmd
}

func newAccountCreateCmd(svc *service.Service) *cobra.Command {
	var (
		currency string
		security string
	)

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new account",
		Long: `Create a new account in the ledger.

Accounts are flat and identified by name; a colon convention like
"Assets:Checking" is just part of the name. An account is denominated
in a currency and, optionally, a security (for brokerage accounts).`,
		Example: `  # Quick mode
  tally account create "Assets:Checking" --currency USD

  # A brokerage account holding ACME shares
  tally account create "Assets:Brokerage" --currency USD --security ACME

  # Interactive mode
  tally account create`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			var err error

			if len(args) == 1 {
				name = args[0]
			} else {
				name, err = prompts.PromptAccountName(validation.ValidateAccountName)
				if err != nil {
					return err
				}

				currency, err = prompts.PromptCurrency(cfg.Defaults.Currency, validation.ValidateCurrency)
				if err != nil {
					return err
				}

				security, err = prompts.PromptSecurity()
				if err != nil {
					return err
				}
			}

			acc, err := svc.Account.CreateAccount(name, currency, security)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Account %q created (%s)\n", acc.Name(), acc.Currency())
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "Account currency (3-letter code, defaults to the configured currency)")
	cmd.Flags().StringVar(&security, "security", "", "Security symbol for share-denominated accounts")

	return cmd
}

func newAccountListCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := svc.Account.GetAllAccounts()
			if len(accounts) == 0 {
				pterm.Warning.Println("No accounts registered yet")
				return nil
			}

			return views.NewAccountListView().Render(accounts)
		},
	}
}
