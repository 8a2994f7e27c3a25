package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/service"
	"github.com/tallybook/tally/internal/ui/prompts"
)

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long: `Delete a transaction.

The transaction's splits leave their accounts, balances are recomputed,
and a destroy record is journaled. Transaction ids are shown by
'tally list'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txn, err := svc.Transaction.FindByID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				confirmed, err := prompts.PromptDeleteConfirm(txn.Description())
				if err != nil {
					return err
				}
				if !confirmed {
					pterm.Info.Println("Delete cancelled")
					return nil
				}
			}

			if err := svc.Transaction.Delete(args[0]); err != nil {
				return err
			}

			pterm.Success.Println("Transaction deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
