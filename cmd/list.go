package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/service"
	"github.com/tallybook/tally/internal/ui/views"
)

func NewListCmd(svc *service.Service) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent journal records",
		Long: `List recent journal records.

Every edit session leaves records in the journal: a begin record when
the session opens, a commit record with the full split snapshot, and a
destroy record when a transaction is torn down.`,
		Example: `  # List recent journal records
  tally list

  # Limit the number of records
  tally list --limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := svc.Transaction.RecentRecords(limit)
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}

			return views.NewTransactionListView().Render(records, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of records to display")

	return cmd
}
