package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/service"
	"github.com/tallybook/tally/internal/ui"
	"github.com/tallybook/tally/internal/ui/views"
)

func NewShowCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one journal record with its splits",
		Example: `  # Show journal record 42
  tally show 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q", args[0])
			}

			rec, splits, err := svc.Transaction.RecordDetail(id)
			if err != nil {
				return err
			}

			ui.PrintL2Title("Journal Record %d", id)
			return views.RenderRecordDetail(rec, splits)
		},
	}
}
