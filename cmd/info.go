package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/app"
	"github.com/tallybook/tally/internal/ui"
	"github.com/tallybook/tally/internal/ui/views"
)

func NewInfoCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show system configuration and journal status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintL1Title("System Info")

			_, statErr := os.Stat(application.JournalPath)

			return views.RenderSystemInfo(views.SystemInfoItem{
				ConfigPath:      cfg.ConfigPath,
				JournalPath:     application.JournalPath,
				JournalExists:   statErr == nil,
				DefaultCurrency: cfg.Defaults.Currency,
				DoubleEntry:     cfg.Ledger.DoubleEntry,
				AccountCount:    len(application.Book.Accounts()),
			})
		},
	}
}
