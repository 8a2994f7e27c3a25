package views

import (
	"time"

	"github.com/pterm/pterm"

	"github.com/tallybook/tally/internal/constants"
	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/journal"
	"github.com/tallybook/tally/internal/utils"
)

// RenderRecordDetail prints one journal record with its split
// snapshots.
func RenderRecordDetail(rec *journal.Record, splits []*journal.SplitRecord) error {
	header := pterm.TableData{
		{pterm.Blue("Record"), pterm.Sprintf("%d (%s)", rec.ID, engine.Opcode(rec.Opcode))},
		{pterm.Blue("Transaction"), rec.TxnID},
		{pterm.Blue("Posted"), time.Unix(0, rec.DatePosted).Format(constants.DateFormat)},
		{pterm.Blue("Num"), rec.Num},
		{pterm.Blue("Description"), rec.Description},
	}
	if rec.DocRef != "" {
		header = append(header, []string{pterm.Blue("DocRef"), rec.DocRef})
	}

	if err := pterm.DefaultTable.WithData(header).Render(); err != nil {
		return err
	}

	tableData := pterm.TableData{
		{"Account", "Memo", "Quantity", "Price", "Value", "Reconcile"},
	}
	for _, sp := range splits {
		value := sp.Quantity.Mul(sp.SharePrice)

		coloredValue := utils.FormatAmount(value)
		if value.IsNegative() {
			coloredValue = pterm.Red(coloredValue)
		}

		tableData = append(tableData, []string{
			sp.Account,
			sp.Memo,
			utils.FormatQuantity(sp.Quantity),
			utils.FormatQuantity(sp.SharePrice),
			coloredValue,
			engine.ReconcileState(sp.Reconciled).String(),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
