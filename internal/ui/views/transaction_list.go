package views

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/tallybook/tally/internal/constants"
	"github.com/tallybook/tally/internal/engine"
	"github.com/tallybook/tally/internal/journal"
)

type TransactionListView struct{}

func NewTransactionListView() *TransactionListView {
	return &TransactionListView{}
}

func (v *TransactionListView) Render(records []*journal.Record, limit int) error {
	if len(records) == 0 {
		pterm.Warning.Println("No journal records found")
		return nil
	}

	pterm.DefaultSection.Printf("Journal records, newest first (limit: %d)", limit)

	tableData := pterm.TableData{
		{"Record", "Op", "Posted", "Num", "Description", "Transaction"},
	}

	for _, rec := range records {
		op := engine.Opcode(rec.Opcode)

		var coloredOp string
		switch op {
		case engine.OpCommit:
			coloredOp = pterm.Green(op.String())
		case engine.OpDestroy:
			coloredOp = pterm.Red(op.String())
		default:
			coloredOp = pterm.Gray(op.String())
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", rec.ID),
			coloredOp,
			time.Unix(0, rec.DatePosted).Format(constants.DateFormat),
			rec.Num,
			rec.Description,
			rec.TxnID,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d records\n", len(records))
	return nil
}
