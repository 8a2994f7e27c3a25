package views

import (
	"fmt"

	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath      string
	JournalPath     string
	JournalExists   bool
	DefaultCurrency string
	DoubleEntry     bool
	AccountCount    int
}

func RenderSystemInfo(data SystemInfoItem) error {
	journalStatus := pterm.Green("Found")
	if !data.JournalExists {
		journalStatus = pterm.Red("Not Found (Will be created)")
	}

	enforcement := "on"
	if !data.DoubleEntry {
		enforcement = "off"
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Journal Path", data.JournalPath},
		{"Journal Status", journalStatus},
		{"Default Currency", data.DefaultCurrency},
		{"Double-Entry Enforcement", enforcement},
		{"Registered Accounts", fmt.Sprintf("%d", data.AccountCount)},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
