package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mailsnap/mailsnap/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past backup runs",
	Run: func(cmd *cobra.Command, args []string) {
		hm := state.NewHistoryManager("")
		history, err := hm.LoadHistory()
		if err != nil {
			pterm.Error.Println("Failed to load history:", err)
			return
		}

		if len(history) == 0 {
			pterm.Info.Println("No history found.")
			return
		}

		pterm.DefaultHeader.Println("Backup History")

		tableData := [][]string{{"ID", "Date", "Status", "Volume", "Host", "Message"}}

		// Show latest first (reverse iteration)
		for i := len(history) - 1; i >= 0; i-- {
			rec := history[i]
			t, _ := time.Parse(time.RFC3339, rec.Timestamp)
			dateStr := t.Format("2006-01-02 15:04:05")

			statusStyle := pterm.NewStyle(pterm.FgGreen)
			if rec.Status == "failed" {
				statusStyle = pterm.NewStyle(pterm.FgRed)
			}

			tableData = append(tableData, []string{
				rec.ID,
				dateStr,
				statusStyle.Sprint(rec.Status),
				rec.Volume,
				rec.Host,
				rec.Message,
			})
		}

		pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
