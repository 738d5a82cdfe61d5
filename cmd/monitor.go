package cmd

import (
	"fmt"
	"time"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/output"
	"github.com/brafe/qc/pkg/monitor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	defaultMonitorInterval = 2 * time.Second
	minMonitorInterval     = 500 * time.Millisecond
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard of recent test records",
	Long: `Launch a live-updating dashboard with one table per test kind and the
pass rates of every kind. Records saved by other qc processes appear on the
next refresh.

Key bindings:
  Tab/Shift+Tab  Switch tables
  1/2/3          Jump to table
  ↑/↓            Select row
  r              Force refresh
  q              Quit`,
	GroupID: "records",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		interval, _ := cmd.Flags().GetDuration("interval")
		if interval < minMonitorInterval {
			interval = defaultMonitorInterval
		}

		model := monitor.NewModel(database, interval, version)

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running monitor: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().Duration("interval", defaultMonitorInterval, "Refresh interval (minimum 500ms)")
}
