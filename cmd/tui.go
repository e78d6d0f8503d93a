package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simonvc/p2pdesk/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive storefront",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := apiBaseURL()
		if err != nil {
			return err
		}
		serveMetrics()

		app := tui.NewApp(newClient(base), tui.Settings{
			Debounce:        cfg.DebounceDelay,
			Throttle:        cfg.ThrottleDelay,
			MessageTimeout:  cfg.MessageTimeout,
			PaymentPassword: cfg.PaymentPassword,
		})
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
