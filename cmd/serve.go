package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonvc/p2pdesk/internal/server"
)

var (
	serveAddr string
	serveData string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sandbox exchange API",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := server.DefaultDataset()
		if serveData != "" {
			f, err := os.Open(serveData)
			if err != nil {
				return err
			}
			defer f.Close()
			if data, err = server.LoadDataset(f); err != nil {
				return fmt.Errorf("load %s: %w", serveData, err)
			}
		}

		srv := server.New(data, serveAddr, cfg.PaymentPassword)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8888", "Listen address")
	serveCmd.Flags().StringVar(&serveData, "data", "", "JSON dataset replacing the built-in one")
	rootCmd.AddCommand(serveCmd)
}
