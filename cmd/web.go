package cmd

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/simonvc/p2pdesk/internal/web"
)

var (
	webPort int
	webHost string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Launch the storefront in a browser terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiAddr, err := apiBaseURL()
		if err != nil {
			return err
		}
		serveMetrics()

		listenAddr := net.JoinHostPort(webHost, fmt.Sprintf("%d", webPort))
		fmt.Printf("p2pdesk web UI: http://%s\n", listenAddr)

		return web.NewServer(listenAddr, apiAddr).ListenAndServe()
	},
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 8833, "HTTP port for web terminal")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "HTTP host for web terminal")
	rootCmd.AddCommand(webCmd)
}
