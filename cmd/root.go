package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simonvc/p2pdesk/internal/client"
	"github.com/simonvc/p2pdesk/internal/config"
	"github.com/simonvc/p2pdesk/internal/logger"
)

var (
	flagServer      string
	flagConfig      string
	flagLogLevel    string
	flagMetricsAddr string
	flagSandbox     bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "p2pdesk",
	Short: "Peer-to-peer RUB/KEKS exchange storefront",
	Long: "Browse counterparties buying and selling KEKS for roubles, filter them on a list or a map, " +
		"and trade through a validated exchange form. Runs in the terminal, in a browser, or from scripts.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig, cmd.Flags())
		if err != nil {
			return err
		}
		// The TUI owns the terminal, so it logs to a file.
		out := "stderr"
		if cmd.Name() == "tui" {
			out = cfg.LogFile
		}
		return logger.Init(logger.Options{
			Service:    "p2pdesk",
			Env:        cfg.Env,
			Level:      cfg.LogLevel,
			OutputPath: out,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagServer, "server", config.DefaultAPIBaseURL, "Exchange API base URL")
	pf.StringVar(&flagConfig, "config", "", "Config file (yaml, json or toml)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	pf.BoolVar(&flagSandbox, "sandbox", false, "Run against a built-in sandbox API instead of --server")
}

func Execute() error {
	return rootCmd.Execute()
}

func newClient(baseURL string) *client.Client {
	return client.New(baseURL, client.WithTimeout(cfg.RequestTimeout))
}
