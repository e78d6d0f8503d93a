package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

var (
	contractorsTab      string
	contractorsVerified bool
	contractorsMap      bool
)

var contractorsCmd = &cobra.Command{
	Use:     "contractors",
	Aliases: []string{"ls"},
	Short:   "List counterparties",
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, ok := exchange.ParseTab(contractorsTab)
		if !ok {
			return fmt.Errorf("unknown tab %q, expected buy or sell", contractorsTab)
		}
		f := exchange.Filter{Tab: tab, View: exchange.ViewList, VerifiedOnly: contractorsVerified}
		if contractorsMap {
			if tab == exchange.TabSell {
				return fmt.Errorf("the map view is only available on the buy tab")
			}
			f.View = exchange.ViewMap
		}

		base, err := apiBaseURL()
		if err != nil {
			return err
		}
		list, err := newClient(base).GetContractors(context.Background())
		if err != nil {
			return err
		}

		printContractors(f.Apply(list), f.View == exchange.ViewMap)
		return nil
	},
}

func printContractors(list []exchange.Counterparty, withCoords bool) {
	if len(list) == 0 {
		fmt.Println("No counterparties match the current filter.")
		return
	}

	fmt.Printf("%-38s %-22s %-5s %-10s %-22s %s\n", "ID", "TRADER", "CCY", "RATE", "LIMIT", "PAYMENT")
	fmt.Printf("%-38s %-22s %-5s %-10s %-22s %s\n", "--", "------", "---", "----", "-----", "-------")
	for _, cp := range list {
		name := cp.UserName
		if len([]rune(name)) > 18 {
			name = string([]rune(name)[:18]) + ".."
		}
		if cp.IsVerified {
			name += " *"
		}
		extra := strings.Join(cp.Badges(), ", ")
		if withCoords {
			extra = fmt.Sprintf("%s, %s  %s",
				exchange.Round1(decimal.NewFromFloat(cp.Coords.Lat)),
				exchange.Round1(decimal.NewFromFloat(cp.Coords.Lng)), extra)
		}
		fmt.Printf("%-38s %-22s %-5s %-10s %-22s %s\n",
			cp.ID, name, cp.Balance.Currency, cp.RateText(), cp.CashLimit(), extra)
	}
}

func init() {
	contractorsCmd.Flags().StringVar(&contractorsTab, "tab", "buy", "buy (sellers) or sell (buyers)")
	contractorsCmd.Flags().BoolVar(&contractorsVerified, "verified", false, "Only verified sellers")
	contractorsCmd.Flags().BoolVar(&contractorsMap, "map", false, "Only counterparties with a location, with coordinates")
	rootCmd.AddCommand(contractorsCmd)
}
