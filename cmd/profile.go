package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your balances, wallet and payment methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := apiBaseURL()
		if err != nil {
			return err
		}
		p, err := newClient(base).GetUser(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("User:    %s\n", p.UserName)
		fmt.Printf("KEKS:    %s\n", exchange.Round2(p.Balance(exchange.CurrencyCrypto)))
		fmt.Printf("RUB:     %s ₽\n", exchange.Round0(p.Balance(exchange.CurrencyFiat)))
		fmt.Printf("Wallet:  %s\n", p.Wallet.Address)
		for i, pm := range p.PaymentMethods {
			label := "Methods:"
			if i > 0 {
				label = ""
			}
			fmt.Printf("%-8s %s %s\n", label, pm.Provider, pm.AccountNumber)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
