package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

var (
	exContractor string
	exSend       string
	exReceive    string
	exAll        bool
	exPayment    string
	exPassword   string
)

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Trade with a counterparty using the same rules as the exchange form",
	Long: "Fill the exchange form from flags and submit it. Exactly one of --send, --receive or --all " +
		"sets the amounts; the other side is converted at the counterparty's rate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		set := 0
		for _, on := range []bool{exSend != "", exReceive != "", exAll} {
			if on {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("exactly one of --send, --receive or --all is required")
		}

		base, err := apiBaseURL()
		if err != nil {
			return err
		}
		c := newClient(base)
		ctx := context.Background()

		list, err := c.GetContractors(ctx)
		if err != nil {
			return err
		}
		var cp *exchange.Counterparty
		for i := range list {
			if string(list[i].ID) == exContractor {
				cp = &list[i]
				break
			}
		}
		if cp == nil {
			return fmt.Errorf("counterparty %q not found", exContractor)
		}

		p, err := c.GetUser(ctx)
		if err != nil {
			return err
		}
		s, err := exchange.NewSession(*cp, *p, cfg.PaymentPassword)
		if err != nil {
			return err
		}

		switch {
		case exAll:
			s.ExchangeAll()
		case exSend != "":
			err = fillAmount(s, exchange.FieldSending, exSend)
		default:
			err = fillAmount(s, exchange.FieldReceiving, exReceive)
		}
		if err != nil {
			return err
		}
		if exPayment != "" {
			if err := selectPayment(s, exPayment); err != nil {
				return err
			}
		}
		s.SetPassword(exPassword)

		req, err := s.Request()
		if err != nil {
			var verrs exchange.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					fmt.Printf("  %-16s %s\n", fe.Field, fe.Message)
				}
			}
			return err
		}

		if err := c.SubmitExchange(ctx, req); err != nil {
			return err
		}
		fmt.Printf("Exchange completed: sent %s %s, received %s %s\n",
			s.Sending().Text, req.SendingCurrency, s.Receiving().Text, req.ReceivingCurrency)
		return nil
	},
}

// fillAmount types text into an amount field and converts the other one.
// Text the form would cut to its length limit is refused.
func fillAmount(s *exchange.Session, f exchange.Field, text string) error {
	if stored := s.Edit(f, text); stored != text {
		return fmt.Errorf("%s %q is longer than the %d characters the form accepts", f, text, s.Limits().For(f))
	}
	s.Recalculate(f)
	return nil
}

func selectPayment(s *exchange.Session, provider string) error {
	methods := s.PaymentMethods()
	names := make([]string, len(methods))
	for i, pm := range methods {
		if strings.EqualFold(pm.Provider, provider) {
			s.SelectPayment(i)
			return nil
		}
		names[i] = pm.Provider
	}
	return fmt.Errorf("payment method %q not offered, choose one of: %s", provider, strings.Join(names, ", "))
}

func init() {
	f := exchangeCmd.Flags()
	f.StringVar(&exContractor, "contractor", "", "Counterparty id")
	f.StringVar(&exSend, "send", "", "Amount you send")
	f.StringVar(&exReceive, "receive", "", "Amount you receive")
	f.BoolVar(&exAll, "all", false, "Trade the largest possible amount")
	f.StringVar(&exPayment, "payment", "", "Payment method provider, e.g. Sberbank")
	f.StringVar(&exPassword, "password", "", "Payment password")
	exchangeCmd.MarkFlagRequired("contractor")
	rootCmd.AddCommand(exchangeCmd)
}
