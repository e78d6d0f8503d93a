package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldLimits(t *testing.T) {
	seller := testSeller(t)
	buyer := testBuyer(t)

	tests := []struct {
		name   string
		cp     Counterparty
		fiat   string
		crypto string
		want   Limits
	}{
		// min(10000, 5000) -> 4 digits; min(50, 100) -> 2 digits + 3.
		{"seller bounded by capacity", seller, "10000", "20", Limits{Sending: 4, Receiving: 5}},
		// min(900, 5000) -> 3 digits; min(50, 9) -> 1 digit + 3.
		{"seller bounded by own fiat", seller, "900", "20", Limits{Sending: 3, Receiving: 4}},
		// min(20, 30) -> 2 digits + 3; min(3000, 2000) -> 4 digits.
		{"buyer bounded by own crypto", buyer, "0", "20", Limits{Sending: 5, Receiving: 4}},
		{"empty balances", seller, "0", "0", Limits{Sending: 1, Receiving: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FieldLimits(&tt.cp, dec(t, tt.fiat), dec(t, tt.crypto))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimitsFor(t *testing.T) {
	l := Limits{Sending: 3, Receiving: 7}
	assert.Equal(t, 3, l.For(FieldSending))
	assert.Equal(t, 7, l.For(FieldReceiving))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "1234", Truncate("123456", 4))
	assert.Equal(t, "12", Truncate("12", 4))
	assert.Equal(t, "₽₽", Truncate("₽₽₽", 2))
}
