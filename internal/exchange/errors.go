package exchange

import "errors"

var (
	ErrInvalidCounterparty = errors.New("invalid counterparty")
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrInvalidRole         = errors.New("invalid counterparty role")
	ErrInvalidRate         = errors.New("exchange rate must be positive")
	ErrZeroAmount          = errors.New("amount must not be zero")
	ErrInvalidAmount       = errors.New("amounts must be non-negative numbers")
	ErrInvalidRequest      = errors.New("invalid exchange request")
)
