package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/exchange"
	"github.com/simonvc/p2pdesk/internal/metrics"
)

// GetContractors fetches the counterparty list. A payload with any entry
// that fails shape validation is rejected as a whole; an empty list is
// returned as is.
func (c *Client) GetContractors(ctx context.Context) ([]exchange.Counterparty, error) {
	var result []exchange.Counterparty
	if err := c.get(ctx, PathContractors, &result); err != nil {
		return nil, err
	}
	for i := range result {
		if err := result[i].Validate(); err != nil {
			c.log.Warn("api.decode_failed",
				zap.String("endpoint", PathContractors),
				zap.Int("index", i),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: contractor %d: %w", ErrMalformedResponse, i, err)
		}
	}
	return result, nil
}

// GetUser fetches the current user's profile.
func (c *Client) GetUser(ctx context.Context) (*exchange.Profile, error) {
	var result exchange.Profile
	if err := c.get(ctx, PathUser, &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		c.log.Warn("api.decode_failed", zap.String("endpoint", PathUser), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &result, nil
}

// SubmitExchange posts an exchange. Any 2xx answer is success.
func (c *Client) SubmitExchange(ctx context.Context, req exchange.ExchangeRequest) error {
	err := c.postForm(ctx, PathExchange, req.Form(), nil)
	if err != nil {
		metrics.ExchangeSubmissions.WithLabelValues("error").Inc()
		return err
	}
	metrics.ExchangeSubmissions.WithLabelValues("ok").Inc()
	c.log.Info("exchange submitted",
		zap.String("contractor_id", string(req.ContractorID)),
		zap.String("sending", req.SendingAmount.String()+" "+req.SendingCurrency),
		zap.String("receiving", req.ReceivingAmount.String()+" "+req.ReceivingCurrency),
	)
	return nil
}
