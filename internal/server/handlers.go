package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

var (
	ErrUnknownContractor = errors.New("unknown contractor")
	ErrCurrencyMismatch  = errors.New("currencies do not match the contractor role")
	ErrUnknownPayment    = errors.New("payment method is not offered")
	ErrWrongPassword     = errors.New(exchange.MsgWrongPassword)
)

// Exchange is an accepted submission.
type Exchange struct {
	ID         string                   `json:"id"`
	AcceptedAt time.Time                `json:"acceptedAt"`
	Request    exchange.ExchangeRequest `json:"-"`
	Contractor string                   `json:"contractor"`
	Sending    string                   `json:"sending"`
	Receiving  string                   `json:"receiving"`
	Payment    string                   `json:"paymentMethod"`
}

func (s *Server) listContractors(w http.ResponseWriter, r *http.Request) {
	list := s.data.Contractors
	if list == nil {
		list = []exchange.Counterparty{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Profile)
}

func (s *Server) createExchange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form: "+err.Error())
		return
	}
	req, err := exchange.ParseExchangeRequest(r.PostForm)
	if err == nil {
		err = s.check(req)
	}
	if err != nil {
		s.log.Info("exchange rejected", zap.Error(err))
		writeError(w, mapError(err), err.Error())
		return
	}

	ex := Exchange{
		ID:         uuid.NewString(),
		AcceptedAt: time.Now().UTC(),
		Request:    req,
		Contractor: string(req.ContractorID),
		Sending:    req.SendingAmount.String() + " " + req.SendingCurrency,
		Receiving:  req.ReceivingAmount.String() + " " + req.ReceivingCurrency,
		Payment:    req.PaymentMethod,
	}
	s.mu.Lock()
	s.exchanges = append(s.exchanges, ex)
	s.mu.Unlock()

	s.log.Info("exchange accepted",
		zap.String("id", ex.ID),
		zap.String("contractor_id", ex.Contractor),
		zap.String("sending", ex.Sending),
		zap.String("receiving", ex.Receiving),
	)
	writeJSON(w, http.StatusOK, map[string]string{"id": ex.ID})
}

func (s *Server) listExchanges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Exchanges())
}

// Exchanges returns the accepted submissions, oldest first.
func (s *Server) Exchanges() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

// check applies the rules the real API enforces on a parsed submission.
func (s *Server) check(req exchange.ExchangeRequest) error {
	cp, ok := s.data.contractor(req.ContractorID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownContractor, req.ContractorID)
	}
	if req.SendingCurrency != cp.SendingCurrency() || req.ReceivingCurrency != cp.ReceivingCurrency() {
		return fmt.Errorf("%w: expected %s -> %s", ErrCurrencyMismatch, cp.SendingCurrency(), cp.ReceivingCurrency())
	}
	if req.PaymentPassword != "" && req.PaymentPassword != s.secret {
		return ErrWrongPassword
	}
	if req.SendingAmount.IsZero() {
		return exchange.ErrZeroAmount
	}

	methods := s.data.Profile.PaymentMethods
	if cp.Status == exchange.RoleSeller {
		methods = cp.PaymentMethods
	}
	for _, pm := range methods {
		if pm.Provider == req.PaymentMethod {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownPayment, req.PaymentMethod)
}
