package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/partquote/internal/checkout"
	"github.com/Simplici0/partquote/internal/metrics"
	"github.com/Simplici0/partquote/internal/quote"
)

func (s *server) handleQuoteSubmit(w http.ResponseWriter, r *http.Request) {
	var sub quote.Submission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	c := sess.Collection()
	if len(c.Complete()) == 0 {
		s.fail(w, r, errNothingToQuote, "failed to submit quote")
		return
	}

	snap := quote.NewSnapshot(s.clock.Quote(), c.Parts, sub, s.now())
	if err := s.store.SaveQuote(r.Context(), snap); err != nil {
		s.fail(w, r, err, "failed to save quote")
		return
	}

	metrics.QuotesSubmitted.Inc()
	metrics.QuoteValue.Observe(snap.Total)
	s.log.Info("quote submitted",
		zap.String("quote_id", snap.ID),
		zap.String("session_id", sess.ID),
		zap.Int("parts", len(snap.Parts)),
		zap.Float64("total", snap.Total),
	)

	writeJSON(w, http.StatusCreated, snap)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "quoteID"))
	if err != nil {
		s.fail(w, r, err, "failed to load quote")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	quotes, err := s.store.ListQuotes(r.Context(), query, limit)
	if err != nil {
		s.fail(w, r, err, "failed to load quotes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "quotes": quotes})
}

type confirmRequest struct {
	checkout.Form
	// ShippingAddressID and BillingAddressID pre-populate the form from the
	// address book.
	ShippingAddressID string `json:"shippingAddressId,omitempty"`
	BillingAddressID  string `json:"billingAddressId,omitempty"`
}

func (s *server) handleCheckoutConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	form := req.Form
	prefill := []struct {
		id    string
		apply func(checkout.Form, checkout.SavedAddress) checkout.Form
	}{
		{req.ShippingAddressID, checkout.ApplyShipping},
		{req.BillingAddressID, checkout.ApplyBilling},
	}
	for _, p := range prefill {
		if p.id == "" {
			continue
		}
		addr, err := s.store.GetAddress(r.Context(), p.id)
		if err != nil {
			s.fail(w, r, err, "failed to load address")
			return
		}
		form = p.apply(form, addr)
	}

	if err := checkout.Validate(form); err != nil {
		s.fail(w, r, err, "failed to validate checkout")
		return
	}

	snap, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "quoteID"))
	if err != nil {
		s.fail(w, r, err, "failed to load quote")
		return
	}

	order := checkout.NewOrder(s.clock.Order(), snap, form, s.now())
	if err := s.store.SaveOrder(r.Context(), order); err != nil {
		s.fail(w, r, err, "failed to process checkout")
		return
	}

	metrics.OrdersConfirmed.WithLabelValues(string(order.PaymentMethod)).Inc()
	s.log.Info("order confirmed",
		zap.String("order_id", order.ID),
		zap.String("quote_id", order.QuoteID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.Float64("total", order.Total),
	)

	writeJSON(w, http.StatusOK, order)
}

func (s *server) handleOrderGet(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		s.fail(w, r, err, "failed to load order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}
